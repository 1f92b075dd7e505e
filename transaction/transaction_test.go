package transaction

import (
	"crypto/ed25519"
	"testing"

	"github.com/holiman/uint256"

	"ledgerscan/types"
)

func fillAddr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func signedTransfer(t *testing.T) (*Transaction, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	sender, err := types.AddressFromBytes(pub)
	if err != nil {
		t.Fatalf("failed to build sender address: %v", err)
	}
	tx := &Transaction{
		Kind:      KindTransfer,
		Sender:    sender,
		Recipient: fillAddr(9),
		Amount:    uint256.NewInt(1234),
		Nonce:     7,
		Timestamp: 1700000000,
	}
	tx.Signature = ed25519.Sign(priv, tx.Serialize())
	return tx, pub
}

func TestHashIsStable(t *testing.T) {
	tx := &Transaction{
		Kind:      KindTransfer,
		Sender:    fillAddr(1),
		Recipient: fillAddr(2),
		Amount:    uint256.NewInt(10),
		Nonce:     1,
		Timestamp: 1700000000,
	}
	h1 := tx.Hash()
	h2 := tx.Hash()
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected hex sha256, got %q", h1)
	}

	tx.Nonce++
	if tx.Hash() == h1 {
		t.Fatal("hash did not change with the nonce")
	}
}

func TestVerifySignature(t *testing.T) {
	tx, _ := signedTransfer(t)
	if !tx.Verify() {
		t.Fatal("valid signature rejected")
	}

	tx.Amount = uint256.NewInt(9999)
	if tx.Verify() {
		t.Fatal("tampered amount accepted")
	}
}

func TestVerifyRejectsMissingSignature(t *testing.T) {
	tx, _ := signedTransfer(t)
	tx.Signature = nil
	if tx.Verify() {
		t.Fatal("unsigned transfer accepted")
	}
}

func TestVerifyCoinbase(t *testing.T) {
	tx := &Transaction{
		Kind:      KindCoinbase,
		Recipient: fillAddr(3),
		Amount:    uint256.NewInt(50),
	}
	if !tx.Verify() {
		t.Fatal("coinbase must verify without a signature")
	}
}

func TestIsTransfer(t *testing.T) {
	cases := []struct {
		name string
		tx   *Transaction
		want bool
	}{
		{
			name: "transfer",
			tx:   &Transaction{Kind: KindTransfer, Sender: fillAddr(1), Recipient: fillAddr(2), Amount: uint256.NewInt(1)},
			want: true,
		},
		{
			name: "coinbase",
			tx:   &Transaction{Kind: KindCoinbase, Recipient: fillAddr(2), Amount: uint256.NewInt(1)},
			want: false,
		},
		{
			name: "contract deploy",
			tx:   &Transaction{Kind: KindContractDeploy, Sender: fillAddr(1), Amount: uint256.NewInt(1)},
			want: false,
		},
		{
			name: "contract call",
			tx:   &Transaction{Kind: KindContractCall, Sender: fillAddr(1), Recipient: fillAddr(2), Amount: uint256.NewInt(1)},
			want: false,
		},
		{
			name: "transfer without amount",
			tx:   &Transaction{Kind: KindTransfer, Sender: fillAddr(1), Recipient: fillAddr(2)},
			want: false,
		},
		{
			name: "transfer with zero sender",
			tx:   &Transaction{Kind: KindTransfer, Recipient: fillAddr(2), Amount: uint256.NewInt(1)},
			want: false,
		},
		{
			name: "transfer with zero recipient",
			tx:   &Transaction{Kind: KindTransfer, Sender: fillAddr(1), Amount: uint256.NewInt(1)},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.IsTransfer(); got != tc.want {
				t.Errorf("IsTransfer() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseTxRoundTrip(t *testing.T) {
	tx, _ := signedTransfer(t)

	parsed, err := ParseTx(tx.Bytes())
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if parsed.Hash() != tx.Hash() {
		t.Fatalf("hash mismatch after round trip: %s vs %s", parsed.Hash(), tx.Hash())
	}
	if !parsed.Verify() {
		t.Fatal("signature lost in round trip")
	}
	if parsed.Amount.Dec() != "1234" {
		t.Fatalf("amount = %s, want 1234", parsed.Amount.Dec())
	}
}

func TestParseTxRejectsGarbage(t *testing.T) {
	if _, err := ParseTx([]byte("{{not json")); err == nil {
		t.Fatal("expected an error for undecodable bytes")
	}
}

func TestKindName(t *testing.T) {
	cases := map[int32]string{
		KindTransfer:       "transfer",
		KindCoinbase:       "coinbase",
		KindContractDeploy: "contract_deploy",
		KindContractCall:   "contract_call",
		42:                 "unknown",
	}
	for kind, want := range cases {
		if got := KindName(kind); got != want {
			t.Errorf("KindName(%d) = %q, want %q", kind, got, want)
		}
	}
}
