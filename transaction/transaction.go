package transaction

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"

	"ledgerscan/jsonx"
	"ledgerscan/types"
)

// Transaction kinds as recorded in the ledger. Only KindTransfer moves
// value between two identifiable accounts; the other kinds either lack a
// real counterparty on one side or carry no value at all.
const (
	KindTransfer       int32 = 0
	KindCoinbase       int32 = 1
	KindContractDeploy int32 = 2
	KindContractCall   int32 = 3
)

// Limits to prevent DoS via oversized inputs
const (
	maxSignatureLen = 4096
	maxPayloadLen   = 1 << 20
)

// Transaction is the persisted ledger transaction record. Sender and
// Recipient are zero-valued when the kind has no counterparty on that
// side (coinbase has no sender, a deployment has no recipient).
type Transaction struct {
	Kind      int32         `json:"kind"`
	Sender    types.Address `json:"sender"`
	Recipient types.Address `json:"recipient"`
	Amount    *uint256.Int  `json:"amount,omitempty"`
	Nonce     uint64        `json:"nonce,omitempty"`
	Timestamp uint64        `json:"timestamp"`
	Payload   []byte        `json:"payload,omitempty"`
	Signature []byte        `json:"signature,omitempty"`
}

// Serialize produces the canonical byte form covered by the signature.
func (tx *Transaction) Serialize() []byte {
	amountStr := uint256ToString(tx.Amount)
	metadata := fmt.Sprintf(
		"%d|%s|%s|%s|%d|%d|%x",
		tx.Kind, tx.Sender, tx.Recipient, amountStr, tx.Nonce, tx.Timestamp, tx.Payload,
	)
	return []byte(metadata)
}

// Verify checks the sender's ed25519 signature over the canonical
// serialization. Kinds without a sender (coinbase) carry no signature
// and always verify.
func (tx *Transaction) Verify() bool {
	if tx.Kind == KindCoinbase {
		return true
	}
	if len(tx.Signature) == 0 || len(tx.Signature) > maxSignatureLen {
		return false
	}
	if len(tx.Payload) > maxPayloadLen {
		return false
	}
	if tx.Sender.IsZero() {
		return false
	}
	pub := ed25519.PublicKey(tx.Sender.Bytes())
	return ed25519.Verify(pub, tx.Serialize(), tx.Signature)
}

func (tx *Transaction) Bytes() []byte {
	b, _ := jsonx.Marshal(tx)
	return b
}

// Hash is the hex-encoded sha256 of the canonical serialization. It is
// the key under which the record is stored and referenced from blocks.
func (tx *Transaction) Hash() string {
	sum256 := sha256.Sum256(tx.Serialize())
	return hex.EncodeToString(sum256[:])
}

// IsTransfer reports whether the record is an inter-account value
// transfer: transfer kind, both counterparties present, value present.
func (tx *Transaction) IsTransfer() bool {
	return tx.Kind == KindTransfer &&
		!tx.Sender.IsZero() &&
		!tx.Recipient.IsZero() &&
		tx.Amount != nil
}

// KindName returns a human-readable kind label for diagnostics.
func KindName(kind int32) string {
	switch kind {
	case KindTransfer:
		return "transfer"
	case KindCoinbase:
		return "coinbase"
	case KindContractDeploy:
		return "contract_deploy"
	case KindContractCall:
		return "contract_call"
	default:
		return "unknown"
	}
}

// ParseTx decodes a stored transaction record.
func ParseTx(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := jsonx.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// uint256ToString converts a *uint256.Int to string, returning "0" if nil
func uint256ToString(value *uint256.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}
