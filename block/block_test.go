package block

import (
	"crypto/ed25519"
	"testing"
)

func TestAssembleBlockSealsHash(t *testing.T) {
	b := AssembleBlock(5, [32]byte{1, 2, 3}, "node1", 1700000000, []string{"aa", "bb"})
	if !b.VerifyHash() {
		t.Fatal("freshly assembled block fails hash verification")
	}
	if b.Hash == ([32]byte{}) {
		t.Fatal("hash was not sealed")
	}
}

func TestVerifyHashDetectsTampering(t *testing.T) {
	mutations := map[string]func(*Block){
		"height":    func(b *Block) { b.Height++ },
		"timestamp": func(b *Block) { b.Timestamp++ },
		"proposer":  func(b *Block) { b.Proposer = "node2" },
		"prev hash": func(b *Block) { b.PrevHash[0] ^= 0xff },
		"tx hashes": func(b *Block) { b.TxHashes[0] = "cc" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			b := AssembleBlock(5, [32]byte{1}, "node1", 1700000000, []string{"aa", "bb"})
			mutate(b)
			if b.VerifyHash() {
				t.Errorf("tampered %s went undetected", name)
			}
		})
	}
}

func TestBlockHashDependsOnTxOrder(t *testing.T) {
	b1 := AssembleBlock(5, [32]byte{}, "node1", 1700000000, []string{"aa", "bb"})
	b2 := AssembleBlock(5, [32]byte{}, "node1", 1700000000, []string{"bb", "aa"})
	if b1.Hash == b2.Hash {
		t.Fatal("blocks with reordered transactions must not collide")
	}
}

func TestSignAndVerifySignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	b := AssembleBlock(5, [32]byte{}, "node1", 1700000000, nil)
	b.Sign(priv)
	if !b.VerifySignature(pub) {
		t.Fatal("valid signature rejected")
	}

	otherPub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	if b.VerifySignature(otherPub) {
		t.Fatal("signature verified against the wrong key")
	}
}
