package block

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
)

// Block is the persisted canonical block record. Transactions are stored
// separately and referenced by hash; TxHashes preserves their canonical
// in-block order.
type Block struct {
	Height    uint64   `json:"height"`
	PrevHash  [32]byte `json:"prev_hash"`
	Timestamp uint64   `json:"timestamp"` // unix seconds at assembly
	TxHashes  []string `json:"tx_hashes"`
	Proposer  string   `json:"proposer"`
	Hash      [32]byte `json:"hash"`
	Signature []byte   `json:"signature,omitempty"`
}

// AssembleBlock builds a block over the given ordered transaction hashes
// and seals it with its content hash.
func AssembleBlock(height uint64, prevHash [32]byte, proposer string, timestamp uint64, txHashes []string) *Block {
	b := &Block{
		Height:    height,
		PrevHash:  prevHash,
		Timestamp: timestamp,
		TxHashes:  txHashes,
		Proposer:  proposer,
	}
	b.Hash = b.computeHash()
	return b
}

func (b *Block) computeHash() [32]byte {
	h := sha256.New()
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, b.Height)
	h.Write(buf)
	h.Write(b.PrevHash[:])
	binary.BigEndian.PutUint64(buf, b.Timestamp)
	h.Write(buf)
	h.Write([]byte(b.Proposer))
	for _, txHash := range b.TxHashes {
		h.Write([]byte(txHash))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// VerifyHash recomputes the content hash and compares it against the
// stored one. A mismatch means the stored record is corrupt.
func (b *Block) VerifyHash() bool {
	return b.Hash == b.computeHash()
}

func (b *Block) Sign(privKey ed25519.PrivateKey) {
	b.Signature = ed25519.Sign(privKey, b.Hash[:])
}

func (b *Block) VerifySignature(pubKey ed25519.PublicKey) bool {
	return ed25519.Verify(pubKey, b.Hash[:], b.Signature)
}
