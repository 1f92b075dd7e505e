package scan

import (
	"encoding/binary"
	"testing"

	"github.com/holiman/uint256"

	"ledgerscan/block"
	"ledgerscan/db"
	"ledgerscan/store"
	"ledgerscan/transaction"
)

// Scan over the real chain store stack, including a block record whose
// stored bytes were damaged on disk.
func TestScanOverChainStore(t *testing.T) {
	provider := db.NewMemoryProvider()
	ts, err := store.NewGenericTxStore(provider)
	if err != nil {
		t.Fatalf("failed to create tx store: %v", err)
	}
	cs, err := store.NewGenericChainStore(provider, ts)
	if err != nil {
		t.Fatalf("failed to create chain store: %v", err)
	}
	defer cs.Close()

	for h := uint64(1); h <= 6; h++ {
		if h == 4 {
			continue // leave a gap
		}
		tx := &transaction.Transaction{
			Kind:      transaction.KindTransfer,
			Sender:    testAddr(1),
			Recipient: testAddr(2),
			Amount:    uint256.NewInt(h),
			Nonce:     h,
		}
		blk := block.AssembleBlock(h, [32]byte{}, "node1", 1700000000+h, []string{tx.Hash()})
		if err := cs.PutBlock(blk, []*transaction.Transaction{tx}); err != nil {
			t.Fatalf("failed to store block %d: %v", h, err)
		}
	}

	// Damage the stored record of block 2.
	key := make([]byte, len(store.PrefixBlock)+8)
	copy(key, store.PrefixBlock)
	binary.BigEndian.PutUint64(key[len(store.PrefixBlock):], 2)
	if err := provider.Put(key, []byte("damaged")); err != nil {
		t.Fatalf("failed to damage block record: %v", err)
	}

	scanner := NewTransferScanner(cs)
	transfers, err := scanner.ScanTransfers(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeights := []uint64{1, 3, 5, 6}
	if len(transfers) != len(wantHeights) {
		t.Fatalf("expected %d transfers, got %d", len(wantHeights), len(transfers))
	}
	for i, want := range wantHeights {
		if transfers[i].Height != want {
			t.Errorf("record %d: height = %d, want %d", i, transfers[i].Height, want)
		}
		if transfers[i].Value == "" || transfers[i].Timestamp == "" {
			t.Errorf("record %d: incomplete projection %+v", i, transfers[i])
		}
	}
}
