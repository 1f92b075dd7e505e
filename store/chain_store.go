package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"ledgerscan/block"
	"ledgerscan/db"
	"ledgerscan/jsonx"
	"ledgerscan/logx"
	"ledgerscan/transaction"
)

// ChainStore is the read capability consumed by the scanner: resolve a
// height to the canonical block and resolve a block to its ordered
// transaction records. It owns all chain-integrity concerns; readers
// only see decoded records or the error taxonomy in errors.go.
//
// Implementations must be safe for concurrent readers.
type ChainStore interface {
	// Block returns the canonical block at height, or (nil, nil) when no
	// block exists there. Errors wrapping ErrBlockCorrupt mean the
	// stored record is undecodable; any other error means storage is
	// unavailable.
	Block(height uint64) (*block.Block, error)

	// Transactions resolves the block's transaction records in their
	// canonical in-block order. A missing or undecodable record yields
	// an error wrapping ErrBlockCorrupt; provider failures propagate.
	Transactions(b *block.Block) ([]*transaction.Transaction, error)

	// HasBlock checks if a block exists at the given height.
	HasBlock(height uint64) bool

	// LatestHeight returns the height of the newest stored block.
	LatestHeight() uint64

	// PutBlock atomically stores a block and its transaction records and
	// advances the latest-height metadata. It is the storage engine's
	// own write path (import, bootstrap); readers never call it.
	PutBlock(b *block.Block, txs []*transaction.Transaction) error

	Close() error
}

// GenericChainStore is a database-agnostic ChainStore over any
// DatabaseProvider.
type GenericChainStore struct {
	provider     db.DatabaseProvider
	txStore      TxStore
	mu           sync.RWMutex
	latestHeight uint64
	closed       bool
}

// NewGenericChainStore creates a chain store with the given provider.
func NewGenericChainStore(provider db.DatabaseProvider, ts TxStore) (*GenericChainStore, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if ts == nil {
		return nil, fmt.Errorf("tx store cannot be nil")
	}

	store := &GenericChainStore{
		provider: provider,
		txStore:  ts,
	}

	if err := store.loadLatestHeight(); err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}

	return store, nil
}

// loadLatestHeight loads the latest stored height from metadata, falling
// back to a block-key sweep when the metadata record is absent.
func (s *GenericChainStore) loadLatestHeight() error {
	value, err := s.provider.Get([]byte(PrefixBlockMeta + BlockMetaKeyLatestHeight))
	if err != nil {
		return fmt.Errorf("failed to get latest height: %w", err)
	}
	if value == nil {
		return s.recoverLatestHeight()
	}
	if len(value) != 8 {
		return fmt.Errorf("invalid latest height value length: %d", len(value))
	}
	s.latestHeight = binary.BigEndian.Uint64(value)
	return nil
}

// recoverLatestHeight rebuilds the latest-height metadata by sweeping the
// block keys. Block keys encode the height big-endian, so the last key
// under the prefix belongs to the newest block.
func (s *GenericChainStore) recoverLatestHeight() error {
	iterable, ok := s.provider.(db.IterableProvider)
	if !ok {
		s.latestHeight = 0
		return nil
	}

	prefix := []byte(PrefixBlock)
	var latest uint64
	var found bool
	err := iterable.IteratePrefix(prefix, func(key, _ []byte) bool {
		if len(key) == len(prefix)+8 {
			latest = binary.BigEndian.Uint64(key[len(prefix):])
			found = true
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to sweep block keys: %w", err)
	}

	if found {
		logx.Warn("CHAINSTORE", fmt.Sprintf("Recovered latest height %d from block keys", latest))
		lh := make([]byte, 8)
		binary.BigEndian.PutUint64(lh, latest)
		if err := s.provider.Put([]byte(PrefixBlockMeta+BlockMetaKeyLatestHeight), lh); err != nil {
			return fmt.Errorf("failed to restore latest height metadata: %w", err)
		}
	}
	s.latestHeight = latest
	return nil
}

// heightToBlockKey converts a height to a block storage key
func heightToBlockKey(height uint64) []byte {
	key := make([]byte, len(PrefixBlock)+8)
	copy(key, PrefixBlock)
	binary.BigEndian.PutUint64(key[len(PrefixBlock):], height)
	return key
}

// Block retrieves the canonical block at height.
func (s *GenericChainStore) Block(height uint64) (*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	value, err := s.provider.Get(heightToBlockKey(height))
	if err != nil {
		return nil, fmt.Errorf("failed to read block %d: %w", height, err)
	}
	if value == nil {
		return nil, nil
	}

	var blk block.Block
	if err := jsonx.Unmarshal(value, &blk); err != nil {
		return nil, fmt.Errorf("%w: height %d: %v", ErrBlockCorrupt, height, err)
	}
	if !blk.VerifyHash() {
		return nil, fmt.Errorf("%w: height %d: hash mismatch", ErrBlockCorrupt, height)
	}

	return &blk, nil
}

// Transactions resolves the block's transactions in canonical order.
func (s *GenericChainStore) Transactions(b *block.Block) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if b == nil {
		return nil, fmt.Errorf("block cannot be nil")
	}

	txs, err := s.txStore.GetBatch(b.TxHashes)
	if err != nil {
		if errors.Is(err, ErrTxNotFound) || errors.Is(err, ErrTxCorrupt) {
			return nil, fmt.Errorf("%w: height %d: %v", ErrBlockCorrupt, b.Height, err)
		}
		return nil, fmt.Errorf("failed to resolve transactions of block %d: %w", b.Height, err)
	}
	return txs, nil
}

// HasBlock checks if a block exists at the given height.
func (s *GenericChainStore) HasBlock(height uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	exists, err := s.provider.Has(heightToBlockKey(height))
	if err != nil {
		logx.Error("CHAINSTORE", "Failed to check block existence", height, " error:", err)
		return false
	}
	return exists
}

// LatestHeight returns the newest stored height.
func (s *GenericChainStore) LatestHeight() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestHeight
}

// PutBlock atomically stores the block and its transaction records.
func (s *GenericChainStore) PutBlock(b *block.Block, txs []*transaction.Transaction) error {
	if b == nil {
		return fmt.Errorf("block cannot be nil")
	}
	if len(txs) != len(b.TxHashes) {
		return fmt.Errorf("block %d references %d transactions, got %d", b.Height, len(b.TxHashes), len(txs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	key := heightToBlockKey(b.Height)
	exists, err := s.provider.Has(key)
	if err != nil {
		return fmt.Errorf("failed to check block existence: %w", err)
	}
	if exists {
		return fmt.Errorf("block %d already exists", b.Height)
	}

	if err := s.txStore.StoreBatch(txs); err != nil {
		return fmt.Errorf("failed to store transactions of block %d: %w", b.Height, err)
	}

	blockData, err := jsonx.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}

	batch := s.provider.Batch()
	defer batch.Close()
	batch.Put(key, blockData)

	if b.Height > s.latestHeight {
		lh := make([]byte, 8)
		binary.BigEndian.PutUint64(lh, b.Height)
		batch.Put([]byte(PrefixBlockMeta+BlockMetaKeyLatestHeight), lh)
	}

	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write block %d: %w", b.Height, err)
	}

	if b.Height > s.latestHeight {
		s.latestHeight = b.Height
	}
	return nil
}

// Close closes the chain store and its provider.
func (s *GenericChainStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.provider.Close()
}
