package store

import (
	"fmt"
	"path/filepath"

	"ledgerscan/db"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	// LevelDBStoreType uses the LevelDB implementation
	LevelDBStoreType StoreType = "leveldb"

	// BoltStoreType uses the bbolt single-file implementation
	BoltStoreType StoreType = "bolt"

	// RedisStoreType uses the Redis implementation
	RedisStoreType StoreType = "redis"

	// MemoryStoreType uses the in-memory implementation (tests, fixtures)
	MemoryStoreType StoreType = "memory"
)

// StoreConfig holds configuration for creating store instances
type StoreConfig struct {
	// Type specifies which store implementation to use
	Type StoreType `json:"type" yaml:"type"`

	// Directory is the database directory path (for file-based databases)
	Directory string `json:"directory" yaml:"directory"`

	// Address is the server address (for network-backed databases)
	Address string `json:"address" yaml:"address"`
}

// Validate validates the store configuration
func (sc *StoreConfig) Validate() error {
	if sc.Type == "" {
		return fmt.Errorf("store type cannot be empty")
	}

	switch sc.Type {
	case LevelDBStoreType, BoltStoreType:
		if sc.Directory == "" {
			return fmt.Errorf("directory cannot be empty for %s store", sc.Type)
		}
		return nil
	case RedisStoreType:
		if sc.Address == "" {
			return fmt.Errorf("address cannot be empty for redis store")
		}
		return nil
	case MemoryStoreType:
		return nil
	default:
		return fmt.Errorf("unsupported store type: %s", sc.Type)
	}
}

// CreateProvider creates the database provider described by the config.
func CreateProvider(config *StoreConfig) (db.DatabaseProvider, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch config.Type {
	case LevelDBStoreType:
		return db.NewLevelDBProvider(config.Directory)
	case BoltStoreType:
		return db.NewBoltProvider(filepath.Join(config.Directory, "chain.db"))
	case RedisStoreType:
		return db.NewRedisProvider(config.Address)
	case MemoryStoreType:
		return db.NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// OpenChainStore creates a ChainStore (and its TxStore) backed by the
// provider described in the config.
func OpenChainStore(config *StoreConfig) (ChainStore, error) {
	provider, err := CreateProvider(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	txStore, err := NewGenericTxStore(provider)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to create transaction store: %w", err)
	}

	chainStore, err := NewGenericChainStore(provider, txStore)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to create chain store: %w", err)
	}

	return chainStore, nil
}
