package store

import (
	"fmt"
	"sync"

	"ledgerscan/db"
	"ledgerscan/jsonx"
	"ledgerscan/transaction"
)

// TxStore is the interface for the transaction store that is responsible
// for persisting and resolving transaction records by hash.
type TxStore interface {
	Store(tx *transaction.Transaction) error
	StoreBatch(txs []*transaction.Transaction) error
	GetByHash(txHash string) (*transaction.Transaction, error)
	// GetBatch resolves hashes preserving their input order. A missing
	// record yields ErrTxNotFound identifying the hash.
	GetBatch(txHashes []string) ([]*transaction.Transaction, error)
}

// GenericTxStore provides transaction storage operations over any
// DatabaseProvider.
type GenericTxStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

// NewGenericTxStore creates a new transaction store
func NewGenericTxStore(dbProvider db.DatabaseProvider) (*GenericTxStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericTxStore{
		dbProvider: dbProvider,
	}, nil
}

// Store stores a transaction in the database
func (ts *GenericTxStore) Store(tx *transaction.Transaction) error {
	return ts.StoreBatch([]*transaction.Transaction{tx})
}

// StoreBatch stores a batch of transactions in the database
func (ts *GenericTxStore) StoreBatch(txs []*transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	batch := ts.dbProvider.Batch()
	defer batch.Close()

	for _, tx := range txs {
		txData, err := jsonx.Marshal(tx)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		batch.Put(ts.getDbKey(tx.Hash()), txData)
	}

	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write transactions to database: %w", err)
	}
	return nil
}

// GetByHash retrieves a transaction by its hash
func (ts *GenericTxStore) GetByHash(txHash string) (*transaction.Transaction, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	data, err := ts.dbProvider.Get(ts.getDbKey(txHash))
	if err != nil {
		return nil, fmt.Errorf("could not get transaction %s from db: %w", txHash, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, txHash)
	}

	tx, err := transaction.ParseTx(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTxCorrupt, txHash, err)
	}
	return tx, nil
}

// GetBatch retrieves multiple transactions by their hashes, preserving
// the input order.
func (ts *GenericTxStore) GetBatch(txHashes []string) ([]*transaction.Transaction, error) {
	if len(txHashes) == 0 {
		return []*transaction.Transaction{}, nil
	}

	transactions := make([]*transaction.Transaction, 0, len(txHashes))
	for _, txHash := range txHashes {
		tx, err := ts.GetByHash(txHash)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (ts *GenericTxStore) getDbKey(txHash string) []byte {
	return []byte(PrefixTx + txHash)
}
