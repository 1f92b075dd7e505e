package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerscan/db"
)

func TestTxStoreRoundTrip(t *testing.T) {
	provider := db.NewMemoryProvider()
	ts, err := NewGenericTxStore(provider)
	require.NoError(t, err)

	tx := makeTxs(1, 42)[0]
	require.NoError(t, ts.Store(tx))

	got, err := ts.GetByHash(tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), got.Hash())
	assert.Equal(t, tx.Nonce, got.Nonce)
	assert.Equal(t, tx.Sender, got.Sender)
	assert.Equal(t, tx.Amount.Dec(), got.Amount.Dec())
}

func TestTxStoreNotFound(t *testing.T) {
	ts, err := NewGenericTxStore(db.NewMemoryProvider())
	require.NoError(t, err)

	got, err := ts.GetByHash("deadbeef")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTxNotFound)
	assert.Contains(t, err.Error(), "deadbeef")
}

func TestTxStoreCorruptRecord(t *testing.T) {
	provider := db.NewMemoryProvider()
	ts, err := NewGenericTxStore(provider)
	require.NoError(t, err)

	require.NoError(t, provider.Put([]byte(PrefixTx+"badrecord"), []byte("{{")))

	got, err := ts.GetByHash("badrecord")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTxCorrupt)
}

func TestTxStoreGetBatchOrder(t *testing.T) {
	ts, err := NewGenericTxStore(db.NewMemoryProvider())
	require.NoError(t, err)

	txs := makeTxs(5, 0)
	require.NoError(t, ts.StoreBatch(txs))

	// Request in reverse; the result must mirror the request order.
	hashes := make([]string, len(txs))
	for i, tx := range txs {
		hashes[len(txs)-1-i] = tx.Hash()
	}
	got, err := ts.GetBatch(hashes)
	require.NoError(t, err)
	require.Len(t, got, len(hashes))
	for i, hash := range hashes {
		assert.Equal(t, hash, got[i].Hash())
	}
}

func TestTxStoreGetBatchFailsOnMissing(t *testing.T) {
	ts, err := NewGenericTxStore(db.NewMemoryProvider())
	require.NoError(t, err)

	txs := makeTxs(2, 0)
	require.NoError(t, ts.Store(txs[0]))

	got, err := ts.GetBatch([]string{txs[0].Hash(), txs[1].Hash()})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTxNotFound)
}
