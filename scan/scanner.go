package scan

import (
	"errors"
	"fmt"
	"time"

	"ledgerscan/logx"
	"ledgerscan/monitoring"
	"ledgerscan/store"
	"ledgerscan/transaction"
	"ledgerscan/types"
	"ledgerscan/utils"
)

// TransactionInfo is the compact projection of an inter-account transfer.
// Values are self-contained copies; they never alias storage buffers and
// stay valid after the chain store is closed.
type TransactionInfo struct {
	Height    uint64        `json:"height"`
	From      types.Address `json:"from"`
	To        types.Address `json:"to"`
	Value     string        `json:"value"`     // decimal, full precision
	Timestamp string        `json:"timestamp"` // block timestamp, unix seconds
}

// TransferScanner produces the ordered sequence of inter-account
// transfer records for all blocks whose height falls in a caller
// specified range. It holds no mutable state; concurrent scans over the
// same chain store are safe.
type TransferScanner struct {
	chain store.ChainStore
}

// NewTransferScanner wraps a chain store.
func NewTransferScanner(chain store.ChainStore) *TransferScanner {
	return &TransferScanner{chain: chain}
}

// ScanTransfers scans the half-open height interval [startBlock,
// endBlock) in ascending order and returns one record per inter-account
// transfer, ordered by height and then by in-block position.
//
// The operation is total over its input domain: startBlock >= endBlock
// yields an empty result, a height with no block is skipped silently,
// and a corrupt block is skipped with a diagnostic. Only a storage
// failure aborts the scan; in that case no partial result is returned.
func (s *TransferScanner) ScanTransfers(startBlock, endBlock uint64) ([]TransactionInfo, error) {
	started := time.Now()
	defer func() { monitoring.RecordScan(time.Since(started)) }()

	transfers := []TransactionInfo{}
	if startBlock >= endBlock {
		return transfers, nil
	}

	for height := startBlock; height < endBlock; height++ {
		blk, err := s.chain.Block(height)
		if err != nil {
			if errors.Is(err, store.ErrBlockCorrupt) {
				logx.Warn("SCAN", fmt.Sprintf("Skipping corrupt block at height %d: %v", height, err))
				monitoring.IncreaseBlocksSkipped(monitoring.BlockSkipCorrupt)
				continue
			}
			return nil, fmt.Errorf("scan aborted at height %d: %w", height, err)
		}
		if blk == nil {
			monitoring.IncreaseBlocksSkipped(monitoring.BlockSkipMissing)
			continue
		}

		txs, err := s.chain.Transactions(blk)
		if err != nil {
			if errors.Is(err, store.ErrBlockCorrupt) {
				logx.Warn("SCAN", fmt.Sprintf("Skipping block %d with unresolvable transactions: %v", height, err))
				monitoring.IncreaseBlocksSkipped(monitoring.BlockSkipCorrupt)
				continue
			}
			return nil, fmt.Errorf("scan aborted at height %d: %w", height, err)
		}
		monitoring.IncreaseBlocksScanned()

		timestamp := utils.FormatTimestamp(blk.Timestamp)
		for _, tx := range txs {
			if !tx.IsTransfer() {
				continue
			}
			transfers = append(transfers, projectTransfer(blk.Height, timestamp, tx))
		}
	}

	monitoring.AddTransfersReturned(len(transfers))
	return transfers, nil
}

// projectTransfer copies the transfer's fields into an owned record.
func projectTransfer(height uint64, timestamp string, tx *transaction.Transaction) TransactionInfo {
	return TransactionInfo{
		Height:    height,
		From:      tx.Sender,
		To:        tx.Recipient,
		Value:     utils.FormatAmount(tx.Amount),
		Timestamp: timestamp,
	}
}
