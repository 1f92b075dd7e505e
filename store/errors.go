package store

import "errors"

var (
	// ErrBlockCorrupt marks a block whose stored bytes exist but cannot
	// be decoded, fail hash verification, or reference transaction
	// records that are missing or undecodable. Readers recover by
	// skipping the affected height.
	ErrBlockCorrupt = errors.New("block record corrupt")

	// ErrClosed is returned once the store has been closed; no reads can
	// be served and callers must treat it as fatal.
	ErrClosed = errors.New("store is closed")

	// ErrTxNotFound is returned when a transaction hash resolves to no
	// stored record.
	ErrTxNotFound = errors.New("transaction not found")

	// ErrTxCorrupt marks a stored transaction record that cannot be
	// decoded.
	ErrTxCorrupt = errors.New("transaction record corrupt")
)
