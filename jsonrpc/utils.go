package jsonrpc

// JSON-RPC Method name constants
const (
	// Ledger read methods
	MethodLedgerScanTransfers = "ledger.scantransfers"
	MethodLedgerGetBlock      = "ledger.getblock"
	MethodLedgerLatestHeight  = "ledger.latestheight"

	// Health methods
	MethodHealthCheck = "health.check"
)
