package utils

import (
	"strconv"

	"github.com/holiman/uint256"
)

// FormatAmount renders a ledger amount as a decimal string, preserving
// full precision. A nil amount renders as "0".
func FormatAmount(amount *uint256.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.Dec()
}

// FormatTimestamp renders a block timestamp (unix seconds) verbatim as a
// decimal string. No timezone conversion is applied.
func FormatTimestamp(ts uint64) string {
	return strconv.FormatUint(ts, 10)
}

// ParseAmount parses a decimal amount string.
func ParseAmount(s string) (*uint256.Int, error) {
	return uint256.FromDecimal(s)
}
