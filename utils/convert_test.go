package utils

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(nil); got != "0" {
		t.Errorf("FormatAmount(nil) = %q, want %q", got, "0")
	}
	if got := FormatAmount(uint256.NewInt(0)); got != "0" {
		t.Errorf("FormatAmount(0) = %q, want %q", got, "0")
	}
	if got := FormatAmount(uint256.NewInt(123456789)); got != "123456789" {
		t.Errorf("FormatAmount = %q, want %q", got, "123456789")
	}

	// Full 256-bit precision, no scientific notation.
	huge, err := uint256.FromDecimal("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatalf("failed to parse max value: %v", err)
	}
	if got := FormatAmount(huge); got != "115792089237316195423570985008687907853269984665640564039457584007913129639935" {
		t.Errorf("FormatAmount lost precision: %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(0); got != "0" {
		t.Errorf("FormatTimestamp(0) = %q", got)
	}
	if got := FormatTimestamp(1700000000); got != "1700000000" {
		t.Errorf("FormatTimestamp = %q, want %q", got, "1700000000")
	}
	if got := FormatTimestamp(^uint64(0)); got != "18446744073709551615" {
		t.Errorf("FormatTimestamp overflowed: %q", got)
	}
}

func TestParseAmountRoundTrip(t *testing.T) {
	amount, err := ParseAmount("987654321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatAmount(amount) != "987654321" {
		t.Fatalf("round trip changed the amount: %s", FormatAmount(amount))
	}

	if _, err := ParseAmount("not a number"); err == nil {
		t.Fatal("expected an error for a non-decimal string")
	}
}
