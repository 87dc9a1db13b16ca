package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	got := LineTotal(19.99, 3)
	if want := decimal.RequireFromString("59.97"); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLineTotalNegativeQuantityIsZero(t *testing.T) {
	if got := LineTotal(10, -2); !got.IsZero() {
		t.Fatalf("expected zero total, got %s", got)
	}
}

func TestLineTotalAvoidsFloatDrift(t *testing.T) {
	// 0.1*3 drifts under float64 arithmetic; decimals keep it exact.
	if got := LineTotal(0.1, 3); got.String() != "0.3" {
		t.Fatalf("expected 0.3, got %s", got)
	}
}

func TestFormat(t *testing.T) {
	if got := FormatFloat(1250); got != "1250.00 ₸" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatPerUnit(350, "kg"); got != "350.00 TG/kg" {
		t.Fatalf("unexpected unit format %q", got)
	}
}
