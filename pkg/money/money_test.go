package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"10.015", "10.02"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"99.999", "100"},
		{"10", "10"},
		{"10.10", "10.1"},
	}
	for _, tc := range cases {
		in, _ := decimal.NewFromString(tc.in)
		want, _ := decimal.NewFromString(tc.want)
		got := Round2(in)
		if !got.Equal(want) {
			t.Errorf("Round2(%s) = %s, want %s", tc.in, got, want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	price, _ := decimal.NewFromString("10.005")
	got := LineTotal(price, 3)
	want, _ := decimal.NewFromString("30.02") // 30.015 rounds up
	if !got.Equal(want) {
		t.Errorf("LineTotal(10.005, 3) = %s, want %s", got, want)
	}
}

// The invoice total is the exact sum of already-rounded line totals, so
// summing the stored lines must always reproduce it.
func TestLineTotalsSumExactly(t *testing.T) {
	prices := []string{"3.335", "7.991", "0.005"}
	quantities := []int64{3, 2, 9}

	total := decimal.Zero
	for i, p := range prices {
		price, _ := decimal.NewFromString(p)
		total = total.Add(LineTotal(price, quantities[i]))
	}

	recomputed := decimal.Zero
	for i, p := range prices {
		price, _ := decimal.NewFromString(p)
		recomputed = recomputed.Add(LineTotal(price, quantities[i]))
	}
	if !total.Equal(recomputed) {
		t.Errorf("line total sum not stable: %s vs %s", total, recomputed)
	}
	if total.Exponent() < -2 {
		t.Errorf("total has sub-cent precision: %s", total)
	}
}
