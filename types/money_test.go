package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"Wei basic price", Wei(1_000_000_000_000_000), 1_000_000_000_000_000, "eth", "0.001 ETH"},
		{"Wei standard price", Wei(3_000_000_000_000_000), 3_000_000_000_000_000, "eth", "0.003 ETH"},
		{"Wei premium price", Wei(5_000_000_000_000_000), 5_000_000_000_000_000, "eth", "0.005 ETH"},
		{"Wei whole unit", Wei(1_000_000_000_000_000_000), 1_000_000_000_000_000_000, "eth", "1.000 ETH"},
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"EUR", EUR(19900), 19900, "eur", "€199.00"},
		{"Zero ETH", Zero("ETH"), 0, "eth", "0.000 ETH"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return Wei(100).Add(Wei(200)) }, Wei(300)},
		{"Subtract", func() Money { return Wei(500).Subtract(Wei(200)) }, Wei(300)},
		{"Sum", func() Money { return Sum(Wei(1), Wei(2), Wei(3)) }, Wei(6)},
		{"Sum empty", func() Money { return Sum() }, Zero("eth")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op()
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMoneyComparisons(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"Equal same", Wei(100).Equal(Wei(100)), true},
		{"Equal different amount", Wei(100).Equal(Wei(200)), false},
		{"Equal different currency", Wei(100).Equal(USD(100)), false},
		{"LessThan", Wei(100).LessThan(Wei(200)), true},
		{"GreaterThan", Wei(200).GreaterThan(Wei(100)), true},
		{"IsZero", Zero("eth").IsZero(), true},
		{"IsPositive", Wei(1).IsPositive(), true},
		{"IsNegative", Wei(-1).IsNegative(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on currency mismatch")
		}
	}()
	_ = Wei(100).Add(USD(100))
}

func TestFormatMajor(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{"sub-unit eth", Wei(1_000_000_000_000_000), "0.001"},
		{"eth no trailing zeros beyond minimum", Wei(5_000_000_000_000_000), "0.005"},
		{"eth full precision kept", Wei(1_234_500_000_000_000), "0.0012345"},
		{"eth single wei", Wei(1), "0.000000000000000001"},
		{"negative eth", Wei(-1_000_000_000_000_000), "-0.001"},
		{"usd", USD(4900), "49.00"},
		{"usd cents", USD(5), "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Wei(1_000_000_000_000_000))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, fragment := range []string{`"amount":1000000000000000`, `"currency":"eth"`, `"display":"0.001 ETH"`} {
		if !strings.Contains(s, fragment) {
			t.Errorf("marshaled JSON %s missing %s", s, fragment)
		}
	}
}
