package features

import (
	"testing"

	"github.com/seftonlabs/dealtriage/internal/services/lexicon"
)

func TestExtractAmounts(t *testing.T) {
	rates := lexicon.Default().CurrencyRates

	tests := []struct {
		name         string
		text         string
		wantCount    int
		wantCurrency string
		wantUSD      float64
		wantNorm     bool
	}{
		{
			name:         "bare dollar with million suffix",
			text:         "consideration of $200 million in cash",
			wantCount:    1,
			wantCurrency: "USD",
			wantUSD:      200_000_000,
			wantNorm:     true,
		},
		{
			name:         "singapore dollar symbol",
			text:         "sells industrial property for s$85 million",
			wantCount:    1,
			wantCurrency: "SGD",
			wantUSD:      85_000_000 * 0.74,
			wantNorm:     true,
		},
		{
			name:         "currency code before number",
			text:         "a purchase price of aud 12.5m",
			wantCount:    1,
			wantCurrency: "AUD",
			wantUSD:      12_500_000 * 0.66,
			wantNorm:     true,
		},
		{
			name:         "short billion suffix",
			text:         "an enterprise value of hk$1.2b",
			wantCount:    1,
			wantCurrency: "HKD",
			wantUSD:      1_200_000_000 * 0.128,
			wantNorm:     true,
		},
		{
			name:         "thousands separators without suffix",
			text:         "a deferred payment of $4,750,000",
			wantCount:    1,
			wantCurrency: "USD",
			wantUSD:      4_750_000,
			wantNorm:     true,
		},
		{
			name:         "rmb alias resolves to cny",
			text:         "registered capital of rmb 50 million",
			wantCount:    1,
			wantCurrency: "CNY",
			wantUSD:      50_000_000 * 0.14,
			wantNorm:     true,
		},
		{
			name:         "unknown currency stays unnormalized",
			text:         "a facility of inr 300 million",
			wantCount:    1,
			wantCurrency: "INR",
			wantNorm:     false,
		},
		{
			name:      "no currency marker no match",
			text:      "the company issued 200 million new shares",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := extractAmounts(tt.text, rates)
			if len(amounts) != tt.wantCount {
				t.Fatalf("extractAmounts() returned %d amounts, want %d", len(amounts), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}

			a := amounts[0]
			if a.Currency != tt.wantCurrency {
				t.Errorf("currency = %q, want %q", a.Currency, tt.wantCurrency)
			}
			if a.Normalized != tt.wantNorm {
				t.Errorf("normalized = %v, want %v", a.Normalized, tt.wantNorm)
			}
			if tt.wantNorm && !approxEqual(a.USD, tt.wantUSD) {
				t.Errorf("usd = %f, want %f", a.USD, tt.wantUSD)
			}
		})
	}
}

func TestExtractAmountsPreservesOrder(t *testing.T) {
	rates := lexicon.Default().CurrencyRates

	amounts := extractAmounts("an upfront payment of $10 million and an earnout of $4 million", rates)
	if len(amounts) != 2 {
		t.Fatalf("expected 2 amounts, got %d", len(amounts))
	}
	if amounts[0].USD != 10_000_000 || amounts[1].USD != 4_000_000 {
		t.Errorf("amounts out of document order: %+v", amounts)
	}
}

func approxEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.01
}
