package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
)

func TestCalculateSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		txnType  domain.TransactionType
		category domain.AccountCategory
		want     decimal.Decimal
		wantErr  bool
	}{
		{name: "debit to asset is positive", txnType: domain.Debit, category: domain.Asset, want: amount},
		{name: "credit to asset is negative", txnType: domain.Credit, category: domain.Asset, want: amount.Neg()},
		{name: "debit to expense is positive", txnType: domain.Debit, category: domain.Expense, want: amount},
		{name: "debit to liability is negative", txnType: domain.Debit, category: domain.Liability, want: amount.Neg()},
		{name: "credit to revenue is positive", txnType: domain.Credit, category: domain.Revenue, want: amount},
		{name: "credit to equity is positive", txnType: domain.Credit, category: domain.Equity, want: amount},
		{name: "unknown category errors", txnType: domain.Debit, category: domain.AccountCategory("WEIRD"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{
				AccountID:       "acc_123",
				Amount:          amount,
				TransactionType: tt.txnType,
			}
			got, err := CalculateSignedAmount(txn, tt.category)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestSumByType(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: decimal.NewFromInt(300), TransactionType: domain.Debit},
		{Amount: decimal.NewFromInt(120), TransactionType: domain.Debit},
		{Amount: decimal.NewFromInt(420), TransactionType: domain.Credit},
	}

	debit, credit := SumByType(transactions)
	assert.True(t, debit.Equal(decimal.NewFromInt(420)), "debit total should be 420, got %s", debit)
	assert.True(t, credit.Equal(decimal.NewFromInt(420)), "credit total should be 420, got %s", credit)

	debit, credit = SumByType(nil)
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestMonthsElapsed(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same day",
			from: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "partial month does not count",
			from: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "exactly one month",
			from: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "across year boundary",
			from: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
		{
			name: "to before from is clamped to zero",
			from: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsElapsed(tt.from, tt.to))
		})
	}
}

func TestAccumulatedDepreciation(t *testing.T) {
	price := decimal.NewFromInt(1200)
	salvage := decimal.NewFromInt(200)
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		asOf time.Time
		want decimal.Decimal
	}{
		{
			name: "before any full month",
			asOf: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			want: decimal.Zero,
		},
		{
			name: "24 of 60 months",
			asOf: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want: decimal.NewFromInt(400), // (1200-200) * 24/60
		},
		{
			name: "capped at depreciable base after end of life",
			asOf: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
			want: decimal.NewFromInt(1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccumulatedDepreciation(price, salvage, 60, purchase, tt.asOf)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}

	t.Run("zero useful life yields zero", func(t *testing.T) {
		got := AccumulatedDepreciation(price, salvage, 0, purchase, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, got.IsZero())
	})

	t.Run("salvage at or above price yields zero", func(t *testing.T) {
		got := AccumulatedDepreciation(price, price, 60, purchase, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, got.IsZero())
	})
}

func TestBookValue(t *testing.T) {
	price := decimal.NewFromInt(1200)
	salvage := decimal.NewFromInt(200)
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// 24 of 60 months elapsed: 400 depreciated, 800 remaining.
	got := BookValue(price, salvage, 60, purchase, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, got.Equal(decimal.NewFromInt(800)), "expected 800, got %s", got)

	// Fully depreciated assets bottom out at salvage value.
	got = BookValue(price, salvage, 60, purchase, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, got.Equal(salvage), "expected %s, got %s", salvage, got)
}
