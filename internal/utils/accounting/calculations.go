package accounting

import (
	"fmt"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a transaction amount
// based on account category and transaction type. Used by services and the
// reporting engine so both follow the same accounting convention.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(txn domain.Transaction, category domain.AccountCategory) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	switch category {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account category '%s' encountered for account ID %s", category, txn.AccountID)
	}
	return signedAmount, nil
}

// SumByType totals the debit and credit sides of a set of transactions.
func SumByType(transactions []domain.Transaction) (debitTotal, creditTotal decimal.Decimal) {
	debitTotal = decimal.Zero
	creditTotal = decimal.Zero
	for _, txn := range transactions {
		if txn.TransactionType == domain.Debit {
			debitTotal = debitTotal.Add(txn.Amount)
		} else {
			creditTotal = creditTotal.Add(txn.Amount)
		}
	}
	return debitTotal, creditTotal
}

// MonthsElapsed returns the number of whole months between from and to,
// never negative.
func MonthsElapsed(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AccumulatedDepreciation computes straight-line accumulated depreciation of
// an asset as of a date, capped at price minus salvage value. This is the
// single source of truth for both the periodic depreciation run and disposal;
// the value is derived, never read from a stored running total.
func AccumulatedDepreciation(price, salvageValue decimal.Decimal, usefulLifeMonths int, purchaseDate, asOf time.Time) decimal.Decimal {
	if usefulLifeMonths <= 0 {
		return decimal.Zero
	}
	base := price.Sub(salvageValue)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	months := MonthsElapsed(purchaseDate, asOf)
	if months >= usefulLifeMonths {
		return base
	}
	// base * months / life keeps exact results whenever life divides evenly,
	// and the cap above bounds any rounding drift at end of life.
	return base.Mul(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(int64(usefulLifeMonths)))
}

// BookValue returns the remaining book value of an asset as of a date.
func BookValue(price, salvageValue decimal.Decimal, usefulLifeMonths int, purchaseDate, asOf time.Time) decimal.Decimal {
	return price.Sub(AccumulatedDepreciation(price, salvageValue, usefulLifeMonths, purchaseDate, asOf))
}
