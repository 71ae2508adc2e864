package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// GeneralLedgerRow is one movement on an account with the running balance
// after the movement.
type GeneralLedgerRow struct {
	JournalID      string          `json:"journalID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	BranchID       string          `json:"branchID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport reconstructs the history of one account over a range.
type GeneralLedgerReport struct {
	AccountID        string             `json:"accountID"`
	AccountCode      string             `json:"accountCode"`
	AccountName      string             `json:"accountName"`
	Category         AccountCategory    `json:"category"`
	BeginningBalance decimal.Decimal    `json:"beginningBalance"`
	Rows             []GeneralLedgerRow `json:"rows"`
	EndingBalance    decimal.Decimal    `json:"endingBalance"`
}

// PAndLReport represents a profit and loss report for a period.
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport represents a point-in-time balance sheet. Current-year
// net income is injected as a synthetic equity line when non-zero.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// CashFlowReport is an indirect-method cash flow statement. Operating is the
// period's net income; Investing and Financing are classified from the
// counter-legs of journal entries that move the cash account.
type CashFlowReport struct {
	OperatingTotal       decimal.Decimal `json:"operatingTotal"`
	InvestingTotal       decimal.Decimal `json:"investingTotal"`
	FinancingTotal       decimal.Decimal `json:"financingTotal"`
	NetCashChange        decimal.Decimal `json:"netCashChange"`
	BeginningCashBalance decimal.Decimal `json:"beginningCashBalance"`
	EndingCashBalance    decimal.Decimal `json:"endingCashBalance"`
}

// CashCounterLeg is a non-cash leg of a journal entry that also moved the
// cash account, used to classify the cash movement.
type CashCounterLeg struct {
	JournalID       string          `json:"journalID"`
	Category        AccountCategory `json:"category"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
}
