package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is one journal line in a manual posting.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// PostJournalRequest defines a manual journal posting. The same structure is
// built internally by every event translator.
type PostJournalRequest struct {
	BranchID     string                     `json:"branchID" binding:"required"`
	Date         time.Time                  `json:"date" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	Source       domain.JournalSource       `json:"-"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// TransactionResponse defines the data returned for one journal line.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	JournalID          string                 `json:"journalID"`
	AccountID          string                 `json:"accountID"`
	Amount             decimal.Decimal        `json:"amount"`
	TransactionType    domain.TransactionType `json:"transactionType"`
	Notes              string                 `json:"notes,omitempty"`
	JournalDate        time.Time              `json:"journalDate,omitempty"`
	JournalDescription string                 `json:"journalDescription,omitempty"`
	BranchID           string                 `json:"branchID,omitempty"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID    string                `json:"journalID"`
	BranchID     string                `json:"branchID"`
	JournalDate  time.Time             `json:"journalDate"`
	Description  string                `json:"description"`
	Source       domain.JournalSource  `json:"source"`
	Amount       decimal.Decimal       `json:"amount"`
	CreatedAt    time.Time             `json:"createdAt"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		JournalID:          txn.JournalID,
		AccountID:          txn.AccountID,
		Amount:             txn.Amount,
		TransactionType:    txn.TransactionType,
		Notes:              txn.Notes,
		JournalDate:        txn.JournalDate,
		JournalDescription: txn.JournalDescription,
		BranchID:           txn.BranchID,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}

// ToJournalResponse converts a domain.Journal to its response.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		BranchID:    j.BranchID,
		JournalDate: j.JournalDate,
		Description: j.Description,
		Source:      j.Source,
		Amount:      j.Amount,
		CreatedAt:   j.CreatedAt,
	}
	if len(j.Transactions) > 0 {
		resp.Transactions = ToTransactionResponses(j.Transactions)
	}
	return resp
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	BranchID  string  `form:"branchID,default=ALL"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListTransactionsParams defines query parameters for listing account lines.
type ListTransactionsParams struct {
	BranchID  string  `form:"branchID,default=ALL"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of journal lines.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
