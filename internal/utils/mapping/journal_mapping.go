package mapping

import (
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		BranchID:    d.BranchID,
		JournalDate: d.JournalDate,
		Description: d.Description,
		Source:      string(d.Source),
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		BranchID:    m.BranchID,
		JournalDate: m.JournalDate,
		Description: m.Description,
		Source:      domain.JournalSource(m.Source),
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		JournalID:       d.JournalID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		JournalID:          m.JournalID,
		AccountID:          m.AccountID,
		Amount:             m.Amount,
		TransactionType:    domain.TransactionType(m.TransactionType),
		Notes:              m.Notes,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		JournalDate:        m.JournalDate,
		JournalDescription: m.JournalDescription,
		BranchID:           m.BranchID,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
