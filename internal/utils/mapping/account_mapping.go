package mapping

import (
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		Category:    models.AccountCategory(d.Category),
		PaymentRole: string(d.PaymentRole),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    domain.AccountCategory(m.Category),
		PaymentRole: domain.PaymentRole(m.PaymentRole),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
