package mapping

import (
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/models"
)

// ToModelFixedAsset converts a domain FixedAsset to a model FixedAsset.
func ToModelFixedAsset(d domain.FixedAsset) models.FixedAsset {
	return models.FixedAsset{
		AssetID:                d.AssetID,
		BranchID:               d.BranchID,
		Name:                   d.Name,
		Price:                  d.Price,
		SalvageValue:           d.SalvageValue,
		UsefulLifeMonths:       d.UsefulLifeMonths,
		PurchaseDate:           d.PurchaseDate,
		PaymentMethod:          string(d.PaymentMethod),
		Status:                 string(d.Status),
		LastDepreciationPeriod: d.LastDepreciationPeriod,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFixedAsset converts a model FixedAsset to a domain FixedAsset.
func ToDomainFixedAsset(m models.FixedAsset) domain.FixedAsset {
	return domain.FixedAsset{
		AssetID:                m.AssetID,
		BranchID:               m.BranchID,
		Name:                   m.Name,
		Price:                  m.Price,
		SalvageValue:           m.SalvageValue,
		UsefulLifeMonths:       m.UsefulLifeMonths,
		PurchaseDate:           m.PurchaseDate,
		PaymentMethod:          domain.PaymentMethod(m.PaymentMethod),
		Status:                 domain.AssetStatus(m.Status),
		LastDepreciationPeriod: m.LastDepreciationPeriod,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
