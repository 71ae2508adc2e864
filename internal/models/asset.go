package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedAsset represents a depreciable asset row. Accumulated depreciation is
// not stored; last_depreciation_period only marks how far the periodic run
// has advanced.
type FixedAsset struct {
	AssetID                string          `db:"asset_id"`
	BranchID               string          `db:"branch_id"`
	Name                   string          `db:"name"`
	Price                  decimal.Decimal `db:"price"`
	SalvageValue           decimal.Decimal `db:"salvage_value"`
	UsefulLifeMonths       int             `db:"useful_life_months"`
	PurchaseDate           time.Time       `db:"purchase_date"`
	PaymentMethod          string          `db:"payment_method"`
	Status                 string          `db:"status"`
	LastDepreciationPeriod int             `db:"last_depreciation_period"`
	AuditFields
}
