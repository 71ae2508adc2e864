package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a purchase or acquisition was funded.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCredit PaymentMethod = "CREDIT"
)

// AssetStatus is the lifecycle state of a fixed asset.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

// FixedAsset represents a depreciable asset owned by a branch.
// Accumulated depreciation is never stored; it is recomputed from the
// straight-line formula whenever needed so the periodic run and the
// disposal path cannot drift apart.
type FixedAsset struct {
	AssetID          string          `json:"assetID"` // Primary Key (UUID)
	BranchID         string          `json:"branchID"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	SalvageValue     decimal.Decimal `json:"salvageValue"`
	UsefulLifeMonths int             `json:"usefulLifeMonths"`
	PurchaseDate     time.Time       `json:"purchaseDate"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	Status           AssetStatus     `json:"status"`
	// LastDepreciationPeriod is the Period.Key of the most recent
	// depreciation run that processed this asset; 0 when never depreciated.
	LastDepreciationPeriod int `json:"lastDepreciationPeriod"`
	AuditFields
}
