package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AcquireAssetRequest is the asset acquisition event payload.
type AcquireAssetRequest struct {
	BranchID         string               `json:"branchID" binding:"required"`
	Name             string               `json:"name" binding:"required"`
	Price            decimal.Decimal      `json:"price" binding:"required"`
	SalvageValue     decimal.Decimal      `json:"salvageValue"`
	UsefulLifeMonths int                  `json:"usefulLifeMonths" binding:"required,gt=0"`
	PurchaseDate     time.Time            `json:"purchaseDate" binding:"required"`
	PaymentMethod    domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CREDIT"`
}

// DisposeAssetRequest is the asset disposal event payload.
type DisposeAssetRequest struct {
	DisposalDate time.Time `json:"disposalDate" binding:"required"`
}

// RunDepreciationRequest triggers the periodic depreciation job for a month.
type RunDepreciationRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// FixedAssetResponse defines the data returned for a fixed asset, including
// the derived accumulated depreciation and book value as of now.
type FixedAssetResponse struct {
	AssetID                 string               `json:"assetID"`
	BranchID                string               `json:"branchID"`
	Name                    string               `json:"name"`
	Price                   decimal.Decimal      `json:"price"`
	SalvageValue            decimal.Decimal      `json:"salvageValue"`
	UsefulLifeMonths        int                  `json:"usefulLifeMonths"`
	PurchaseDate            time.Time            `json:"purchaseDate"`
	PaymentMethod           domain.PaymentMethod `json:"paymentMethod"`
	Status                  domain.AssetStatus   `json:"status"`
	AccumulatedDepreciation decimal.Decimal      `json:"accumulatedDepreciation"`
	BookValue               decimal.Decimal      `json:"bookValue"`
}

// ToFixedAssetResponse converts a domain FixedAsset to its response DTO. The
// depreciation figures are derived for the given date, not stored.
func ToFixedAssetResponse(asset *domain.FixedAsset, asOf time.Time) FixedAssetResponse {
	accumulated := accounting.AccumulatedDepreciation(asset.Price, asset.SalvageValue, asset.UsefulLifeMonths, asset.PurchaseDate, asOf)
	return FixedAssetResponse{
		AssetID:                 asset.AssetID,
		BranchID:                asset.BranchID,
		Name:                    asset.Name,
		Price:                   asset.Price,
		SalvageValue:            asset.SalvageValue,
		UsefulLifeMonths:        asset.UsefulLifeMonths,
		PurchaseDate:            asset.PurchaseDate,
		PaymentMethod:           asset.PaymentMethod,
		Status:                  asset.Status,
		AccumulatedDepreciation: accumulated,
		BookValue:               asset.Price.Sub(accumulated),
	}
}

// ToFixedAssetResponses converts a slice of assets.
func ToFixedAssetResponses(assets []domain.FixedAsset, asOf time.Time) []FixedAssetResponse {
	res := make([]FixedAssetResponse, len(assets))
	for i := range assets {
		res[i] = ToFixedAssetResponse(&assets[i], asOf)
	}
	return res
}

// DepreciationBranchResult is the outcome of one branch's depreciation journal.
type DepreciationBranchResult struct {
	BranchID  string          `json:"branchID"`
	JournalID string          `json:"journalID"`
	Amount    decimal.Decimal `json:"amount"`
}

// DepreciationRunResponse summarizes a depreciation run.
type DepreciationRunResponse struct {
	Year            int                        `json:"year"`
	Month           int                        `json:"month"`
	AssetsProcessed int                        `json:"assetsProcessed"`
	Branches        []DepreciationBranchResult `json:"branches"`
}
