package services

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// AssetReaderSvc defines read operations for fixed assets
type AssetReaderSvc interface {
	// GetAssetByID retrieves a fixed asset.
	GetAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error)

	// ListAssets retrieves assets for a branch ("ALL" for every branch).
	ListAssets(ctx context.Context, branchID string) ([]domain.FixedAsset, error)
}

// AssetWriterSvc defines write operations for fixed assets
type AssetWriterSvc interface {
	// AcquireAsset registers a fixed asset and posts the acquisition journal.
	AcquireAsset(ctx context.Context, req dto.AcquireAssetRequest) (*domain.FixedAsset, *domain.Journal, error)

	// DisposeAsset writes off an asset at its current book value and posts
	// the disposal journal.
	DisposeAsset(ctx context.Context, assetID string, req dto.DisposeAssetRequest) (*domain.Journal, error)

	// RunDepreciation posts the monthly depreciation journal per branch for
	// all active assets still within their useful life. Re-running for a
	// period an asset already covered is a no-op for that asset.
	RunDepreciation(ctx context.Context, req dto.RunDepreciationRequest) (*dto.DepreciationRunResponse, error)
}

// AssetSvcFacade combines all asset-related service interfaces
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
}
