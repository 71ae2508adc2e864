package repositories

import (
	"context"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AssetReader defines read operations for fixed asset data.
type AssetReader interface {
	// FindAssetByID retrieves a specific asset.
	FindAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error)

	// FindAssetByIDForUpdate retrieves an asset and locks its row within the
	// given transaction.
	FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.FixedAsset, error)

	// ListAssets retrieves a paginated list of assets.
	ListAssets(ctx context.Context, limit int, offset int) ([]domain.FixedAsset, error)

	// ListDepreciableAssetsForUpdate retrieves and locks every active asset
	// eligible for a depreciation run: positive useful life, purchased on or
	// before periodEnd, marker strictly before periodKey.
	ListDepreciableAssetsForUpdate(ctx context.Context, tx pgx.Tx, periodKey int, periodEnd time.Time) ([]domain.FixedAsset, error)
}

// AssetWriter defines write operations for fixed asset data.
type AssetWriter interface {
	// SaveAssetInTx persists a new asset inside the given transaction.
	SaveAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.FixedAsset) error

	// MarkAssetDisposedInTx flips an active asset to DISPOSED. Returns
	// apperrors.ErrConflict when the asset is not active.
	MarkAssetDisposedInTx(ctx context.Context, tx pgx.Tx, assetID string, updatedAt time.Time) error

	// AdvanceDepreciationMarkerInTx moves the asset's last depreciation
	// period forward, guarded so a concurrent run for the same period
	// cannot advance it twice. Reports whether the marker moved.
	AdvanceDepreciationMarkerInTx(ctx context.Context, tx pgx.Tx, assetID string, periodKey int, updatedAt time.Time) (bool, error)
}

// AssetRepositoryFacade combines all asset-related repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}

// AssetRepositoryWithTx extends AssetRepositoryFacade with transaction capabilities.
type AssetRepositoryWithTx interface {
	AssetRepositoryFacade
	TransactionManager
}
