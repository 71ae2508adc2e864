package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	"github.com/medifin/clinic_ledger_app/internal/models"
	"github.com/medifin/clinic_ledger_app/internal/utils/mapping"
)

const assetColumns = `asset_id, branch_id, name, price, salvage_value, useful_life_months, purchase_date, payment_method, status, last_depreciation_period, created_at, last_updated_at`

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for fixed asset data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryWithTx {
	return &PgxAssetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryWithTx = (*PgxAssetRepository)(nil)

func scanAsset(row interface{ Scan(dest ...any) error }) (models.FixedAsset, error) {
	var m models.FixedAsset
	err := row.Scan(
		&m.AssetID,
		&m.BranchID,
		&m.Name,
		&m.Price,
		&m.SalvageValue,
		&m.UsefulLifeMonths,
		&m.PurchaseDate,
		&m.PaymentMethod,
		&m.Status,
		&m.LastDepreciationPeriod,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAssetInTx persists a new asset inside the caller's transaction.
func (r *PgxAssetRepository) SaveAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.FixedAsset) error {
	m := mapping.ToModelFixedAsset(asset)

	query := `
		INSERT INTO fixed_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.AssetID,
		m.BranchID,
		m.Name,
		m.Price,
		m.SalvageValue,
		m.UsefulLifeMonths,
		m.PurchaseDate,
		m.PaymentMethod,
		m.Status,
		m.LastDepreciationPeriod,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", m.AssetID, err)
	}
	return nil
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE asset_id = $1;`

	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	d := mapping.ToDomainFixedAsset(m)
	return &d, nil
}

// FindAssetByIDForUpdate retrieves an asset and locks its row.
func (r *PgxAssetRepository) FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE asset_id = $1 FOR UPDATE;`

	m, err := scanAsset(tx.QueryRow(ctx, query, assetID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s for update: %w", assetID, err)
	}
	d := mapping.ToDomainFixedAsset(m)
	return &d, nil
}

// ListAssets retrieves a paginated list of assets.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, limit int, offset int) ([]domain.FixedAsset, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + assetColumns + ` FROM fixed_assets ORDER BY purchase_date DESC, asset_id LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, mapping.ToDomainFixedAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}
	return assets, nil
}

// ListDepreciableAssetsForUpdate retrieves and locks every active asset still
// owed depreciation for the given period: positive useful life, purchased on
// or before the period end, marker strictly before the period.
func (r *PgxAssetRepository) ListDepreciableAssetsForUpdate(ctx context.Context, tx pgx.Tx, periodKey int, periodEnd time.Time) ([]domain.FixedAsset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM fixed_assets
		WHERE status = 'ACTIVE'
		  AND useful_life_months > 0
		  AND purchase_date <= $2
		  AND last_depreciation_period < $1
		ORDER BY asset_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, periodKey, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query depreciable assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked asset row: %w", err)
		}
		assets = append(assets, mapping.ToDomainFixedAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating locked asset rows: %w", rows.Err())
	}
	return assets, nil
}

// MarkAssetDisposedInTx flips an active asset to DISPOSED.
func (r *PgxAssetRepository) MarkAssetDisposedInTx(ctx context.Context, tx pgx.Tx, assetID string, updatedAt time.Time) error {
	query := `
		UPDATE fixed_assets
		SET status = 'DISPOSED', last_updated_at = $2
		WHERE asset_id = $1 AND status = 'ACTIVE';
	`
	cmdTag, err := tx.Exec(ctx, query, assetID, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark asset %s disposed: %w", assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s is not active", apperrors.ErrConflict, assetID)
	}
	return nil
}

// AdvanceDepreciationMarkerInTx moves the marker forward. The guard keeps a
// concurrent run for the same period from advancing it twice; the caller
// skips the asset when no row moved.
func (r *PgxAssetRepository) AdvanceDepreciationMarkerInTx(ctx context.Context, tx pgx.Tx, assetID string, periodKey int, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE fixed_assets
		SET last_depreciation_period = $2, last_updated_at = $3
		WHERE asset_id = $1 AND last_depreciation_period < $2;
	`
	cmdTag, err := tx.Exec(ctx, query, assetID, periodKey, updatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to advance depreciation marker for asset %s: %w", assetID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
