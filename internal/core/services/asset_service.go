package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/utils/accounting"
)

// assetService translates fixed asset lifecycle events into ledger entries.
// Accumulated depreciation is always derived from the straight-line formula,
// never read back from the ledger, so the periodic run and disposal agree.
type assetService struct {
	BaseService
	assetRepo  portsrepo.AssetRepositoryWithTx
	journalSvc portssvc.JournalWriterSvc
	roles      portssvc.RoleResolverSvc
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryWithTx, journalSvc portssvc.JournalWriterSvc, roles portssvc.RoleResolverSvc) portssvc.AssetSvcFacade {
	return &assetService{
		assetRepo:  assetRepo,
		journalSvc: journalSvc,
		roles:      roles,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// GetAssetByID retrieves a fixed asset.
func (s *assetService) GetAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error) {
	return s.assetRepo.FindAssetByID(ctx, assetID)
}

// ListAssets retrieves assets, optionally filtered to a branch.
func (s *assetService) ListAssets(ctx context.Context, branchID string) ([]domain.FixedAsset, error) {
	assets, err := s.assetRepo.ListAssets(ctx, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if branchID == "" || branchID == domain.BranchAll {
		return assets, nil
	}
	filtered := assets[:0]
	for _, asset := range assets {
		if asset.BranchID == branchID {
			filtered = append(filtered, asset)
		}
	}
	return filtered, nil
}

// AcquireAsset registers a depreciable asset and posts the acquisition
// journal: the fixed asset account is debited, and cash or accounts payable
// credited depending on the payment method.
func (s *assetService) AcquireAsset(ctx context.Context, req dto.AcquireAssetRequest) (*domain.FixedAsset, *domain.Journal, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: asset price must be positive", apperrors.ErrValidation)
	}
	if req.SalvageValue.IsNegative() {
		return nil, nil, fmt.Errorf("%w: salvage value must not be negative", apperrors.ErrValidation)
	}
	if req.SalvageValue.GreaterThanOrEqual(req.Price) {
		return nil, nil, fmt.Errorf("%w: salvage value must be below the asset price", apperrors.ErrValidation)
	}
	if req.UsefulLifeMonths <= 0 {
		return nil, nil, fmt.Errorf("%w: useful life must be positive", apperrors.ErrValidation)
	}

	assetAccount, err := s.roles.ResolveRole(ctx, domain.RoleFixedAsset)
	if err != nil {
		return nil, nil, err
	}
	creditRole := domain.RoleAccountsPayable
	if req.PaymentMethod == domain.PaymentCash {
		creditRole = domain.RoleCashReceipt
	}
	creditAccount, err := s.roles.ResolveRole(ctx, creditRole)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	asset := domain.FixedAsset{
		AssetID:          uuid.NewString(),
		BranchID:         req.BranchID,
		Name:             req.Name,
		Price:            req.Price,
		SalvageValue:     req.SalvageValue,
		UsefulLifeMonths: req.UsefulLifeMonths,
		PurchaseDate:     req.PurchaseDate,
		PaymentMethod:    req.PaymentMethod,
		Status:           domain.AssetActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.assetRepo.Rollback(ctx, tx)
	}()

	if err := s.assetRepo.SaveAssetInTx(ctx, tx, asset); err != nil {
		s.LogError(ctx, err, "failed to save asset", slog.String("asset_id", asset.AssetID))
		return nil, nil, fmt.Errorf("failed to save asset: %w", err)
	}

	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
		BranchID:    req.BranchID,
		Date:        req.PurchaseDate,
		Description: fmt.Sprintf("Asset acquisition: %s", req.Name),
		Source:      domain.SourceAssetAcquisition,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: assetAccount.AccountID, Amount: req.Price, TransactionType: domain.Debit},
			{AccountID: creditAccount.AccountID, Amount: req.Price, TransactionType: domain.Credit},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit asset acquisition: %w", err)
	}

	s.LogInfo(ctx, "asset acquired",
		slog.String("asset_id", asset.AssetID),
		slog.String("journal_id", journal.JournalID),
		slog.String("price", req.Price.String()))
	return &asset, journal, nil
}

// DisposeAsset writes an active asset off at its book value as of the
// disposal date. The entry reverses the asset cost, clears the accumulated
// depreciation recognized so far and books the remainder as disposal loss.
func (s *assetService) DisposeAsset(ctx context.Context, assetID string, req dto.DisposeAssetRequest) (*domain.Journal, error) {
	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.assetRepo.Rollback(ctx, tx)
	}()

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetActive {
		return nil, fmt.Errorf("%w: asset %s is already %s", apperrors.ErrConflict, assetID, asset.Status)
	}
	if req.DisposalDate.Before(asset.PurchaseDate) {
		return nil, fmt.Errorf("%w: disposal date precedes purchase date", apperrors.ErrValidation)
	}

	accumulated := accounting.AccumulatedDepreciation(asset.Price, asset.SalvageValue, asset.UsefulLifeMonths, asset.PurchaseDate, req.DisposalDate)
	bookValue := asset.Price.Sub(accumulated)

	assetAccount, err := s.roles.ResolveRole(ctx, domain.RoleFixedAsset)
	if err != nil {
		return nil, err
	}

	// CREDIT the asset at cost, DEBIT accumulated depreciation and the loss
	// for the remainder; the three legs balance by construction.
	journalReq := dto.PostJournalRequest{
		BranchID:    asset.BranchID,
		Date:        req.DisposalDate,
		Description: fmt.Sprintf("Asset disposal: %s", asset.Name),
		Source:      domain.SourceAssetDisposal,
	}
	if accumulated.GreaterThan(decimal.Zero) {
		accumAccount, err := s.roles.ResolveRole(ctx, domain.RoleAccumulatedDepreciation)
		if err != nil {
			return nil, err
		}
		journalReq.Transactions = append(journalReq.Transactions, dto.CreateTransactionRequest{
			AccountID:       accumAccount.AccountID,
			Amount:          accumulated,
			TransactionType: domain.Debit,
		})
	}
	if bookValue.GreaterThan(decimal.Zero) {
		lossAccount, err := s.roles.ResolveRole(ctx, domain.RoleAssetDisposalLoss)
		if err != nil {
			return nil, err
		}
		journalReq.Transactions = append(journalReq.Transactions, dto.CreateTransactionRequest{
			AccountID:       lossAccount.AccountID,
			Amount:          bookValue,
			TransactionType: domain.Debit,
		})
	}
	journalReq.Transactions = append(journalReq.Transactions, dto.CreateTransactionRequest{
		AccountID:       assetAccount.AccountID,
		Amount:          asset.Price,
		TransactionType: domain.Credit,
	})

	if err := s.assetRepo.MarkAssetDisposedInTx(ctx, tx, assetID, time.Now().UTC()); err != nil {
		return nil, err
	}
	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, journalReq)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit asset disposal: %w", err)
	}

	s.LogInfo(ctx, "asset disposed",
		slog.String("asset_id", assetID),
		slog.String("journal_id", journal.JournalID),
		slog.String("book_value", bookValue.String()))
	return journal, nil
}

// RunDepreciation posts one depreciation journal per branch for the given
// month. Each asset's amount is the difference between its accumulated
// depreciation at the end of this period and at the end of the previous one,
// so skipped salvage caps and end-of-life stubs come out exactly. Assets
// whose marker already covers the period are skipped, making re-runs no-ops.
func (s *assetService) RunDepreciation(ctx context.Context, req dto.RunDepreciationRequest) (*dto.DepreciationRunResponse, error) {
	period := domain.Period{Year: req.Year, Month: req.Month}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: invalid period %d-%d", apperrors.ErrValidation, req.Year, req.Month)
	}
	periodEnd := period.End()
	prevEnd := period.Previous().End()

	expenseAccount, err := s.roles.ResolveRole(ctx, domain.RoleDepreciationExpense)
	if err != nil {
		return nil, err
	}
	accumAccount, err := s.roles.ResolveRole(ctx, domain.RoleAccumulatedDepreciation)
	if err != nil {
		return nil, err
	}

	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.assetRepo.Rollback(ctx, tx)
	}()

	assets, err := s.assetRepo.ListDepreciableAssetsForUpdate(ctx, tx, period.Key(), periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciable assets: %w", err)
	}

	now := time.Now().UTC()
	branchTotals := make(map[string]decimal.Decimal)
	processed := 0
	for _, asset := range assets {
		amount := accounting.AccumulatedDepreciation(asset.Price, asset.SalvageValue, asset.UsefulLifeMonths, asset.PurchaseDate, periodEnd).
			Sub(accounting.AccumulatedDepreciation(asset.Price, asset.SalvageValue, asset.UsefulLifeMonths, asset.PurchaseDate, prevEnd))

		moved, err := s.assetRepo.AdvanceDepreciationMarkerInTx(ctx, tx, asset.AssetID, period.Key(), now)
		if err != nil {
			return nil, fmt.Errorf("failed to advance depreciation marker: %w", err)
		}
		if !moved {
			// A concurrent run already covered this asset for the period.
			continue
		}
		if amount.GreaterThan(decimal.Zero) {
			branchTotals[asset.BranchID] = branchTotals[asset.BranchID].Add(amount)
			processed++
		}
	}

	branchIDs := make([]string, 0, len(branchTotals))
	for branchID := range branchTotals {
		branchIDs = append(branchIDs, branchID)
	}
	sort.Strings(branchIDs)

	resp := &dto.DepreciationRunResponse{
		Year:            req.Year,
		Month:           req.Month,
		AssetsProcessed: processed,
	}
	for _, branchID := range branchIDs {
		total := branchTotals[branchID]
		journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
			BranchID:    branchID,
			Date:        periodEnd,
			Description: fmt.Sprintf("Depreciation for %04d-%02d", req.Year, req.Month),
			Source:      domain.SourceDepreciation,
			Transactions: []dto.CreateTransactionRequest{
				{AccountID: expenseAccount.AccountID, Amount: total, TransactionType: domain.Debit},
				{AccountID: accumAccount.AccountID, Amount: total, TransactionType: domain.Credit},
			},
		})
		if err != nil {
			return nil, err
		}
		resp.Branches = append(resp.Branches, dto.DepreciationBranchResult{
			BranchID:  branchID,
			JournalID: journal.JournalID,
			Amount:    total,
		})
	}

	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit depreciation run: %w", err)
	}

	s.LogInfo(ctx, "depreciation run completed",
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
		slog.Int("assets_processed", processed),
		slog.Int("branches", len(resp.Branches)))
	return resp, nil
}
