package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/utils/accounting"
)

var (
	ErrJournalMinEntries  = errors.New("journal must have at least two transaction entries")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// UnbalancedJournalError reports a double-entry violation with both side
// totals so callers can show what failed to balance.
type UnbalancedJournalError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *UnbalancedJournalError) Error() string {
	return fmt.Sprintf("journal entries do not balance: debits sum is %s and credits sum is %s",
		e.DebitTotal.String(), e.CreditTotal.String())
}

func (e *UnbalancedJournalError) Unwrap() error {
	return apperrors.ErrValidation
}

// journalService is the double-entry posting engine. Every financial event in
// the system, manual or translated, funnels through it.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateJournalRequest enforces the posting rules: at least two lines,
// positive amounts, matching debit and credit totals, and every referenced
// account existing and active. Both legs may hit the same account; a
// self-transfer is balanced and legal.
func (s *journalService) validateJournalRequest(ctx context.Context, req dto.PostJournalRequest) error {
	if len(req.Transactions) < 2 {
		return ErrJournalMinEntries
	}
	if req.Description == "" {
		return ErrDescriptionMissing
	}
	if req.BranchID == "" {
		return fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: journal date is required", apperrors.ErrValidation)
	}

	accountSet := make(map[string]bool)
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, txn := range req.Transactions {
		if txn.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txn.AccountID)
		}
		accountSet[txn.AccountID] = true
		if txn.TransactionType == domain.Debit {
			debitTotal = debitTotal.Add(txn.Amount)
		} else {
			creditTotal = creditTotal.Add(txn.Amount)
		}
	}
	if !debitTotal.Equal(creditTotal) {
		return &UnbalancedJournalError{DebitTotal: debitTotal, CreditTotal: creditTotal}
	}

	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: ID %s", ErrAccountInactive, id)
		}
	}
	return nil
}

// buildJournal materializes the domain journal and its lines from a request.
func (s *journalService) buildJournal(req dto.PostJournalRequest) (domain.Journal, []domain.Transaction) {
	now := time.Now().UTC()
	journalID := uuid.NewString()

	transactions := make([]domain.Transaction, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		transactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       txnReq.AccountID,
			Amount:          txnReq.Amount,
			TransactionType: txnReq.TransactionType,
			Notes:           txnReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}

	debitTotal, _ := accounting.SumByType(transactions)
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	journal := domain.Journal{
		JournalID:   journalID,
		BranchID:    req.BranchID,
		JournalDate: req.Date,
		Description: req.Description,
		Source:      source,
		Amount:      debitTotal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
		Transactions: transactions,
	}
	return journal, transactions
}

// PostJournalInTx validates and persists a journal inside the caller's
// transaction. Event translators use this to keep the domain mutation and its
// ledger entry atomic.
func (s *journalService) PostJournalInTx(ctx context.Context, tx pgx.Tx, req dto.PostJournalRequest) (*domain.Journal, error) {
	if err := s.validateJournalRequest(ctx, req); err != nil {
		return nil, err
	}

	journal, transactions := s.buildJournal(req)
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions); err != nil {
		s.LogError(ctx, err, "failed to save journal", slog.String("journal_id", journal.JournalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("branch_id", journal.BranchID),
		slog.String("source", string(journal.Source)),
		slog.String("amount", journal.Amount.String()))
	return &journal, nil
}

// PostJournal validates and persists a balanced journal in its own transaction.
func (s *journalService) PostJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.Journal, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	journal, err := s.PostJournalInTx(ctx, tx, req)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal: %w", err)
	}
	return journal, nil
}

// GetJournalByID retrieves a journal with its transactions.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal transactions: %w", err)
	}
	journal.Transactions = transactions
	return journal, nil
}

// ListJournals retrieves a page of journals using token pagination.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	branchID := params.BranchID
	if branchID == "" {
		branchID = domain.BranchAll
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, branchID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}

// ListTransactionsByAccount retrieves a page of one account's lines.
func (s *journalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	branchID := params.BranchID
	if branchID == "" {
		branchID = domain.BranchAll
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, branchID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
