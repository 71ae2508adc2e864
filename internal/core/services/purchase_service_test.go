package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// --- Mock PurchaseInvoiceRepository ---
type MockPurchaseInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseInvoiceRepositoryWithTx = (*MockPurchaseInvoiceRepository)(nil)

func (m *MockPurchaseInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.PurchaseInvoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, updatedAt)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PurchaseServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockPurchaseInvoiceRepository
	mockJournal *MockJournalWriter
	mockRoles   *MockRoleResolver
	service     portssvc.PurchaseSvcFacade

	inventoryAccountID string
	cashAccountID      string
	payableAccountID   string
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPurchaseInvoiceRepository)
	suite.mockJournal = new(MockJournalWriter)
	suite.mockRoles = new(MockRoleResolver)
	suite.service = services.NewPurchaseService(suite.mockRepo, suite.mockJournal, suite.mockRoles)

	suite.inventoryAccountID = uuid.NewString()
	suite.cashAccountID = uuid.NewString()
	suite.payableAccountID = uuid.NewString()
}

func (suite *PurchaseServiceTestSuite) expectRole(role domain.PaymentRole, accountID string) {
	suite.mockRoles.On("ResolveRole", mock.Anything, role).Return(&domain.Account{
		AccountID:   accountID,
		PaymentRole: role,
		IsActive:    true,
	}, nil).Once()
}

// --- Test Cases ---

func (suite *PurchaseServiceTestSuite) TestReceivePurchase_CashIsPaidImmediately() {
	ctx := context.Background()
	req := dto.ReceivePurchaseRequest{
		BranchID:      "BR-01",
		SupplierName:  "PharmaSupply Co",
		InvoiceDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCash,
	}

	suite.expectRole(domain.RoleInventoryAsset, suite.inventoryAccountID)
	suite.expectRole(domain.RoleCashReceipt, suite.cashAccountID)
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("SaveInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.PurchaseInvoice) bool {
		return inv.Status == domain.InvoicePaid
	})).Return(nil).Once()

	var postedReq dto.PostJournalRequest
	suite.mockJournal.On("PostJournalInTx", ctx, nil, mock.AnythingOfType("dto.PostJournalRequest")).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.PostJournalRequest)
		}).
		Return(&domain.Journal{JournalID: uuid.NewString(), Source: domain.SourcePurchase}, nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	invoice, journal, err := suite.service.ReceivePurchase(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Require().NotNil(journal)
	suite.Equal(domain.InvoicePaid, invoice.Status)

	suite.Require().Len(postedReq.Transactions, 2)
	suite.Equal(suite.inventoryAccountID, postedReq.Transactions[0].AccountID)
	suite.Equal(domain.Debit, postedReq.Transactions[0].TransactionType)
	suite.Equal(suite.cashAccountID, postedReq.Transactions[1].AccountID)
	suite.Equal(domain.Credit, postedReq.Transactions[1].TransactionType)
	suite.True(postedReq.Transactions[1].Amount.Equal(decimal.NewFromInt(800)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestReceivePurchase_CreditStaysUnpaid() {
	ctx := context.Background()
	req := dto.ReceivePurchaseRequest{
		BranchID:      "BR-01",
		SupplierName:  "PharmaSupply Co",
		InvoiceDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCredit,
	}

	suite.expectRole(domain.RoleInventoryAsset, suite.inventoryAccountID)
	suite.expectRole(domain.RoleAccountsPayable, suite.payableAccountID)
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("SaveInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.PurchaseInvoice) bool {
		return inv.Status == domain.InvoiceUnpaid
	})).Return(nil).Once()
	suite.mockJournal.On("PostJournalInTx", ctx, nil, mock.MatchedBy(func(req dto.PostJournalRequest) bool {
		return len(req.Transactions) == 2 && req.Transactions[1].AccountID == suite.payableAccountID
	})).Return(&domain.Journal{JournalID: uuid.NewString(), Source: domain.SourcePurchase}, nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	invoice, _, err := suite.service.ReceivePurchase(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceUnpaid, invoice.Status)
	suite.mockRoles.AssertNotCalled(suite.T(), "ResolveRole", mock.Anything, domain.RoleCashReceipt)
}

func (suite *PurchaseServiceTestSuite) TestReceivePurchase_NonPositiveTotal() {
	ctx := context.Background()
	req := dto.ReceivePurchaseRequest{
		BranchID:      "BR-01",
		SupplierName:  "PharmaSupply Co",
		InvoiceDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Total:         decimal.Zero,
		PaymentMethod: domain.PaymentCash,
	}

	_, _, err := suite.service.ReceivePurchase(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestSettlePayable_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.PurchaseInvoice{
		InvoiceID:     invoiceID,
		BranchID:      "BR-01",
		SupplierName:  "PharmaSupply Co",
		InvoiceDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCredit,
		Status:        domain.InvoiceUnpaid,
	}
	req := dto.SettlePayableRequest{PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.expectRole(domain.RoleAccountsPayable, suite.payableAccountID)
	suite.expectRole(domain.RoleCashReceipt, suite.cashAccountID)
	suite.mockRepo.On("MarkInvoicePaidInTx", ctx, nil, invoiceID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var postedReq dto.PostJournalRequest
	suite.mockJournal.On("PostJournalInTx", ctx, nil, mock.AnythingOfType("dto.PostJournalRequest")).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.PostJournalRequest)
		}).
		Return(&domain.Journal{JournalID: uuid.NewString(), Source: domain.SourcePayableSettlement}, nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	journal, err := suite.service.SettlePayable(ctx, invoiceID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)

	suite.Require().Len(postedReq.Transactions, 2)
	suite.Equal(suite.payableAccountID, postedReq.Transactions[0].AccountID)
	suite.Equal(domain.Debit, postedReq.Transactions[0].TransactionType)
	suite.Equal(suite.cashAccountID, postedReq.Transactions[1].AccountID)
	suite.Equal(domain.Credit, postedReq.Transactions[1].TransactionType)
	suite.True(postedReq.Transactions[0].Amount.Equal(decimal.NewFromInt(800)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestSettlePayable_AlreadyPaid() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.PurchaseInvoice{
		InvoiceID:     invoiceID,
		BranchID:      "BR-01",
		Total:         decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCredit,
		Status:        domain.InvoicePaid,
	}
	req := dto.SettlePayableRequest{PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettlePayable(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostJournalInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestSettlePayable_CashPurchaseRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.PurchaseInvoice{
		InvoiceID:     invoiceID,
		BranchID:      "BR-01",
		Total:         decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCash,
		Status:        domain.InvoiceUnpaid,
	}
	req := dto.SettlePayableRequest{PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettlePayable(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkInvoicePaidInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
