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

// --- Mock SaleInvoiceRepository ---
type MockSaleInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.SaleInvoiceRepositoryWithTx = (*MockSaleInvoiceRepository)(nil)

func (m *MockSaleInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SaleInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSaleInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SaleInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleInvoice), args.Error(1)
}

func (m *MockSaleInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SaleInvoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleInvoice), args.Error(1)
}

func (m *MockSaleInvoiceRepository) MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, updatedAt)
	return args.Error(0)
}

func (m *MockSaleInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSaleInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock JournalWriterSvc ---
type MockJournalWriter struct {
	mock.Mock
}

var _ portssvc.JournalWriterSvc = (*MockJournalWriter)(nil)

func (m *MockJournalWriter) PostJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalWriter) PostJournalInTx(ctx context.Context, tx pgx.Tx, req dto.PostJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, tx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// --- Mock RoleResolverSvc ---
type MockRoleResolver struct {
	mock.Mock
}

var _ portssvc.RoleResolverSvc = (*MockRoleResolver)(nil)

func (m *MockRoleResolver) ResolveRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite Setup ---
type SalesServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockSaleInvoiceRepository
	mockJournal *MockJournalWriter
	mockRoles   *MockRoleResolver
	service     portssvc.SalesSvcFacade

	cashAccountID    string
	serviceAccountID string
	drugAccountID    string
}

func (suite *SalesServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSaleInvoiceRepository)
	suite.mockJournal = new(MockJournalWriter)
	suite.mockRoles = new(MockRoleResolver)
	suite.service = services.NewSalesService(suite.mockRepo, suite.mockJournal, suite.mockRoles)

	suite.cashAccountID = uuid.NewString()
	suite.serviceAccountID = uuid.NewString()
	suite.drugAccountID = uuid.NewString()
}

func (suite *SalesServiceTestSuite) expectRole(role domain.PaymentRole, accountID string) {
	suite.mockRoles.On("ResolveRole", mock.Anything, role).Return(&domain.Account{
		AccountID:   accountID,
		PaymentRole: role,
		IsActive:    true,
	}, nil).Once()
}

func unpaidInvoice(invoiceID string) *domain.SaleInvoice {
	drugID := "DRUG-42"
	return &domain.SaleInvoice{
		InvoiceID:   invoiceID,
		BranchID:    "BR-01",
		InvoiceDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Total:       decimal.NewFromInt(420),
		Status:      domain.InvoiceUnpaid,
		Lines: []domain.SaleInvoiceLine{
			{LineID: uuid.NewString(), InvoiceID: invoiceID, Description: "Consultation", Amount: decimal.NewFromInt(300)},
			{LineID: uuid.NewString(), InvoiceID: invoiceID, Description: "Amoxicillin", Amount: decimal.NewFromInt(120), DrugID: &drugID},
		},
	}
}

// --- Test Cases ---

func (suite *SalesServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := dto.CreateSaleInvoiceRequest{
		BranchID:    "BR-01",
		InvoiceDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateSaleInvoiceLineRequest{
			{Description: "Consultation", Amount: decimal.NewFromInt(300)},
			{Description: "Amoxicillin", Amount: decimal.NewFromInt(120)},
		},
	}

	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.SaleInvoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(420)))
	suite.Equal(domain.InvoiceUnpaid, invoice.Status)
	suite.Len(invoice.Lines, 2)
	// Revenue is deferred to settlement, so nothing hits the ledger here.
	suite.mockJournal.AssertNotCalled(suite.T(), "PostJournal", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_NonPositiveLine() {
	ctx := context.Background()
	req := dto.CreateSaleInvoiceRequest{
		BranchID:    "BR-01",
		InvoiceDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateSaleInvoiceLineRequest{
			{Description: "Consultation", Amount: decimal.Zero},
		},
	}

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_SplitsRevenueByLineKind() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := unpaidInvoice(invoiceID)
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(420),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.expectRole(domain.RoleCashReceipt, suite.cashAccountID)
	suite.expectRole(domain.RoleServiceRevenue, suite.serviceAccountID)
	suite.expectRole(domain.RoleDrugRevenue, suite.drugAccountID)
	suite.mockRepo.On("MarkInvoicePaidInTx", ctx, nil, invoiceID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var postedReq dto.PostJournalRequest
	suite.mockJournal.On("PostJournalInTx", ctx, nil, mock.AnythingOfType("dto.PostJournalRequest")).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.PostJournalRequest)
		}).
		Return(&domain.Journal{JournalID: uuid.NewString(), Source: domain.SourceSale}, nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	journal, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.SourceSale, journal.Source)

	suite.Equal("BR-01", postedReq.BranchID)
	suite.Equal(domain.SourceSale, postedReq.Source)
	suite.Require().Len(postedReq.Transactions, 3)
	suite.Equal(suite.cashAccountID, postedReq.Transactions[0].AccountID)
	suite.Equal(domain.Debit, postedReq.Transactions[0].TransactionType)
	suite.True(postedReq.Transactions[0].Amount.Equal(decimal.NewFromInt(420)))
	suite.Equal(suite.serviceAccountID, postedReq.Transactions[1].AccountID)
	suite.True(postedReq.Transactions[1].Amount.Equal(decimal.NewFromInt(300)))
	suite.Equal(suite.drugAccountID, postedReq.Transactions[2].AccountID)
	suite.True(postedReq.Transactions[2].Amount.Equal(decimal.NewFromInt(120)))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
	suite.mockRoles.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_ServiceOnlyInvoiceSkipsDrugRevenue() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.SaleInvoice{
		InvoiceID:   invoiceID,
		BranchID:    "BR-01",
		InvoiceDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Total:       decimal.NewFromInt(300),
		Status:      domain.InvoiceUnpaid,
		Lines: []domain.SaleInvoiceLine{
			{LineID: uuid.NewString(), InvoiceID: invoiceID, Description: "Consultation", Amount: decimal.NewFromInt(300)},
		},
	}
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(300),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.expectRole(domain.RoleCashReceipt, suite.cashAccountID)
	suite.expectRole(domain.RoleServiceRevenue, suite.serviceAccountID)
	suite.mockRepo.On("MarkInvoicePaidInTx", ctx, nil, invoiceID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournal.On("PostJournalInTx", ctx, nil, mock.MatchedBy(func(req dto.PostJournalRequest) bool {
		return len(req.Transactions) == 2
	})).Return(&domain.Journal{JournalID: uuid.NewString(), Source: domain.SourceSale}, nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	_, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().NoError(err)
	suite.mockRoles.AssertNotCalled(suite.T(), "ResolveRole", mock.Anything, domain.RoleDrugRevenue)
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_AmountMismatch() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := unpaidInvoice(invoiceID)
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(400),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkInvoicePaidInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostJournalInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_AlreadyPaid() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := unpaidInvoice(invoiceID)
	invoice.Status = domain.InvoicePaid
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(420),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostJournalInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_UnmappedCashRole() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := unpaidInvoice(invoiceID)
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(420),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(invoice, nil).Once()
	suite.mockRoles.On("ResolveRole", mock.Anything, domain.RoleCashReceipt).Return(nil, services.ErrUnmappedRole).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnmappedRole)
	// The invoice status flip never happens, so the rollback leaves it unpaid.
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkInvoicePaidInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestSettleInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.SettleSaleInvoiceRequest{
		AmountPaid:  decimal.NewFromInt(420),
		PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.SettleInvoice(ctx, invoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSalesService(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
