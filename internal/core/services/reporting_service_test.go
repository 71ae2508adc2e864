package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivityBefore(ctx context.Context, accountID string, branchID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, branchID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetLedgerRows(ctx context.Context, accountID string, branchID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, branchID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, branchID, from, to)
	var revenue, expenses []domain.AccountAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, branchID, asOf)
	var assets, liabilities, equity []domain.AccountAmount
	if args.Get(0) != nil {
		assets = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		liabilities = args.Get(1).([]domain.AccountAmount)
	}
	if args.Get(2) != nil {
		equity = args.Get(2).([]domain.AccountAmount)
	}
	return assets, liabilities, equity, args.Error(3)
}

func (m *MockReportingRepository) GetCashCounterLegs(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashCounterLeg, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashCounterLeg), args.Error(1)
}

func (m *MockReportingRepository) GetCashActivityBefore(ctx context.Context, branchID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, branchID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockReportingRepository
	mockAccounts *MockAccountReader
	service      portssvc.ReportingService

	from time.Time
	to   time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountReader)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccounts)

	suite.from = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_NormalizesEmptyBranch() {
	ctx := context.Background()
	asOf := suite.to
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", Category: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(100)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Service revenue", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(400)},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, domain.BranchAll, asOf).Return(rows, nil).Once()

	result, err := suite.service.TrialBalance(ctx, "", asOf)

	suite.Require().NoError(err)
	suite.Equal(rows, result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_DebitNormalAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID: accountID,
		Code:      "1000",
		Name:      "Cash",
		Category:  domain.Asset,
		IsActive:  true,
	}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	// 700 debits and 200 credits before the range: beginning balance 500.
	suite.mockRepo.On("GetAccountActivityBefore", ctx, accountID, "BR-01", suite.from).
		Return(decimal.NewFromInt(700), decimal.NewFromInt(200), nil).Once()
	suite.mockRepo.On("GetLedgerRows", ctx, accountID, "BR-01", suite.from, suite.to).
		Return([]domain.Transaction{
			{
				TransactionID:      uuid.NewString(),
				JournalID:          "J-1",
				AccountID:          accountID,
				Amount:             decimal.NewFromInt(300),
				TransactionType:    domain.Debit,
				JournalDate:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				JournalDescription: "Sale settlement",
				BranchID:           "BR-01",
			},
			{
				TransactionID:      uuid.NewString(),
				JournalID:          "J-2",
				AccountID:          accountID,
				Amount:             decimal.NewFromInt(120),
				TransactionType:    domain.Credit,
				JournalDate:        time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
				JournalDescription: "Payable settlement",
				BranchID:           "BR-01",
			},
		}, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, accountID, "BR-01", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("1000", report.AccountCode)
	suite.True(report.BeginningBalance.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(300)))
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(800)))
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(120)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(680)))
	suite.True(report.EndingBalance.Equal(decimal.NewFromInt(680)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_CreditNormalAccountFlipsBeginningBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID: accountID,
		Code:      "4000",
		Name:      "Service revenue",
		Category:  domain.Revenue,
		IsActive:  true,
	}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	// 50 debits and 350 credits before the range: beginning balance 300 on the
	// credit side.
	suite.mockRepo.On("GetAccountActivityBefore", ctx, accountID, domain.BranchAll, suite.from).
		Return(decimal.NewFromInt(50), decimal.NewFromInt(350), nil).Once()
	suite.mockRepo.On("GetLedgerRows", ctx, accountID, domain.BranchAll, suite.from, suite.to).
		Return([]domain.Transaction{
			{
				TransactionID:      uuid.NewString(),
				JournalID:          "J-3",
				AccountID:          accountID,
				Amount:             decimal.NewFromInt(100),
				TransactionType:    domain.Credit,
				JournalDate:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
				JournalDescription: "Sale settlement",
				BranchID:           "BR-01",
			},
		}, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, accountID, "", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.BeginningBalance.Equal(decimal.NewFromInt(300)))
	suite.True(report.EndingBalance.Equal(decimal.NewFromInt(400)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GeneralLedger(ctx, accountID, "", suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetLedgerRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ComputesNetIncome() {
	ctx := context.Background()
	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "4000", Name: "Service revenue", NetAmount: decimal.NewFromInt(900)},
		{AccountID: uuid.NewString(), Code: "4100", Name: "Drug revenue", NetAmount: decimal.NewFromInt(300)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "5000", Name: "Salary expense", NetAmount: decimal.NewFromInt(500)},
	}

	suite.mockRepo.On("GetProfitAndLossData", ctx, "BR-01", suite.from, suite.to).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, "BR-01", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1200)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(500)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(700)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_InjectsCurrentYearEarnings() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	fiscalYearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assets := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", NetAmount: decimal.NewFromInt(1700)},
	}
	liabilities := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "2000", Name: "Accounts payable", NetAmount: decimal.NewFromInt(400)},
	}
	equity := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "3000", Name: "Owner capital", NetAmount: decimal.NewFromInt(600)},
	}
	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "4000", Name: "Service revenue", NetAmount: decimal.NewFromInt(1000)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "5000", Name: "Salary expense", NetAmount: decimal.NewFromInt(300)},
	}

	suite.mockRepo.On("GetBalanceSheetData", ctx, "BR-01", asOf).Return(assets, liabilities, equity, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, "BR-01", fiscalYearStart, asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, "BR-01", asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Equity, 2)
	suite.Equal("Current Year Earnings", report.Equity[1].Name)
	suite.True(report.Equity[1].NetAmount.Equal(decimal.NewFromInt(700)))
	// The sheet closes: assets == liabilities + equity.
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1700)))
	suite.True(report.TotalLiabilities.Add(report.TotalEquity).Equal(report.TotalAssets))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ZeroNetIncomeSkipsSyntheticLine() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	fiscalYearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	equity := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "3000", Name: "Owner capital", NetAmount: decimal.NewFromInt(600)},
	}

	suite.mockRepo.On("GetBalanceSheetData", ctx, domain.BranchAll, asOf).
		Return([]domain.AccountAmount{}, []domain.AccountAmount{}, equity, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, domain.BranchAll, fiscalYearStart, asOf).
		Return([]domain.AccountAmount{}, []domain.AccountAmount{}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, "", asOf)

	suite.Require().NoError(err)
	suite.Len(report.Equity, 1)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_ClassifiesCounterLegs() {
	ctx := context.Background()

	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "4000", Name: "Service revenue", NetAmount: decimal.NewFromInt(1000)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Code: "5000", Name: "Salary expense", NetAmount: decimal.NewFromInt(400)},
	}
	legs := []domain.CashCounterLeg{
		// Cash asset purchase: the asset account was debited, cash went out.
		{JournalID: "J-1", Category: domain.Asset, TransactionType: domain.Debit, Amount: decimal.NewFromInt(900)},
		// Loan received: a liability was credited, cash came in.
		{JournalID: "J-2", Category: domain.Liability, TransactionType: domain.Credit, Amount: decimal.NewFromInt(500)},
		// Sale revenue leg: already inside net income, must be skipped.
		{JournalID: "J-3", Category: domain.Revenue, TransactionType: domain.Credit, Amount: decimal.NewFromInt(1000)},
	}

	suite.mockRepo.On("GetProfitAndLossData", ctx, "BR-01", suite.from, suite.to).Return(revenue, expenses, nil).Once()
	suite.mockRepo.On("GetCashCounterLegs", ctx, "BR-01", suite.from, suite.to).Return(legs, nil).Once()
	suite.mockRepo.On("GetCashActivityBefore", ctx, "BR-01", suite.from).
		Return(decimal.NewFromInt(2500), decimal.NewFromInt(500), nil).Once()

	report, err := suite.service.CashFlow(ctx, "BR-01", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.OperatingTotal.Equal(decimal.NewFromInt(600)))
	suite.True(report.InvestingTotal.Equal(decimal.NewFromInt(-900)))
	suite.True(report.FinancingTotal.Equal(decimal.NewFromInt(500)))
	suite.True(report.NetCashChange.Equal(decimal.NewFromInt(200)))
	suite.True(report.BeginningCashBalance.Equal(decimal.NewFromInt(2000)))
	suite.True(report.EndingCashBalance.Equal(decimal.NewFromInt(2200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
