package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) HasTransactions(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:     "1000",
		Name:     "Cash",
		Category: domain.Asset,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.RoleNone, account.PaymentRole)
	suite.True(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithRole() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		Category:    domain.Asset,
		PaymentRole: domain.RoleCashReceipt,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByRole", ctx, domain.RoleCashReceipt).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleCashReceipt, account.PaymentRole)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", Category: domain.Asset}
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1000"}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateRoleMapping() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1001",
		Name:        "Second Cash",
		Category:    domain.Asset,
		PaymentRole: domain.RoleCashReceipt,
	}
	holder := &domain.Account{AccountID: uuid.NewString(), Code: "1000", PaymentRole: domain.RoleCashReceipt}

	suite.mockRepo.On("FindAccountByCode", ctx, "1001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByRole", ctx, domain.RoleCashReceipt).Return(holder, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateRoleMapping)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CategoryChangeBlockedWhenUsed() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", Category: domain.Asset, IsActive: true}
	newCategory := domain.Expense

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasTransactions", ctx, accountID).Return(true, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Category: &newCategory})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CodeRaceReportsDuplicateCode() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", Category: domain.Asset, IsActive: true}
	newCode := "1001"

	// Pre-check passes, then another writer claims the code first; the
	// unique index on code reports the loser.
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, newCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyCode, newCode)).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Code: &newCode})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.NotErrorIs(err, services.ErrDuplicateRoleMapping)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RoleRaceReportsDuplicateRole() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", Category: domain.Asset, IsActive: true}
	newRole := domain.RoleCashReceipt

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("FindAccountByRole", ctx, newRole).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyRole, newRole)).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{PaymentRole: &newRole})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateRoleMapping)
	suite.NotErrorIs(err, services.ErrDuplicateCode)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasTransactions", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_InUse() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasTransactions", ctx, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_PostingRace() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}

	// A journal line lands between the usage check and the delete; the
	// foreign key rejects the delete and the caller still sees in-use.
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasTransactions", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID).
		Return(fmt.Errorf("%w: account is referenced by journal lines", apperrors.ErrConflict)).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
}

func (suite *AccountServiceTestSuite) TestResolveRole_Success() {
	ctx := context.Background()
	cash := &domain.Account{AccountID: uuid.NewString(), PaymentRole: domain.RoleCashReceipt, IsActive: true}

	suite.mockRepo.On("FindAccountByRole", ctx, domain.RoleCashReceipt).Return(cash, nil).Once()

	account, err := suite.service.ResolveRole(ctx, domain.RoleCashReceipt)

	suite.Require().NoError(err)
	suite.Equal(cash.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestResolveRole_Unmapped() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByRole", ctx, domain.RoleSalaryPayable).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRole(ctx, domain.RoleSalaryPayable)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnmappedRole)
}

func (suite *AccountServiceTestSuite) TestResolveRole_InactiveHolder() {
	ctx := context.Background()
	inactive := &domain.Account{AccountID: uuid.NewString(), PaymentRole: domain.RoleCashReceipt, IsActive: false}

	suite.mockRepo.On("FindAccountByRole", ctx, domain.RoleCashReceipt).Return(inactive, nil).Once()

	_, err := suite.service.ResolveRole(ctx, domain.RoleCashReceipt)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnmappedRole)
}

func (suite *AccountServiceTestSuite) TestResolveRole_NoneRejected() {
	ctx := context.Background()

	_, err := suite.service.ResolveRole(ctx, domain.RoleNone)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByRole", mock.Anything, mock.Anything)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
