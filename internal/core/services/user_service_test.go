package services_test

import (
	"context"
	"testing"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/core/services"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
	"github.com/eureka-stamping/invreg-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersByCompanyFn func(ctx context.Context, companyID string, limit, offset int) ([]domain.User, error)
	SaveUserFn           func(ctx context.Context, user domain.User) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.User, error) {
	if m.FindUsersByCompanyFn != nil {
		return m.FindUsersByCompanyFn(ctx, companyID, limit, offset)
	}
	args := m.Called(ctx, companyID, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock LoginLogWriter ---
type MockLoginLogWriter struct {
	mock.Mock
}

func (m *MockLoginLogWriter) RecordLogin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockCompanyRepo *MockCompanyRepository
	mockLoginLog    *MockLoginLogWriter
	service         portssvc.UserSvcFacade

	companyID string
	company   *domain.Company
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockLoginLog = new(MockLoginLogWriter)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockCompanyRepo, suite.mockLoginLog)

	suite.companyID = uuid.NewString()
	suite.company = &domain.Company{
		CompanyID: suite.companyID,
		Name:      "Acme Corp",
		Email:     "billing@acme.example",
	}
}

// --- RegisterUser Tests ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName:  "Jordan Smith",
		Email:     "Jordan@acme.example",
		CompanyID: suite.companyID,
		Password:  "password123",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(suite.company, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jordan@acme.example" && u.CompanyID == suite.companyID && u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("jordan@acme.example", user.Email)
	suite.Equal(suite.companyID, user.CompanyID)

	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DomainMismatch() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName:  "Jordan Smith",
		Email:     "jordan@othercorp.example",
		CompanyID: suite.companyID,
		Password:  "password123",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@othercorp.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(suite.company, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jordan@acme.example"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		FullName:  "Jordan Smith",
		Email:     "jordan@acme.example",
		CompanyID: suite.companyID,
		Password:  "password123",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestRegisterUser_UnknownCompany() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		FullName:  "Jordan Smith",
		Email:     "jordan@acme.example",
		CompanyID: suite.companyID,
		Password:  "password123",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jordan@acme.example", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(user, nil).Once()
	suite.mockLoginLog.On("RecordLogin", ctx, user.UserID).Return(nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "jordan@acme.example", "password123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockLoginLog.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_LoginLogFailureIsNotFatal() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jordan@acme.example", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(user, nil).Once()
	suite.mockLoginLog.On("RecordLogin", ctx, user.UserID).Return(assert.AnError).Once()

	got, err := suite.service.AuthenticateUser(ctx, "jordan@acme.example", "password123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jordan@acme.example", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@acme.example").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "jordan@acme.example", "wrongpassword")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
	suite.mockLoginLog.AssertNotCalled(suite.T(), "RecordLogin", mock.Anything, mock.Anything)
}

// --- GetUserByID / ListUsersByCompany Tests ---

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestListUsersByCompany_Success() {
	ctx := context.Background()
	expected := []domain.User{
		{UserID: uuid.NewString(), CompanyID: suite.companyID},
		{UserID: uuid.NewString(), CompanyID: suite.companyID},
	}

	suite.mockUserRepo.On("FindUsersByCompany", ctx, suite.companyID, 20, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsersByCompany(ctx, suite.companyID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2)
}

func (suite *UserServiceTestSuite) TestListUsersByCompany_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUsersByCompany", ctx, suite.companyID, 20, 0).Return(nil, nil).Once()

	users, err := suite.service.ListUsersByCompany(ctx, suite.companyID, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
