package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/core/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/repositories/memory"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo    *memory.UserRepository
	service portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.repo = memory.NewUserRepository()
	suite.service = services.NewUserService(suite.repo)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	user, err := suite.service.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "checker1",
		Password: "correct-horse-battery",
		Name:     "Casey Checker",
		Role:     string(domain.RoleChecker),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleChecker, user.Role)
	suite.NotEqual("correct-horse-battery", user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestRegisterUser_UnknownRole() {
	_, err := suite.service.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "intruder",
		Password: "whatever-password",
		Name:     "Nobody",
		Role:     "SUPERADMIN",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "sales1",
		Password: "some-long-password",
		Name:     "Sam Sales",
		Role:     string(domain.RoleSales),
	}

	_, err := suite.service.RegisterUser(ctx, req)
	suite.Require().NoError(err)

	_, err = suite.service.RegisterUser(ctx, req)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	_, err := suite.service.RegisterUser(ctx, dto.RegisterRequest{
		Username: "sales1",
		Password: "some-long-password",
		Name:     "Sam Sales",
		Role:     string(domain.RoleSales),
	})
	suite.Require().NoError(err)

	user, err := suite.service.AuthenticateUser(ctx, "sales1", "some-long-password")
	suite.Require().NoError(err)
	suite.Equal("sales1", user.Username)

	_, err = suite.service.AuthenticateUser(ctx, "sales1", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "missing", "some-long-password")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestEnsureOAuthUser() {
	ctx := context.Background()

	// First login provisions a SALES account keyed by email.
	user, err := suite.service.EnsureOAuthUser(ctx, "new@example.com", "New Person", "google")
	suite.Require().NoError(err)
	suite.Equal(domain.RoleSales, user.Role)
	suite.Equal("new@example.com", user.Username)
	suite.Equal("google", user.AuthProvider)

	// Second login returns the same account.
	again, err := suite.service.EnsureOAuthUser(ctx, "new@example.com", "New Person", "google")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, again.UserID)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
