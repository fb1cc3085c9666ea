package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/middleware"
	"github.com/dealdesk/deal_workflow_app/internal/utils"
)

// userService provides user management and authentication. Role switching via
// registration is a stand-in for a real identity system; the workflow engine
// treats the role it is handed as trusted input.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Role:         role,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// EnsureOAuthUser finds the account provisioned for a verified email or
// creates a SALES account for first-time logins. Email doubles as username for
// OAuth accounts.
func (s *userService) EnsureOAuthUser(ctx context.Context, email, name, provider string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Username:     email,
		Name:         name,
		Role:         domain.RoleSales,
		AuthProvider: provider,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     provider,
			LastUpdatedAt: now,
			LastUpdatedBy: provider,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to provision OAuth user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to provision OAuth user: %w", err)
	}

	logger.Info("OAuth user provisioned", slog.String("user_id", newUser.UserID), slog.String("provider", provider))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}
