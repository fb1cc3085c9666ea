package services

import (
	"context"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a new local user account.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// EnsureOAuthUser finds the user provisioned for the given verified email or
	// creates one with the default role.
	EnsureOAuthUser(ctx context.Context, email, name, provider string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
