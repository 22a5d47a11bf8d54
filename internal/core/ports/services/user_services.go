package services

import (
	"context"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
)

// UserSvcFacade defines operations for company users.
type UserSvcFacade interface {
	// RegisterUser creates a new user under an existing company. The user's
	// email domain must match the company's email domain.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies credentials, records the login, and returns
	// the user. Returns apperrors.ErrUnauthorized on a bad email/password pair.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsersByCompany retrieves a paginated list of a company's users.
	ListUsersByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error)
}
