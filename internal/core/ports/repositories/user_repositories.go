package repositories

import (
	"context"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByCompany retrieves a paginated list of a company's users.
	FindUsersByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// LoginLogWriter records successful user logins for auditability.
type LoginLogWriter interface {
	// RecordLogin appends one login event for the user.
	RecordLogin(ctx context.Context, userID string) error
}
