package services

import (
	"context"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
)

// CompanySvcFacade defines operations for company accounts.
type CompanySvcFacade interface {
	// RegisterCompany creates a new company account.
	// Returns apperrors.ErrDuplicate when the email is already registered.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error)

	// AuthenticateCompany verifies credentials and returns the company.
	// Returns apperrors.ErrUnauthorized on a bad email/password pair.
	AuthenticateCompany(ctx context.Context, email string, password string) (*domain.Company, error)

	// GetCompanyByID retrieves a company by its ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
