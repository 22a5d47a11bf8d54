package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	portsrepo "github.com/eureka-stamping/invreg-backend/internal/core/ports/repositories"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
	"github.com/eureka-stamping/invreg-backend/internal/utils"
	"github.com/google/uuid"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service
func NewCompanyService(repo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: repo}
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.companyRepo.FindCompanyByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check company email", slog.String("email", email))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("company with email %s: %w", email, apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash company password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:         uuid.NewString(),
		Name:              req.Name,
		Email:             email,
		RegisteredAddress: req.RegisteredAddress,
		PasswordHash:      hash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_id", company.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company registered",
		slog.String("company_id", company.CompanyID),
		slog.String("email", email))
	return &company, nil
}

func (s *companyService) AuthenticateCompany(ctx context.Context, email string, password string) (*domain.Company, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	company, err := s.companyRepo.FindCompanyByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure as a wrong password, to obscure which one it was.
			return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to find company by email", slog.String("email", email))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, company.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	s.LogInfo(ctx, "Company authenticated", slog.String("company_id", company.CompanyID))
	return company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID", slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}
