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

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	loginLogRepo portsrepo.LoginLogWriter
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyReader, loginLogRepo portsrepo.LoginLogWriter) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		loginLogRepo: loginLogRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check user email", slog.String("email", email))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrDuplicate)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company %s not found: %w", req.CompanyID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to find company for user registration", slog.String("company_id", req.CompanyID))
		return nil, err
	}

	// Users must register with an address on their company's email domain.
	domainPart := company.EmailDomain()
	if domainPart == "" || !strings.HasSuffix(email, "@"+domainPart) {
		return nil, fmt.Errorf("user email must match company domain @%s: %w", domainPart, apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash user password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		FullName:     req.FullName,
		Email:        email,
		CompanyID:    company.CompanyID,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.String("company_id", user.CompanyID))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to find user by email", slog.String("email", email))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	// Login trail is best-effort; a failed insert must not fail the login.
	if err := s.loginLogRepo.RecordLogin(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to record login", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "User authenticated", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsersByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsersByCompany(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users",
			slog.String("company_id", companyID),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list users for company %s: %w", companyID, err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}
