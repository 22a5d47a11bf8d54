package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	portsrepo "github.com/eureka-stamping/invreg-backend/internal/core/ports/repositories"
	"github.com/eureka-stamping/invreg-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{db: db}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// Helper to convert domain.Company to models.Company
func toModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:         d.CompanyID,
		Name:              d.Name,
		Email:             d.Email,
		RegisteredAddress: d.RegisteredAddress,
		PasswordHash:      d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// Helper to convert models.Company to domain.Company
func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Email:             m.Email,
		RegisteredAddress: m.RegisteredAddress,
		PasswordHash:      m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
        INSERT INTO companies (company_id, name, email, registered_address, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.Email,
		m.RegisteredAddress,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, email, registered_address, password_hash, created_at, updated_at
		FROM companies
		WHERE company_id = $1;
	`
	return r.findCompany(ctx, query, companyID)
}

func (r *PgxCompanyRepository) FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, email, registered_address, password_hash, created_at, updated_at
		FROM companies
		WHERE email = $1;
	`
	return r.findCompany(ctx, query, email)
}

func (r *PgxCompanyRepository) findCompany(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var m models.Company
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.CompanyID,
		&m.Name,
		&m.Email,
		&m.RegisteredAddress,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	company := toDomainCompany(m)
	return &company, nil
}
