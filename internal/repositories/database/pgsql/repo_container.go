package pgsql

import (
	portsrepo "github.com/eureka-stamping/invreg-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		LoginLogRepo: newPgxLoginLogRepository(dbPool),
	}
}
