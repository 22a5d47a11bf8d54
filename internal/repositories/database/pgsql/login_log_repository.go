package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/eureka-stamping/invreg-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLoginLogRepository struct {
	db *pgxpool.Pool
}

func newPgxLoginLogRepository(db *pgxpool.Pool) portsrepo.LoginLogWriter {
	return &PgxLoginLogRepository{db: db}
}

// Ensure PgxLoginLogRepository implements portsrepo.LoginLogWriter
var _ portsrepo.LoginLogWriter = (*PgxLoginLogRepository)(nil)

func (r *PgxLoginLogRepository) RecordLogin(ctx context.Context, userID string) error {
	query := `INSERT INTO login_log (user_id) VALUES ($1);`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
