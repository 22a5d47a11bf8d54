package models

import "time"

// User represents a row of the users table.
type User struct {
	UserID       string `db:"user_id"`
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	CompanyID    string `db:"company_id"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}

// LoginLog represents a row of the login_log table.
type LoginLog struct {
	LogID     int64     `db:"log_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
