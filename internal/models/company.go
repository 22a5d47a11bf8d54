package models

// Company represents a row of the companies table.
type Company struct {
	CompanyID         string `db:"company_id"`
	Name              string `db:"name"`
	Email             string `db:"email"`
	RegisteredAddress string `db:"registered_address"`
	PasswordHash      string `db:"password_hash"`
	AuditFields
}
