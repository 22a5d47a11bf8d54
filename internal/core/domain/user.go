package domain

// User represents a person acting on behalf of a company.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	CompanyID    string `json:"companyID"`
	PasswordHash string `json:"-"`
	AuditFields
}
