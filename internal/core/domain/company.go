package domain

// Company represents a registered issuing organisation in the domain.
type Company struct {
	CompanyID         string `json:"companyID"` // Primary Key (UUID)
	Name              string `json:"name"`
	Email             string `json:"email"`
	RegisteredAddress string `json:"registeredAddress"`
	PasswordHash      string `json:"-"`
	AuditFields
}

// EmailDomain returns the part of the company email after the '@', or "" when
// the email is malformed. User registrations must match this domain.
func (c Company) EmailDomain() string {
	for i := len(c.Email) - 1; i >= 0; i-- {
		if c.Email[i] == '@' {
			return c.Email[i+1:]
		}
	}
	return ""
}
