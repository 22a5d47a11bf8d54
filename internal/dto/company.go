package dto

import (
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
)

// RegisterCompanyRequest defines the data needed to register a company.
type RegisterCompanyRequest struct {
	Name              string `json:"name" binding:"required,max=200"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	RegisteredAddress string `json:"registeredAddress" binding:"required"`
}

// LoginCompanyRequest defines company login credentials.
type LoginCompanyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CompanyResponse defines the data returned for a company. Never includes the
// password hash.
type CompanyResponse struct {
	CompanyID         string    `json:"companyID"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	RegisteredAddress string    `json:"registeredAddress"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToCompanyResponse converts a domain.Company to its response DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:         c.CompanyID,
		Name:              c.Name,
		Email:             c.Email,
		RegisteredAddress: c.RegisteredAddress,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
