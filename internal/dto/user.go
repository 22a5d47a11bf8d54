package dto

import (
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a user under a company.
type RegisterUserRequest struct {
	FullName  string `json:"fullName" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	CompanyID string `json:"companyID" binding:"required,uuid"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginUserRequest defines user login credentials.
type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CompanyID string    `json:"companyID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		FullName:  u.FullName,
		Email:     u.Email,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}
