// File: internal/dtos/user.go
package dtos

import (
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// UserResponseDTO defines what fields to expose in user API responses.
// The password hash is never included.
type UserResponseDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	JoinDate  string  `json:"joinDate"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponseDTO is returned by register and login.
type AuthResponseDTO struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    UserResponseDTO `json:"user"`
}

// ProfileUpdateRequestDTO carries optional fields; absent or empty means unchanged.
type ProfileUpdateRequestDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type ProfileResponseDTO struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	User    UserResponseDTO `json:"user"`
}

// FromDomain maps a domain.User to UserResponseDTO for public API responses.
func FromDomain(user domain.User) UserResponseDTO {
	dto := UserResponseDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		JoinDate:  user.JoinDate,
		CreatedAt: user.CreatedAt.Format(time.RFC3339Nano),
	}
	if user.UpdatedAt != nil {
		formatted := user.UpdatedAt.Format(time.RFC3339Nano)
		dto.UpdatedAt = &formatted
	}
	return dto
}

// ToDomain drops empty strings so that they leave the stored value untouched.
func (dto ProfileUpdateRequestDTO) ToDomain() domain.ProfileUpdate {
	var update domain.ProfileUpdate
	if dto.Name != nil && *dto.Name != "" {
		update.Name = dto.Name
	}
	if dto.Email != nil && *dto.Email != "" {
		update.Email = dto.Email
	}
	return update
}
