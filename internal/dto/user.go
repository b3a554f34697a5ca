package dto

import (
	"time"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
)

type UserDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      authz.Role   `json:"role"`
	Sector    authz.Sector `json:"sector"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func NewUserDTO(u *entities.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Sector:    u.Sector,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RegisterUserDTO is the public self-registration form.
type RegisterUserDTO struct {
	Name     string       `json:"name" validate:"required,min=2,max=120"`
	Email    string       `json:"email" validate:"required,email,org_email"`
	Password string       `json:"password" validate:"required,min=8,max=72"`
	Role     authz.Role   `json:"role" validate:"required"`
	Sector   authz.Sector `json:"sector" validate:"required"`
}

type CreateUserDTO struct {
	Name     string       `json:"name" validate:"required,min=2,max=120"`
	Email    string       `json:"email" validate:"required,email,org_email"`
	Password string       `json:"password" validate:"required,min=8,max=72"`
	Role     authz.Role   `json:"role" validate:"required"`
	Sector   authz.Sector `json:"sector" validate:"required"`
}

type UpdateUserDTO struct {
	Name   *string       `json:"name" validate:"omitempty,min=2,max=120"`
	Email  *string       `json:"email" validate:"omitempty,email,org_email"`
	Role   *authz.Role   `json:"role"`
	Sector *authz.Sector `json:"sector"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ResetPasswordDTO struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UserFilter struct {
	Search string
	Role   authz.Role
	Sector authz.Sector
	Limit  uint64
	Offset uint64
}
