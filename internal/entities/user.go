package entities

import (
	"time"

	"github.com/google/uuid"

	"vessel-orders/internal/authz"
)

type User struct {
	ID           uuid.UUID    `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Role         authz.Role   `db:"role"`
	Sector       authz.Sector `db:"sector"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Identity is the snapshot the authorization engine decides on.
func (u *User) Identity() authz.Identity {
	return authz.Identity{
		ID:     u.ID.String(),
		Email:  u.Email,
		Role:   u.Role,
		Sector: u.Sector,
	}
}

// UserRef is the short form of a user embedded in other records.
type UserRef struct {
	ID    uuid.UUID
	Name  string
	Email string
}
