package service

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// User is a registered user. The password hash never leaves the store.
type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registration is the result of creating a user.
type Registration struct {
	User  User
	Token string
}

// Session is the result of a successful login.
type Session struct {
	ID    int64
	Email string
	Token string
}

func userFromRow(row *sqlconfig.User) User {
	return User{
		ID:        row.ID,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
