package domain

import (
	"context"
	"time"
)

// NoAccount is the sentinel identifier meaning no account is signed in.
const NoAccount int64 = -1

// Account represents a registered account of the application.
type Account struct {
	ID        int64
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
}

// SignUpData carries the input for creating a new account. It is never
// persisted as-is; the password travels through only for the insert.
type SignUpData struct {
	Email    string
	Username string
	Password string
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
}
