package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/account-store/internal/domain"
)

// AccountRepository implements domain.AccountRepository using SQLite.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new SQLite-backed AccountRepository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db.SqlDB}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, username, password, created_at)
		 VALUES (?, ?, ?, ?)`,
		account.Email, account.Username, account.Password, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			// Keep the driver error in the chain for diagnostics.
			return fmt.Errorf("%w: %w", domain.ErrDuplicateEmail, err)
		}
		return storeError("insert account", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storeError("get last insert id", err)
	}

	account.ID = id
	account.CreatedAt = now
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account := &domain.Account{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, username, password, created_at
		 FROM accounts WHERE id = ?`, id,
	).Scan(&account.ID, &account.Email, &account.Username, &account.Password, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeError("query account by id", err)
	}
	return account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account := &domain.Account{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, username, password, created_at
		 FROM accounts WHERE email = ?`, email,
	).Scan(&account.ID, &account.Email, &account.Username, &account.Password, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeError("query account by email", err)
	}
	return account, nil
}

func (r *AccountRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET username = ? WHERE id = ?`, username, id,
	)
	if err != nil {
		return storeError("update username", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("get rows affected", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// storeError wraps a technical database failure so callers only ever see
// the domain taxonomy plus one catch-all store error.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
