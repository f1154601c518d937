package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/msomdec/account-store/internal/domain"
)

const currentAccountKey = "current_account_id"

// SettingsRepository implements domain.Settings on a small key-value table.
// Values survive process restarts along with the rest of the database file.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite-backed SettingsRepository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db.SqlDB}
}

// CurrentAccountID returns the persisted signed-in account id, or
// domain.NoAccount when nothing has been stored yet.
func (r *SettingsRepository) CurrentAccountID(ctx context.Context) (int64, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currentAccountKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NoAccount, nil
	}
	if err != nil {
		return domain.NoAccount, storeError("query current account id", err)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return domain.NoAccount, storeError("parse current account id", err)
	}
	return id, nil
}

// SetCurrentAccountID stores the signed-in account id, overwriting any
// previous value.
func (r *SettingsRepository) SetCurrentAccountID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, currentAccountKey, strconv.FormatInt(id, 10))
	if err != nil {
		return storeError("set current account id", err)
	}
	return nil
}
