package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/account-store/internal/domain"
	"github.com/msomdec/account-store/internal/repository/sqlite"
)

func TestAccountRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		Email:    "test@example.com",
		Username: "test-user",
		Password: "secret",
	}

	err := repo.Create(ctx, account)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if account.ID == 0 {
		t.Fatal("expected account ID to be set after create")
	}
	if account.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	first := &domain.Account{
		Email:    "dup@example.com",
		Username: "first",
		Password: "pw1",
	}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := &domain.Account{
		Email:    "dup@example.com",
		Username: "second",
		Password: "pw2",
	}
	err := repo.Create(ctx, second)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The record count must be unchanged by the failed insert.
	var count int
	if err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		t.Fatalf("count accounts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 account, got %d", count)
	}
}

func TestAccountRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		Email:    "byid@example.com",
		Username: "by-id",
		Password: "pw",
	}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if found.Email != account.Email {
		t.Fatalf("expected email %q, got %q", account.Email, found.Email)
	}
	if found.Username != account.Username {
		t.Fatalf("expected username %q, got %q", account.Username, found.Username)
	}
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		Email:    "byemail@example.com",
		Username: "by-email",
		Password: "pw",
	}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if found.ID != account.ID {
		t.Fatalf("expected id %d, got %d", account.ID, found.ID)
	}
}

func TestAccountRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_UpdateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		Email:    "rename@example.com",
		Username: "before",
		Password: "pw",
	}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateUsername(ctx, account.ID, "after"); err != nil {
		t.Fatalf("UpdateUsername: %v", err)
	}

	found, err := repo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Username != "after" {
		t.Fatalf("expected username %q, got %q", "after", found.Username)
	}
}

func TestAccountRepository_UpdateUsername_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	err := repo.UpdateUsername(ctx, 99999, "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
