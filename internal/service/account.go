package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/msomdec/account-store/internal/domain"
	"github.com/msomdec/account-store/internal/session"
)

// defaultProbeDelay mimics the startup latency of the signed-in probe so
// the host application's splash flow behaves as in production.
const defaultProbeDelay = 2 * time.Second

// AccountService implements sign-up, sign-in, logout, username update and
// the reactive current-account stream over the account repository and the
// persisted settings.
type AccountService struct {
	accounts   domain.AccountRepository
	settings   domain.Settings
	cache      *session.Cache
	probeDelay time.Duration
}

// Option configures an AccountService.
type Option func(*AccountService)

// WithProbeDelay overrides the simulated IsSignedIn latency. Tests pass 0.
func WithProbeDelay(d time.Duration) Option {
	return func(s *AccountService) { s.probeDelay = d }
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts domain.AccountRepository, settings domain.Settings, opts ...Option) *AccountService {
	s := &AccountService{
		accounts:   accounts,
		settings:   settings,
		cache:      session.NewCache(settings),
		probeDelay: defaultProbeDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsSignedIn reports whether an account is currently signed in. It waits
// the configured probe delay first, honoring context cancellation.
func (s *AccountService) IsSignedIn(ctx context.Context) (bool, error) {
	if s.probeDelay > 0 {
		timer := time.NewTimer(s.probeDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	holder, err := s.cache.Holder(ctx)
	if err != nil {
		return false, err
	}
	return holder.Current() != domain.NoAccount, nil
}

// SignIn authenticates by email and password and records the matching
// account as signed in. A missing account and a wrong password surface as
// the same ErrUnauthorized, so callers cannot probe which emails exist.
func (s *AccountService) SignIn(ctx context.Context, email, password string) error {
	if blank(email) {
		return &domain.EmptyFieldError{Field: "email"}
	}
	if blank(password) {
		return &domain.EmptyFieldError{Field: "password"}
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("get account: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) == 0 {
		return domain.ErrUnauthorized
	}

	return s.setIdentifier(ctx, account.ID)
}

// SignUp creates a new account after validating inputs. The new account is
// not signed in; callers go through SignIn afterwards.
func (s *AccountService) SignUp(ctx context.Context, data domain.SignUpData) error {
	// Fixed validation order: the first blank field is the one reported.
	if blank(data.Email) {
		return &domain.EmptyFieldError{Field: "email"}
	}
	if blank(data.Username) {
		return &domain.EmptyFieldError{Field: "username"}
	}
	if blank(data.Password) {
		return &domain.EmptyFieldError{Field: "password"}
	}

	account := &domain.Account{
		Email:    data.Email,
		Username: data.Username,
		Password: data.Password,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Logout clears the signed-in account regardless of prior state.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.setIdentifier(ctx, domain.NoAccount)
}

// UpdateUsername persists a new username for the signed-in account and
// republishes the identifier so observers re-fetch the record.
func (s *AccountService) UpdateUsername(ctx context.Context, username string) error {
	if blank(username) {
		return &domain.EmptyFieldError{Field: "username"}
	}

	holder, err := s.cache.Holder(ctx)
	if err != nil {
		return err
	}

	id := holder.Current()
	if id == domain.NoAccount {
		return domain.ErrUnauthorized
	}

	if err := s.accounts.UpdateUsername(ctx, id, username); err != nil {
		return fmt.Errorf("update username: %w", err)
	}

	// The identifier is unchanged, but the publish is what makes
	// subscribers re-run their lookup and observe the new username.
	holder.Set(id)
	return nil
}

// Account returns a stream of the signed-in account record. The stream
// emits the current resolution immediately and again on every identifier
// publish; nil means no account (signed out, or the record is gone). A new
// publish cancels the in-flight lookup for the previous identifier, so a
// stale result never overwrites a newer one. The stream ends when ctx is
// cancelled.
func (s *AccountService) Account(ctx context.Context) (<-chan *domain.Account, error) {
	holder, err := s.cache.Holder(ctx)
	if err != nil {
		return nil, err
	}

	ids := holder.Subscribe(ctx)
	out := make(chan *domain.Account, 1)

	go func() {
		var (
			mu     sync.Mutex
			gen    int
			cancel context.CancelFunc
		)
		emit := func(g int, account *domain.Account) {
			mu.Lock()
			defer mu.Unlock()
			if g != gen {
				return // superseded while the lookup was in flight
			}
			select {
			case <-out:
			default:
			}
			out <- account
		}

		// Invalidate in-flight lookups before closing so a straggler
		// cannot send on the closed channel.
		defer func() {
			mu.Lock()
			gen++
			close(out)
			mu.Unlock()
			if cancel != nil {
				cancel()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-ids:
				if !ok {
					return
				}

				mu.Lock()
				gen++
				g := gen
				mu.Unlock()
				if cancel != nil {
					cancel()
					cancel = nil
				}

				if id == domain.NoAccount {
					emit(g, nil)
					continue
				}

				lookupCtx, stop := context.WithCancel(ctx)
				cancel = stop
				go func() {
					account, err := s.accounts.GetByID(lookupCtx, id)
					if err != nil {
						if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, context.Canceled) {
							slog.Warn("account lookup failed", "id", id, "error", err)
						}
						account = nil
					}
					emit(g, account)
				}()
			}
		}
	}()

	return out, nil
}

// blank reports whether s is empty or whitespace-only. Required fields
// must contain at least one non-space character.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// setIdentifier persists the identifier, then publishes it to observers.
// Persist-first keeps settings and the in-memory holder consistent if the
// write fails.
func (s *AccountService) setIdentifier(ctx context.Context, id int64) error {
	holder, err := s.cache.Holder(ctx)
	if err != nil {
		return err
	}
	if err := s.settings.SetCurrentAccountID(ctx, id); err != nil {
		return fmt.Errorf("persist current account id: %w", err)
	}
	holder.Set(id)
	return nil
}
