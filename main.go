package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/msomdec/account-store/internal/domain"
	"github.com/msomdec/account-store/internal/repository/sqlite"
	"github.com/msomdec/account-store/internal/service"
)

// Small dev CLI around the account core. The signed-in account survives
// between invocations because the identifier is persisted in the same
// database file as the accounts.
func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOpts)))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	dbPath := envOrDefault("DATABASE_PATH", "accounts.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// The CLI is interactive enough already; skip the startup probe delay.
	accounts := service.NewAccountService(db.Accounts(), db.Settings(), service.WithProbeDelay(0))

	if err := run(ctx, accounts, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, accounts *service.AccountService, command string, args []string) error {
	switch command {
	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		username := fs.String("username", "", "display username")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		if err := accounts.SignUp(ctx, domain.SignUpData{
			Email:    *email,
			Username: *username,
			Password: *password,
		}); err != nil {
			return err
		}
		fmt.Println("account created")
		return nil

	case "signin":
		fs := flag.NewFlagSet("signin", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		if err := accounts.SignIn(ctx, *email, *password); err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil

	case "whoami":
		stream, err := accounts.Account(ctx)
		if err != nil {
			return err
		}
		account := <-stream
		if account == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (id %d, since %s)\n",
			account.Username, account.Email, account.ID,
			account.CreatedAt.Format(time.DateOnly))
		return nil

	case "logout":
		if err := accounts.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil

	case "update-username":
		fs := flag.NewFlagSet("update-username", flag.ExitOnError)
		username := fs.String("username", "", "new display username")
		fs.Parse(args)
		if err := accounts.UpdateUsername(ctx, *username); err != nil {
			return err
		}
		fmt.Println("username updated")
		return nil

	case "token":
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET environment variable is required")
		}
		stream, err := accounts.Account(ctx)
		if err != nil {
			return err
		}
		account := <-stream
		if account == nil {
			return domain.ErrUnauthorized
		}
		tokens := service.NewTokenService(secret, 24*time.Hour)
		token, err := tokens.Generate(account)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: account-store <command> [flags]

commands:
  signup           -email -username -password
  signin           -email -password
  whoami
  update-username  -username
  logout
  token            (requires JWT_SECRET)`)
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
