// Command adduser creates a user account from the command line.
//
// It exists for seeding — e.g. the demo account a fresh install wants:
//
//	adduser -email demo@student.edu -db data/expenses.db
//
// The password is prompted without echo when not passed via -password.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/repository/sqlite"
	"github.com/tahsin/student-expense-tracker/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, prompted if omitted)")
	dbPath := fs.String("db", "data/expenses.db", "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	normalized := service.NormalizeEmail(*email)
	if normalized == "" {
		fs.PrintDefaults()
		return fmt.Errorf("missing required flag: email")
	}

	// DB_PATH env overrides the flag default, matching the server.
	if envPath := os.Getenv("DB_PATH"); envPath != "" && *dbPath == "data/expenses.db" {
		*dbPath = envPath
	}

	password := *passwordFlag
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	hash, err := auth.NewPasswordService(auth.DefaultCost).Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{Email: normalized, PasswordHash: hash}
	if err := db.CreateUser(context.Background(), user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	fmt.Printf("User %s created with ID %d\n", user.Email, user.ID)
	return nil
}

// promptPassword reads a password from stdin — without echo when stdin is
// a terminal, as a plain line otherwise (pipes, CI).
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
