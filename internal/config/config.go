// Package config loads process-wide configuration from the environment.
//
// Everything mutable-at-startup lives here and is passed down by reference:
// there is no ambient global config or signing secret anywhere else in the
// codebase. cmd/server loads a .env file (if present) before calling Load,
// so local development works without exporting variables by hand.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/tahsin/student-expense-tracker/internal/money"
)

// Config holds all server configuration, parsed by go-envconfig.
type Config struct {
	Port   int    `env:"PORT, default=8080"`
	DBPath string `env:"DB_PATH, default=data/expenses.db"`

	// JWTSecret signs bearer tokens. Rotating it invalidates every
	// outstanding token. Generate with: openssl rand -hex 32
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// DefaultBudget is the monthly limit materialized for a user's first
	// budget query in a month, in currency units.
	DefaultBudget float64 `env:"DEFAULT_BUDGET, default=200.00"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < 16 {
		return errors.New("config: JWT_SECRET must be set to at least 16 characters")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST %d outside bcrypt range [4,31]", c.BcryptCost)
	}
	if _, ok := money.FromFloat(c.DefaultBudget); !ok || c.DefaultBudget < 0 {
		return fmt.Errorf("config: DEFAULT_BUDGET %v must be a non-negative amount", c.DefaultBudget)
	}
	return nil
}

// DefaultBudgetCents returns the default monthly limit as cents.
func (c *Config) DefaultBudgetCents() money.Cents {
	cents, _ := money.FromFloat(c.DefaultBudget)
	return cents
}
