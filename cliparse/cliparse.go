package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/kzhou57/stagevote/models"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKey     string

	// Vote validation bounds (inclusive)
	MinPoints int
	MaxPoints int

	// Aggregation policy: models.PolicyWeighted or models.PolicyTrimmed.
	// IgnoreMin/IgnoreMax only apply to the trimmed policy.
	Policy    string
	IgnoreMin int
	IgnoreMax int

	// Dev convenience: accept any password at login
	SkipPasswordCheck bool
}

// ParseFlags builds the configuration from CLI flags with environment
// variable fallbacks, and validates it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("stagevote", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", envInt("PORT", 44555), "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", envStr("DATABASE_URL", ""), "Database URL (postgres DSN or sqlite file path)")
	fs.StringVar(&cfg.DatabaseType, "t", envStr("DATABASE_TYPE", "sqlite"), "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", envStr("ADMIN_KEY", ""), "Operator API key (prefer env)")

	// Scoring
	fs.IntVar(&cfg.MinPoints, "min-points", envInt("MIN_POINTS", 0), "Lowest accepted vote value")
	fs.IntVar(&cfg.MaxPoints, "max-points", envInt("MAX_POINTS", 100), "Highest accepted vote value")
	fs.StringVar(&cfg.Policy, "policy", envStr("VOTE_POLICY", models.PolicyWeighted), "Aggregation policy (weighted or trimmed)")
	fs.IntVar(&cfg.IgnoreMin, "ignore-min", envInt("IGNORE_MIN", 0), "Trimmed policy: lowest votes to drop")
	fs.IntVar(&cfg.IgnoreMax, "ignore-max", envInt("IGNORE_MAX", 0), "Trimmed policy: highest votes to drop")

	fs.BoolVar(&cfg.SkipPasswordCheck, "skip-password-check", envBool("SKIP_PASSWORD_CHECK"), "Accept any password at login (dev only)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secret - MUST be provided
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.MinPoints >= cfg.MaxPoints {
		return Config{}, fmt.Errorf("min-points (%d) must be below max-points (%d)", cfg.MinPoints, cfg.MaxPoints)
	}
	if cfg.Policy != models.PolicyWeighted && cfg.Policy != models.PolicyTrimmed {
		return Config{}, fmt.Errorf("unknown policy %q (want weighted or trimmed)", cfg.Policy)
	}
	if cfg.IgnoreMin < 0 || cfg.IgnoreMax < 0 {
		return Config{}, errors.New("ignore-min and ignore-max must not be negative")
	}

	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
