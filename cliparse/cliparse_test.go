package cliparse

import (
	"strings"
	"testing"

	"github.com/kzhou57/stagevote/models"
)

// clearEnv blanks the env vars cliparse reads so host settings don't leak
// into the table cases.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY",
		"MIN_POINTS", "MAX_POINTS", "VOTE_POLICY",
		"IGNORE_MIN", "IGNORE_MAX", "SKIP_PASSWORD_CHECK",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "contest.db", "-admin-key", "secret"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != 44555 {
		t.Errorf("Expected default port 44555, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.MinPoints != 0 || cfg.MaxPoints != 100 {
		t.Errorf("Expected default bounds 0..100, got %d..%d", cfg.MinPoints, cfg.MaxPoints)
	}
	if cfg.Policy != models.PolicyWeighted {
		t.Errorf("Expected default weighted policy, got %q", cfg.Policy)
	}
	if cfg.SkipPasswordCheck {
		t.Error("Expected password check enabled by default")
	}
}

func TestParseFlagsValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing database URL",
			args:    []string{"-admin-key", "secret"},
			wantErr: "database URL required",
		},
		{
			name:    "missing admin key",
			args:    []string{"-d", "contest.db"},
			wantErr: "ADMIN_KEY required",
		},
		{
			name:    "bad database type",
			args:    []string{"-d", "x", "-admin-key", "k", "-t", "mongodb"},
			wantErr: "unsupported database type",
		},
		{
			name:    "bad policy",
			args:    []string{"-d", "x", "-admin-key", "k", "-policy", "median"},
			wantErr: "unknown policy",
		},
		{
			name:    "inverted bounds",
			args:    []string{"-d", "x", "-admin-key", "k", "-min-points", "10", "-max-points", "5"},
			wantErr: "must be below",
		},
		{
			name:    "negative trim",
			args:    []string{"-d", "x", "-admin-key", "k", "-ignore-min", "-1"},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY", "env-key")
	t.Setenv("PORT", "8080")
	t.Setenv("VOTE_POLICY", models.PolicyTrimmed)
	t.Setenv("IGNORE_MIN", "1")
	t.Setenv("IGNORE_MAX", "2")
	t.Setenv("SKIP_PASSWORD_CHECK", "true")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://env" || cfg.DatabaseType != "postgres" {
		t.Errorf("Env database settings not honored: %+v", cfg)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080 from env, got %d", cfg.Port)
	}
	if cfg.Policy != models.PolicyTrimmed || cfg.IgnoreMin != 1 || cfg.IgnoreMax != 2 {
		t.Errorf("Env policy settings not honored: %+v", cfg)
	}
	if !cfg.SkipPasswordCheck {
		t.Error("Expected SKIP_PASSWORD_CHECK honored")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("ADMIN_KEY", "env-key")
	t.Setenv("PORT", "8080")

	cfg, err := ParseFlags([]string{"-p", "9090", "-d", "flag.db"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Expected flag port 9090 to win, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "flag.db" {
		t.Errorf("Expected flag database URL to win, got %q", cfg.DatabaseURL)
	}
	if cfg.AdminKey != "env-key" {
		t.Errorf("Expected admin key from env, got %q", cfg.AdminKey)
	}
}
