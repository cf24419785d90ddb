package config

import (
	"errors"
	"testing"
	"time"

	"gym-ledger/internal/cycle"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DEFAULT_ADMIN_ID", "42")
	for _, key := range []string{"STORAGE", "STATE_DIR", "SETTLEMENT_SCHEDULE", "SETTLEMENT_TZ",
		"SETTLEMENT_RETRY_ATTEMPTS", "SETTLEMENT_RETRY_DELAY", "SETTLEMENT_RETRY_MAX_DELAY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultAdminID != 42 {
		t.Errorf("DefaultAdminID = %d, want 42", cfg.DefaultAdminID)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.Cycle.Schedule != cycle.DefaultSchedule {
		t.Errorf("Schedule = %q, want %q", cfg.Cycle.Schedule, cycle.DefaultSchedule)
	}
	if cfg.Cycle.RetryAttempts != 5 || cfg.Cycle.RetryDelay != time.Second {
		t.Errorf("retry = %d/%s", cfg.Cycle.RetryAttempts, cfg.Cycle.RetryDelay)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing bool
	}{
		{"no token", map[string]string{"BOT_TOKEN": "", "DEFAULT_ADMIN_ID": "1"}, true},
		{"no admin", map[string]string{"BOT_TOKEN": "t", "DEFAULT_ADMIN_ID": ""}, true},
		{"bad admin", map[string]string{"BOT_TOKEN": "t", "DEFAULT_ADMIN_ID": "abc"}, false},
		{"bad storage", map[string]string{"BOT_TOKEN": "t", "DEFAULT_ADMIN_ID": "1", "STORAGE": "redis"}, false},
		{"bad delay", map[string]string{"BOT_TOKEN": "t", "DEFAULT_ADMIN_ID": "1", "SETTLEMENT_RETRY_DELAY": "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE", "")
			t.Setenv("SETTLEMENT_RETRY_DELAY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(true)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrMissing); got != tt.missing {
				t.Errorf("errors.Is(err, ErrMissing) = %v, want %v (err: %v)", got, tt.missing, err)
			}
		})
	}
}

func TestLoadWithoutBot(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DEFAULT_ADMIN_ID", "")
	t.Setenv("STORAGE", StoragePostgres)
	t.Setenv("SETTLEMENT_RETRY_DELAY", "")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != StoragePostgres {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StoragePostgres)
	}
}
