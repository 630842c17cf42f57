package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "PORT", "LOG_LEVEL", "LOG_FORMAT", "REDIS_URL",
		startingBalanceEnvVar, loginAttemptsEnvVar,
		shutdownSecondsEnvVar, shutdownDurationEnvVar,
		idemTTLSecondsEnvVar, idemTTLDurEnvVar,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != defaultAppName || cfg.Address() != ":8080" || !cfg.IsDev() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StartingBalance.StringFixed(2) != "1000.00" {
		t.Fatalf("expected starting balance 1000.00, got %s", cfg.StartingBalance)
	}
	if cfg.LoginAttempts != defaultLoginAttempts || cfg.ShutdownPeriod != defaultShutdownDelay || cfg.IdempotencyTTL != defaultIdempotencyTTL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv(startingBalanceEnvVar, "250.75")
	t.Setenv(loginAttemptsEnvVar, "3")
	t.Setenv(shutdownSecondsEnvVar, "4")
	t.Setenv(idemTTLDurEnvVar, "90m")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
	if cfg.StartingBalance.String() != "250.75" || cfg.LoginAttempts != 3 || cfg.LogFormat != "text" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.ShutdownPeriod != 4*time.Second || cfg.IdempotencyTTL != 90*time.Minute {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for name, env := range map[string][2]string{
		"balance not a number": {startingBalanceEnvVar, "lots"},
		"negative balance":     {startingBalanceEnvVar, "-1"},
		"attempts zero":        {loginAttemptsEnvVar, "0"},
		"bad shutdown seconds": {shutdownSecondsEnvVar, "soon"},
		"bad ttl duration":     {idemTTLDurEnvVar, "forever"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env[0], env[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", env[0], env[1])
			}
		})
	}
}

func TestLoadRequiresRedisOutsideDev(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL in production")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	if _, err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}
