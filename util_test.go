package main

import (
	"os"
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 3600, "1 hour, 0 minutes, 0 seconds"},
		{time.Second * 60, "1 minute, 0 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		got := formatUptime(c.dur)
		if got != c.expected {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestEnvName(t *testing.T) {
	if got := envName(true); got != "production" {
		t.Errorf("envName(true) = %q, want production", got)
	}
	if got := envName(false); got != "development" {
		t.Errorf("envName(false) = %q, want development", got)
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) = %q, want \"\"", plural(1))
	}
	if plural(2) != "s" {
		t.Errorf("plural(2) = %q, want \"s\"", plural(2))
	}
	if plural(0) != "s" {
		t.Errorf("plural(0) = %q, want \"s\"", plural(0))
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want %q", got, "value")
	}
	os.Unsetenv("TEST_STRING")
	if got := getEnv("TEST_STRING", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q, want %q", got, "fallback")
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2s")
	defer os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 2*time.Second {
		t.Errorf("getEnvDuration = %v, want 2s", got)
	}
	os.Setenv("TEST_DURATION", "notaduration")
	if got := getEnvDuration("TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("getEnvDuration fallback = %v, want 3s", got)
	}
	os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", 4*time.Second); got != 4*time.Second {
		t.Errorf("getEnvDuration fallback unset = %v, want 4s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	os.Setenv("TEST_INT", "notanint")
	if got := getEnvInt("TEST_INT", 8); got != 8 {
		t.Errorf("getEnvInt fallback = %d, want 8", got)
	}
	os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 9); got != 9 {
		t.Errorf("getEnvInt fallback unset = %d, want 9", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"BIND_ADDR", "PORT", "GIN_MODE", "ENV", "SAVE_FILE", "DICTIONARY_TIMEOUT"} {
		t.Setenv(key, "")
	}
	cfg := loadConfig()
	if cfg.BindAddr != "127.0.0.1" || cfg.Port != "8080" {
		t.Errorf("loadConfig address = %s:%s, want 127.0.0.1:8080", cfg.BindAddr, cfg.Port)
	}
	if cfg.IsProduction {
		t.Error("loadConfig should default to development mode")
	}
	if cfg.SaveFile != "save.json" {
		t.Errorf("loadConfig SaveFile = %q, want save.json", cfg.SaveFile)
	}
	if cfg.DictionaryTimeout != 3*time.Second {
		t.Errorf("loadConfig DictionaryTimeout = %v, want 3s", cfg.DictionaryTimeout)
	}
}

func TestLoadConfigProduction(t *testing.T) {
	t.Setenv("GIN_MODE", "")
	t.Setenv("ENV", "production")
	t.Setenv("SAVE_FILE", "/tmp/scramble.json")
	cfg := loadConfig()
	if !cfg.IsProduction {
		t.Error("ENV=production should select production mode")
	}
	if cfg.SaveFile != "/tmp/scramble.json" {
		t.Errorf("loadConfig SaveFile = %q", cfg.SaveFile)
	}
}
