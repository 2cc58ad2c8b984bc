package config

import (
	"os"
	"path/filepath"
	"testing"

	validate "AusTreeCalc/internal/calc/validate"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("MAX_WIND_SPEED_MS", "")
	t.Setenv("MAX_CROWN_HEIGHT_RATIO", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":443" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.Limits != validate.DefaultLimits {
		t.Errorf("limits = %+v", cfg.Limits)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	t.Setenv("MAX_WIND_SPEED_MS", "")
	os.Unsetenv("TOKEN_KEY")
	os.Unsetenv("MAX_WIND_SPEED_MS")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TOKEN_KEY=abc\nMAX_WIND_SPEED_MS=70\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(cfg.TokenKey) != "abc" || cfg.Limits.MaxWindSpeedMs != 70 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("TOKEN_KEY", "")
	if _, err := Load(missing); err == nil {
		t.Error("expected error without TOKEN_KEY")
	}

	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("MAX_CROWN_HEIGHT_RATIO", "wide")
	if _, err := Load(missing); err == nil {
		t.Error("expected error for a non-numeric ratio")
	}
}
