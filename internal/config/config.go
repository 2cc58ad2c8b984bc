package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	validate "AusTreeCalc/internal/calc/validate"
	"github.com/joho/godotenv"
)

type Config struct {
	TokenKey    []byte
	DatabaseURL string
	ListenAddr  string
	TLSCert     string
	TLSKey      string
	Limits      validate.Limits
}

// Load reads .env (if present) and the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  getenv("LISTEN_ADDR", ":443"),
		TLSCert:     getenv("TLS_CERT", "server.crt"),
		TLSKey:      getenv("TLS_KEY", "server.key"),
		Limits:      validate.DefaultLimits,
	}
	if len(cfg.TokenKey) == 0 {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}

	var err error
	if cfg.Limits.MaxWindSpeedMs, err = getfloat("MAX_WIND_SPEED_MS", cfg.Limits.MaxWindSpeedMs); err != nil {
		return Config{}, err
	}
	if cfg.Limits.MaxCrownToHeightRatio, err = getfloat("MAX_CROWN_HEIGHT_RATIO", cfg.Limits.MaxCrownToHeightRatio); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getfloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, v)
	}
	return f, nil
}
