package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the service settings. Values come from the environment,
// with a .env file loaded first when present.
type Config struct {
	ServerAddress string
	GinMode       string
	// Keys maps an API key prefix to the bcrypt hash of the full key.
	Keys map[string]string
	// Simulation settings applied when a request omits them.
	Steps int
	Paths int
	Seed  uint64
}

const (
	defaultAddress = "0.0.0.0:8080"
	defaultSteps   = 50
	defaultPaths   = 10000
	defaultSeed    = 123
)

// Load reads the service configuration from the environment. API keys are
// given as comma separated prefix:hash pairs, where hash is the bcrypt
// hash printed by the keygen command.
func Load() (Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := Config{
		ServerAddress: defaultAddress,
		GinMode:       os.Getenv("GIN_MODE"),
		Keys:          map[string]string{},
		Steps:         defaultSteps,
		Paths:         defaultPaths,
		Seed:          defaultSeed,
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.ServerAddress = v
	}
	if v := os.Getenv("API_KEYS"); v != "" {
		for _, pair := range strings.Split(v, ",") {
			prefix, hash, ok := strings.Cut(pair, ":")
			if !ok {
				return Config{}, fmt.Errorf("malformed API_KEYS entry %q", pair)
			}
			cfg.Keys[strings.TrimSpace(prefix)] = strings.TrimSpace(hash)
		}
	}
	var err error
	if v := os.Getenv("MC_STEPS"); v != "" {
		if cfg.Steps, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("parse MC_STEPS: %w", err)
		}
	}
	if v := os.Getenv("MC_PATHS"); v != "" {
		if cfg.Paths, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("parse MC_PATHS: %w", err)
		}
	}
	if v := os.Getenv("MC_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("parse MC_SEED: %w", err)
		}
	}
	return cfg, nil
}
