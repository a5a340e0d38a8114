package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Games    int
	Seed     int64
	PlayerA  string
	PlayerB  string
	MaxTurns int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Games:    intOrDefault("GAMES", 1),
		Seed:     int64OrDefault("SEED", 0),
		PlayerA:  envOrDefault("PLAYER_A", "random"),
		PlayerB:  envOrDefault("PLAYER_B", "random"),
		MaxTurns: intOrDefault("MAX_TURNS", 400),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func int64OrDefault(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
