// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the bot and CLI need to run.
type Config struct {
	DiscordToken string
	HenrikAPIKey string
	Region       string

	LogsDir string
	LinksDB string

	Port          string
	HenrikRPM     int
	PullBatchSize int
	PullWorkers   int
}

// Load reads the environment, first merging a .env file if one exists. A
// missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		HenrikAPIKey: os.Getenv("HENRIK_API_KEY"),
		Region:       envOr("VALORANT_REGION", "na"),

		LogsDir: envOr("LOGS_DIR", "match_logs"),
		LinksDB: envOr("LINKS_DB", "links.db"),

		Port:          envOr("PORT", "8080"),
		HenrikRPM:     envInt("HENRIK_RPM", 25),
		PullBatchSize: envInt("PULL_BATCH_SIZE", 10),
		PullWorkers:   envInt("PULL_WORKERS", 3),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
