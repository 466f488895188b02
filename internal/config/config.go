package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is everything the bot reads from the environment
type Config struct {
	DiscordToken   string
	FortniteAPIKey string
	PodcastFeedURL string

	LeaderboardChannel string
	BirthdayChannel    string
	PodcastChannel     string

	AdminRole    string
	CleanerRole  string
	BirthdayRole string

	StoreBackend string // "json" or "sqlite"
	DataDir      string
	SQLitePath   string

	WebAddr  string
	LogLevel string

	MainCycle         time.Duration
	LeaderboardPeriod time.Duration
	BirthdayPeriod    time.Duration
	BackupPeriod      time.Duration
	PodcastPeriod     time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		FortniteAPIKey: os.Getenv("FORTNITE_API_KEY"),
		PodcastFeedURL: os.Getenv("PODCAST_RSS_FEED"),

		LeaderboardChannel: os.Getenv("LEADERBOARD_CHANNEL"),
		BirthdayChannel:    os.Getenv("BIRTHDAY_CHANNEL"),
		PodcastChannel:     os.Getenv("PODCAST_CHANNEL"),

		AdminRole:    getEnv("ADMIN_ROLE", "Mods"),
		CleanerRole:  getEnv("CLEANER_ROLE", "The Cleaner"),
		BirthdayRole: getEnv("BIRTHDAY_ROLE", "Birthday Legend"),

		StoreBackend: getEnv("STORE_BACKEND", "json"),
		DataDir:      getEnv("DATA_DIR", "data"),
		SQLitePath:   getEnv("SQLITE_PATH", "sweeperleader.db"),

		WebAddr:  getEnv("WEB_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MainCycle:         getDuration("MAIN_CYCLE", 30*time.Second),
		LeaderboardPeriod: getDuration("LEADERBOARD_PERIOD", 7*24*time.Hour),
		BirthdayPeriod:    getDuration("BIRTHDAY_PERIOD", 24*time.Hour),
		BackupPeriod:      getDuration("BACKUP_PERIOD", 24*time.Hour),
		PodcastPeriod:     getDuration("PODCAST_PERIOD", 12*time.Hour),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.FortniteAPIKey == "" {
		return nil, fmt.Errorf("FORTNITE_API_KEY is required")
	}
	if cfg.StoreBackend != "json" && cfg.StoreBackend != "sqlite" {
		return nil, fmt.Errorf("STORE_BACKEND must be json or sqlite, got %q", cfg.StoreBackend)
	}

	log.Info().
		Str("store", cfg.StoreBackend).
		Str("web_addr", cfg.WebAddr).
		Dur("main_cycle", cfg.MainCycle).
		Msg("Configuration loaded")
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Could not parse duration, using default")
		return fallback
	}
	return parsed
}
