package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"sweeperleader/internal/bot"
	"sweeperleader/internal/config"
	"sweeperleader/internal/fortnite"
	"sweeperleader/internal/ledger"
	"sweeperleader/internal/logger"
	"sweeperleader/internal/podcast"
	"sweeperleader/internal/rank"
	"sweeperleader/internal/store"
	"sweeperleader/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Could not load configuration")
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel)

	// Backing store: flat JSON files by default, SQLite if asked for
	var kv store.KV
	var backup bot.Backupper
	switch cfg.StoreBackend {
	case "sqlite":
		sqlite, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Error().Err(err).Msg("Could not open SQLite store")
			os.Exit(1)
		}
		kv = sqlite
	default:
		jsonStore, err := store.OpenJSON(cfg.DataDir)
		if err != nil {
			log.Error().Err(err).Msg("Could not open JSON store")
			os.Exit(1)
		}
		kv = jsonStore
		backup = jsonStore
	}
	defer kv.Close()

	// Core pieces
	tiers := rank.DefaultTable()
	xpLedger := ledger.New(store.NewIntBucket(kv, store.BucketExperience), tiers)
	stats := fortnite.NewClient(cfg.FortniteAPIKey, fortnite.DefaultRestrictions())

	var poller *podcast.Poller
	if cfg.PodcastFeedURL != "" {
		poller = podcast.NewPoller(cfg.PodcastFeedURL, kv)
	}

	// Keepalive for the hosting platform
	web.Serve(cfg.WebAddr)

	discordBot, err := bot.New(cfg, kv, xpLedger, tiers, stats, poller, backup)
	if err != nil {
		log.Error().Err(err).Msg("Could not create the bot")
		os.Exit(1)
	}
	if err := discordBot.Run(); err != nil {
		log.Error().Err(err).Msg("Bot stopped with an error")
		os.Exit(1)
	}
}
