package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dbsmedya/discbot/internal/bot"
	"github.com/dbsmedya/discbot/internal/config"
	"github.com/dbsmedya/discbot/internal/database"
	"github.com/dbsmedya/discbot/internal/logger"
	"github.com/dbsmedya/discbot/internal/nano"
	"github.com/dbsmedya/discbot/internal/seed"
	"github.com/dbsmedya/discbot/internal/store"
	"github.com/dbsmedya/discbot/internal/text"
)

// loadConfig reads the config file, applies CLI overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.StorePath, overrides.BotName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// environment is everything a command needs to talk to the store.
type environment struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.Manager
}

// openEnvironment loads configuration, builds the logger and connects to the
// store. The embedded nano datasets are imported first when seeding is on.
func openEnvironment(ctx context.Context, seedData bool) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	dbManager := database.NewManager(&cfg.Store)
	if err := dbManager.Connect(ctx); err != nil {
		_ = log.Sync()
		return nil, err
	}

	env := &environment{cfg: cfg, log: log, db: dbManager}

	if seedData && cfg.Store.Seed {
		loader := seed.NewLoader(dbManager.DB, cfg.Store.Driver, seed.Files(), log)
		if _, err := loader.LoadAll(ctx, seed.NanoModule, seed.NanoDatasets...); err != nil {
			env.Close()
			return nil, fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	return env, nil
}

// Close releases the store connection and flushes the logger.
func (e *environment) Close() {
	if err := e.db.Close(); err != nil {
		e.log.Warnf("Failed to close store: %v", err)
	}
	_ = e.log.Sync()
}

// registry wires the chat commands to the store.
func (e *environment) registry() (*bot.Registry, error) {
	controller := nano.NewController(
		store.NewSQLStore(e.db.DB),
		text.NewFormatter(e.cfg.Bot.MaxBlobSize),
		e.cfg.Bot.Name,
		e.log,
	)

	registry := bot.NewRegistry(e.log)
	for _, c := range []bot.Command{
		bot.NewDiscCommand(controller, e.log),
		bot.NewHelpCommand(registry),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// consoleReplier prints replies to w, rendered for a terminal or left as markup.
func consoleReplier(w io.Writer, raw, useColor bool) bot.Replier {
	renderer := text.NewRenderer(useColor)
	return bot.ReplierFunc(func(_ context.Context, pages text.Pages) error {
		out := pages.String()
		if !raw {
			out = renderer.RenderPages(pages)
		}
		_, err := fmt.Fprintln(w, out)
		return err
	})
}
