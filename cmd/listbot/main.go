package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artemdev/ozon-cart-bot/internal/bot"
	"github.com/artemdev/ozon-cart-bot/internal/config"
	"github.com/artemdev/ozon-cart-bot/internal/llm"
	"github.com/artemdev/ozon-cart-bot/pkg/logger"
)

func main() {
	prefsPath := flag.String("preferences", "", "preferences YAML file (overrides BOT_PREFERENCES_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *prefsPath != "" {
		cfg.Bot.PreferencesFile = *prefsPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Bot.Token == "" {
		log.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	provider, err := llm.New(cfg.LLM)
	if err != nil {
		log.Error("failed to create LLM provider", "error", err)
		os.Exit(1)
	}

	prefs, err := bot.LoadPreferences(cfg.Bot.PreferencesFile)
	if err != nil {
		log.Error("failed to load preferences", "error", err, "file", cfg.Bot.PreferencesFile)
		os.Exit(1)
	}
	log.Info("preferences loaded",
		"servings", prefs.DefaultServings,
		"brands", len(prefs.FavoriteBrands),
		"exclusions", len(prefs.Exclusions),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	telegram := bot.NewTelegramClient(cfg.Bot.Token, cfg.Bot.PollTimeout)
	b := bot.New(telegram, provider, prefs, cfg.Shop.ShoppingListFile, cfg.Bot.PollTimeout, log)

	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
}
