package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artemdev/ozon-cart-bot/internal/api"
	"github.com/artemdev/ozon-cart-bot/internal/browser"
	"github.com/artemdev/ozon-cart-bot/internal/config"
	"github.com/artemdev/ozon-cart-bot/internal/events"
	"github.com/artemdev/ozon-cart-bot/internal/journal"
	"github.com/artemdev/ozon-cart-bot/internal/listfile"
	"github.com/artemdev/ozon-cart-bot/internal/models"
	"github.com/artemdev/ozon-cart-bot/internal/ocr"
	"github.com/artemdev/ozon-cart-bot/internal/pacing"
	"github.com/artemdev/ozon-cart-bot/internal/shop"
	"github.com/artemdev/ozon-cart-bot/pkg/logger"
)

func main() {
	listPath := flag.String("list", "", "shopping list file (overrides SHOPPING_LIST_FILE)")
	headless := flag.Bool("headless", false, "run the browser headless (overrides BROWSER_HEADLESS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listPath != "" {
		cfg.Shop.ShoppingListFile = *listPath
	}
	if *headless {
		cfg.Browser.Headless = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	items, err := listfile.Load(cfg.Shop.ShoppingListFile)
	if err != nil {
		log.Error("failed to load shopping list", "error", err)
		os.Exit(1)
	}
	log.Info("shopping list loaded", "items", len(items), "file", cfg.Shop.ShoppingListFile)

	jnl, err := journal.Open(ctx, cfg.Journal.DSN, log)
	if err != nil {
		log.Error("failed to open outcome journal", "error", err)
		os.Exit(1)
	}
	defer jnl.Close()

	publisher, err := events.New(ctx, cfg.Events.RedisAddr, cfg.Events.Stream, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	tracker := api.NewTracker()
	if cfg.Status.Addr != "" {
		server := api.NewServer(cfg.Status.Addr, tracker, cfg.Status.AllowedOrigins, log)
		go func() {
			if err := server.Start(ctx); err != nil {
				log.Error("status API stopped with error", "error", err)
			}
		}()
	}

	session, err := browser.New(&browser.Options{
		Headless:        cfg.Browser.Headless,
		UserDataDir:     cfg.Browser.UserDataDir,
		SlowMo:          cfg.Browser.SlowMo,
		PageLoadTimeout: cfg.Shop.PageLoadTimeout,
		ViewportWidth:   cfg.Browser.ViewportWidth,
		ViewportHeight:  cfg.Browser.ViewportHeight,
		Locale:          cfg.Browser.Locale,
	})
	if err != nil {
		log.Error("failed to start browser", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Error("failed to close browser", "error", err)
		}
	}()

	recognizer := ocr.NewClient(cfg.OCR.Endpoint, cfg.OCR.Timeout)
	pacer := pacing.NewHumanPacer(cfg.Pacing.MinDelay, cfg.Pacing.MaxDelay)

	store := shop.NewStore(session, recognizer, pacer, cfg.Shop, cfg.OCR, confirmFromStdin, log)
	policy := shop.NewPolicy(cfg.Shop.DeliveryKeywords)
	sink := multiSink{tracker, jnl, eventSink{publisher}}

	driver := shop.NewDriver(store, store, policy, sink, cfg.Shop.WaitForLogin, cfg.Shop.ObserveHold, log)
	tracker.StartRun(driver.RunID(), len(items))

	outcomes, err := driver.Run(ctx, items)
	tracker.FinishRun()
	if err != nil && ctx.Err() == nil {
		log.Error("run failed", "error", err)
	}

	printSummary(outcomes)
}

// confirmFromStdin blocks until the operator presses Enter, releasing the
// manual login checkpoint.
func confirmFromStdin(ctx context.Context) error {
	fmt.Println("Войдите в аккаунт Ozon в открытом окне браузера и нажмите Enter...")

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(os.Stdin).ReadString('\n')
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// multiSink fans one outcome out to every configured destination.
type multiSink []shop.OutcomeSink

func (m multiSink) Record(ctx context.Context, outcome models.ItemOutcome) {
	for _, sink := range m {
		sink.Record(ctx, outcome)
	}
}

func (m multiSink) StartItem(item string) {
	for _, sink := range m {
		if starter, ok := sink.(shop.ItemStarter); ok {
			starter.StartItem(item)
		}
	}
}

type eventSink struct {
	publisher *events.Publisher
}

func (e eventSink) Record(ctx context.Context, outcome models.ItemOutcome) {
	e.publisher.PublishOutcome(ctx, outcome)
}

func printSummary(outcomes []models.ItemOutcome) {
	fmt.Println("\n=== Итоги закупки ===")
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusAdded:
			fmt.Printf("✔ %s — %s за %.2f ₽ (%s)\n", o.Item, o.Product, o.Price, o.Delivery)
		case models.StatusCommitFailed:
			fmt.Printf("✖ %s — найден %s, но добавить в корзину не удалось\n", o.Item, o.Product)
		default:
			fmt.Printf("✖ %s — ничего не найдено\n", o.Item)
		}
	}
}
