package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artemdev/ozon-cart-bot/internal/browser"
	"github.com/artemdev/ozon-cart-bot/internal/config"
	"github.com/artemdev/ozon-cart-bot/internal/ocr"
	"github.com/artemdev/ozon-cart-bot/internal/pacing"
)

// ConfirmFunc blocks until the operator signals that the manual step is
// done, e.g. by pressing Enter in the console.
type ConfirmFunc func(ctx context.Context) error

// Store binds the search, extraction and commit machinery to one live
// browser session against Ozon.
type Store struct {
	session   *browser.Session
	searcher  *Searcher
	extractor *Extractor
	committer *Committer
	cfg       config.ShopConfig
	pacer     pacing.Pacer
	confirm   ConfirmFunc
	logger    *slog.Logger
}

func NewStore(session *browser.Session, recognizer ocr.Recognizer, pacer pacing.Pacer, cfg config.ShopConfig, ocrCfg config.OCRConfig, confirm ConfirmFunc, logger *slog.Logger) *Store {
	page := newResultsPage(session)
	return &Store{
		session:   session,
		searcher:  NewSearcher(newSearchSurface(session), recognizer, pacer, ocrCfg.Retries, ocrCfg.RetryDelay, ocrCfg.MinConfidence, logger),
		extractor: NewExtractor(cfg.MaxCandidates, cfg.DeliveryKeywords, logger),
		committer: NewCommitter(page, pacer, logger),
		cfg:       cfg,
		pacer:     pacer,
		confirm:   confirm,
		logger:    logger.With("component", "store"),
	}
}

func (s *Store) OpenHome(ctx context.Context) error {
	s.logger.Info("opening storefront", "url", s.cfg.BaseURL)
	if err := s.session.Goto(s.cfg.BaseURL); err != nil {
		return err
	}
	s.session.WaitForLoad()
	return s.pacer.Pause(ctx)
}

func (s *Store) OpenSection(ctx context.Context) error {
	s.logger.Info("opening section", "url", s.cfg.FreshURL)
	if err := s.session.Goto(s.cfg.FreshURL); err != nil {
		return err
	}
	s.session.WaitForLoad()
	return s.pacer.Pause(ctx)
}

// LoggedIn checks for markers only present for an authenticated user.
func (s *Store) LoggedIn() bool {
	page := s.session.Page()
	for _, selector := range loggedInSelectors {
		count, err := page.Locator(selector).First().Count()
		if err != nil {
			continue
		}
		if count > 0 {
			return true
		}
	}
	return false
}

// AwaitLogin is the single manual checkpoint of a run: it blocks until the
// operator confirms they have signed in through the open browser window.
func (s *Store) AwaitLogin(ctx context.Context) error {
	s.logger.Warn("login required: sign in through the browser window, then confirm to continue")
	if err := s.confirm(ctx); err != nil {
		return fmt.Errorf("login confirmation interrupted: %w", err)
	}
	s.logger.Info("continuing after manual login")
	s.session.WaitForLoad()
	return s.pacer.Pause(ctx)
}

func (s *Store) Search(ctx context.Context, query string) error {
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}
	return s.searcher.Search(ctx, query)
}

func (s *Store) Collect(ctx context.Context) ([]Candidate, error) {
	return s.extractor.Extract(ctx, newResultsPage(s.session)), nil
}

func (s *Store) Commit(ctx context.Context, cand *Candidate) bool {
	return s.committer.Commit(ctx, cand)
}
