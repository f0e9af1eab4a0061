package shop

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeControl struct {
	count    int
	countErr error
	visible  bool
	text     string
	clickErr error
	clicked  int
}

func (f *fakeControl) Count() (int, error) {
	return f.count, f.countErr
}

func (f *fakeControl) Visible() (bool, error) {
	return f.visible, nil
}

func (f *fakeControl) Text() (string, error) {
	return f.text, nil
}

func (f *fakeControl) Click() error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicked++
	return nil
}

type fakeCard struct {
	html     string
	htmlErr  error
	controls map[string]*fakeControl
	clicked  int
}

func (f *fakeCard) HTML() (string, error) {
	return f.html, f.htmlErr
}

func (f *fakeCard) Control(selector string) Control {
	if c, ok := f.controls[selector]; ok {
		return c
	}
	return &fakeControl{}
}

func (f *fakeCard) Click() error {
	f.clicked++
	return nil
}

type fakePage struct {
	cardsBySelector map[string][]Card
	controls        map[string]*fakeControl
	waits           int
}

func (f *fakePage) Cards(selector string) ([]Card, error) {
	if cards, ok := f.cardsBySelector[selector]; ok {
		return cards, nil
	}
	return nil, nil
}

func (f *fakePage) Control(selector string) Control {
	if c, ok := f.controls[selector]; ok {
		return c
	}
	return &fakeControl{}
}

func (f *fakePage) WaitReady() {
	f.waits++
}

// fakeFront records the navigation calls the driver makes.
type fakeFront struct {
	loggedIn     bool
	awaitCalled  int
	homeOpens    int
	sectionOpens int
	calls        []string
	homeErr      error
}

func (f *fakeFront) OpenHome(ctx context.Context) error {
	f.homeOpens++
	f.calls = append(f.calls, "home")
	return f.homeErr
}

func (f *fakeFront) OpenSection(ctx context.Context) error {
	f.sectionOpens++
	f.calls = append(f.calls, "section")
	return nil
}

func (f *fakeFront) LoggedIn() bool {
	return f.loggedIn
}

func (f *fakeFront) AwaitLogin(ctx context.Context) error {
	f.awaitCalled++
	f.calls = append(f.calls, "await_login")
	return nil
}

// fakeShopper returns scripted candidates per query and records commits.
type fakeShopper struct {
	candidates    map[string][]Candidate
	searchErrs    map[string]error
	commitFail    map[string]bool
	searched      []string
	committed     []string
	panicOn       string
	panicOnCommit string
}

func (f *fakeShopper) Search(ctx context.Context, query string) error {
	if query == f.panicOn {
		panic("scripted panic")
	}
	f.searched = append(f.searched, query)
	if err, ok := f.searchErrs[query]; ok {
		return err
	}
	return nil
}

func (f *fakeShopper) Collect(ctx context.Context) ([]Candidate, error) {
	if len(f.searched) == 0 {
		return nil, errors.New("collect before search")
	}
	return f.candidates[f.searched[len(f.searched)-1]], nil
}

func (f *fakeShopper) Commit(ctx context.Context, cand *Candidate) bool {
	if cand.Name == f.panicOnCommit {
		panic("scripted commit panic")
	}
	f.committed = append(f.committed, cand.Name)
	return !f.commitFail[cand.Name]
}

type fakeSink struct {
	recorded []models.ItemOutcome
	started  []string
}

func (f *fakeSink) Record(ctx context.Context, outcome models.ItemOutcome) {
	f.recorded = append(f.recorded, outcome)
}

func (f *fakeSink) StartItem(item string) {
	f.started = append(f.started, item)
}
