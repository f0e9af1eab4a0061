package shop

import (
	"github.com/playwright-community/playwright-go"

	"github.com/artemdev/ozon-cart-bot/internal/browser"
)

// Playwright-backed implementations of ResultsPage, Card and Control.

type pwResultsPage struct {
	page    playwright.Page
	session *browser.Session
}

func newResultsPage(session *browser.Session) pwResultsPage {
	return pwResultsPage{page: session.Page(), session: session}
}

func (p pwResultsPage) Cards(selector string) ([]Card, error) {
	loc := p.page.Locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, count)
	for i := 0; i < count; i++ {
		cards = append(cards, pwCard{loc: loc.Nth(i)})
	}
	return cards, nil
}

func (p pwResultsPage) Control(selector string) Control {
	return pwControl{loc: p.page.Locator(selector).First()}
}

func (p pwResultsPage) WaitReady() {
	p.session.WaitForLoad()
}

type pwCard struct {
	loc playwright.Locator
}

func (c pwCard) HTML() (string, error) {
	return c.loc.InnerHTML()
}

func (c pwCard) Control(selector string) Control {
	return pwControl{loc: c.loc.Locator(selector).First()}
}

func (c pwCard) Click() error {
	return c.loc.Click()
}

type pwSearchSurface struct {
	session *browser.Session
}

func newSearchSurface(session *browser.Session) pwSearchSurface {
	return pwSearchSurface{session: session}
}

func (s pwSearchSurface) Box(selector string) SearchBox {
	return pwSearchBox{loc: s.session.Page().Locator(selector).First()}
}

func (s pwSearchSurface) ClickAt(x, y float64) error {
	return s.session.Page().Mouse().Click(x, y)
}

func (s pwSearchSurface) Screenshot() ([]byte, error) {
	return s.session.Screenshot()
}

func (s pwSearchSurface) WaitReady() {
	s.session.WaitForLoad()
}

type pwSearchBox struct {
	loc playwright.Locator
}

func (b pwSearchBox) Visible() (bool, error) {
	return b.loc.IsVisible()
}

func (b pwSearchBox) Clear() error {
	return b.loc.Clear()
}

func (b pwSearchBox) Fill(text string) error {
	return b.loc.Fill(text)
}

func (b pwSearchBox) Press(key string) error {
	return b.loc.Press(key)
}

type pwControl struct {
	loc playwright.Locator
}

func (c pwControl) Count() (int, error) {
	return c.loc.Count()
}

func (c pwControl) Visible() (bool, error) {
	return c.loc.IsVisible()
}

func (c pwControl) Text() (string, error) {
	return c.loc.TextContent()
}

func (c pwControl) Click() error {
	return c.loc.Click()
}
