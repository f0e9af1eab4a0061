package shop

// Candidate is one parsed product entry from a search-result listing.
// Card is a weak handle into the live page: it stays valid only until the
// next navigation and must not be retained across page transitions.
type Candidate struct {
	Name     string
	Price    float64
	Delivery string
	Card     Card
}

// Card is a live handle onto one result card.
type Card interface {
	HTML() (string, error)
	Control(selector string) Control
	Click() error
}

// Control is a handle onto an interactive element within a card or page.
type Control interface {
	Count() (int, error)
	Visible() (bool, error)
	Text() (string, error)
	Click() error
}

// ResultsPage is the current page seen as a search-result surface.
type ResultsPage interface {
	Cards(selector string) ([]Card, error)
	Control(selector string) Control
	WaitReady()
}

// Selector chains are tried in priority order; the first one that yields a
// match wins. Result markup on Ozon changes between rollouts, so every
// lookup has alternates.
var (
	cardSelectors = []string{
		`div[data-index]`,
		`[data-widget="searchResultsV2"] div[data-index]`,
		`.tile-root`,
	}

	searchBoxSelectors = []string{
		`input[placeholder*="Искать"]`,
		`input[placeholder*="искать"]`,
		`[data-widget="searchBarDesktop"] input`,
		`input[name="text"]`,
		`form input[type="text"]`,
	}

	loggedInSelectors = []string{
		`[data-widget="userMenu"]`,
		`[data-widget="headerIcon"] [href*="/my/main"]`,
		`a[href*="/my/main"]`,
	}

	cartButtonLabels = []string{"Завтра", "Сегодня", "В корзину", "Добавить"}
)

const detailAddLabel = "В корзину"
