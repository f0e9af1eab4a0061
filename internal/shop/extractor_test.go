package shop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardHTML(name string, price string, delivery string) string {
	return fmt.Sprintf(`<div>
		<a href="/product/item-1/"><span>%s</span></a>
		<span>%s</span>
		<button>%s</button>
	</div>`, name, price, delivery)
}

func TestExtractorCapsAtMaxCandidates(t *testing.T) {
	var cards []Card
	for i := 0; i < 8; i++ {
		cards = append(cards, &fakeCard{
			html: cardHTML(fmt.Sprintf("Товар номер %d", i+1), "199 ₽", "завтра"),
		})
	}
	page := &fakePage{cardsBySelector: map[string][]Card{`div[data-index]`: cards}}

	e := NewExtractor(5, []string{"завтра"}, testLogger())
	got := e.Extract(context.Background(), page)

	require.Len(t, got, 5)
	assert.Equal(t, "Товар номер 1", got[0].Name)
	assert.Equal(t, 199.0, got[0].Price)
	assert.Equal(t, "завтра", got[0].Delivery)
}

func TestExtractorSkipsBrokenCard(t *testing.T) {
	cards := []Card{
		&fakeCard{html: cardHTML("Молоко", "89 ₽", "сегодня")},
		&fakeCard{htmlErr: errors.New("stale element")},
		&fakeCard{html: cardHTML("Кефир", "75 ₽", "завтра")},
	}
	page := &fakePage{cardsBySelector: map[string][]Card{`div[data-index]`: cards}}

	e := NewExtractor(5, []string{"сегодня", "завтра"}, testLogger())
	got := e.Extract(context.Background(), page)

	require.Len(t, got, 2)
	assert.Equal(t, "Молоко", got[0].Name)
	assert.Equal(t, "Кефир", got[1].Name)
}

func TestExtractorExcludesPricelessCards(t *testing.T) {
	cards := []Card{
		&fakeCard{html: cardHTML("Без цены", "нет в наличии", "")},
		&fakeCard{html: cardHTML("С ценой", "1 234,50 ₽", "завтра")},
	}
	page := &fakePage{cardsBySelector: map[string][]Card{`div[data-index]`: cards}}

	e := NewExtractor(5, []string{"завтра"}, testLogger())
	got := e.Extract(context.Background(), page)

	require.Len(t, got, 1)
	assert.Equal(t, "С ценой", got[0].Name)
	assert.Equal(t, 1234.50, got[0].Price)
}

func TestExtractorTriesFallbackSelectors(t *testing.T) {
	cards := []Card{
		&fakeCard{html: cardHTML("Хлеб", "45 ₽", "сегодня")},
	}
	page := &fakePage{cardsBySelector: map[string][]Card{`.tile-root`: cards}}

	e := NewExtractor(5, []string{"сегодня"}, testLogger())
	got := e.Extract(context.Background(), page)

	require.Len(t, got, 1)
	assert.Equal(t, "Хлеб", got[0].Name)
}

func TestExtractorEmptyPage(t *testing.T) {
	page := &fakePage{cardsBySelector: map[string][]Card{}}

	e := NewExtractor(5, []string{"сегодня"}, testLogger())
	assert.Empty(t, e.Extract(context.Background(), page))
}
