package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CardFields holds the fields read from one search-result card.
type CardFields struct {
	Name     string
	Price    float64
	Delivery string
}

const maxNameRunes = 80

// ParseCard reads product name, price and delivery text from a result
// card's inner HTML. Result markup varies between cards, so every field is
// best-effort: a missing name or delivery yields an empty string, a missing
// price yields NoPrice. Only a broken HTML document is an error.
func ParseCard(html string, deliveryKeywords []string) (CardFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CardFields{}, fmt.Errorf("failed to parse card HTML: %w", err)
	}

	return CardFields{
		Name:     extractName(doc),
		Price:    extractCardPrice(doc),
		Delivery: extractDelivery(doc, deliveryKeywords),
	}, nil
}

func extractName(doc *goquery.Document) string {
	link := doc.Find(`a[href*="/product/"]`).First()
	if link.Length() == 0 {
		return ""
	}

	name := strings.TrimSpace(link.Find("span").First().Text())
	if name == "" {
		// Derive the name from the product URL segment.
		if href, ok := link.Attr("href"); ok {
			name = nameFromProductURL(href)
		}
	}

	return truncateRunes(strings.TrimSpace(name), maxNameRunes)
}

func nameFromProductURL(href string) string {
	_, rest, found := strings.Cut(href, "/product/")
	if !found {
		return ""
	}
	segment, _, _ := strings.Cut(rest, "/")
	return strings.ReplaceAll(segment, "-", " ")
}

func extractCardPrice(doc *goquery.Document) float64 {
	price := NoPrice
	doc.Find("span").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "₽") {
			return true
		}
		price = ParsePrice(text)
		return false
	})
	return price
}

func extractDelivery(doc *goquery.Document, keywords []string) string {
	text := strings.ToLower(strings.TrimSpace(doc.Find("button").First().Text()))
	if text == "" {
		return ""
	}
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return text
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
