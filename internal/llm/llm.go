package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/artemdev/ozon-cart-bot/internal/config"
)

// Provider generates a completion for a system+user prompt pair. Both
// built-in providers speak an OpenAI-style chat completion dialect.
type Provider interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Name() string
}

// New builds the provider selected by configuration.
func New(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(cfg), nil
	case "gigachat":
		if cfg.GigaChatAuthKey == "" {
			return nil, fmt.Errorf("GIGACHAT_AUTH_KEY is required for the gigachat provider")
		}
		return NewGigaChat(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// SplitItems turns a model response into a shopping list, one item per
// line. Numbering, bullets and surrounding whitespace are stripped;
// blank lines are dropped.
func SplitItems(response string) []string {
	var items []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = trimNumbering(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// trimNumbering removes a leading "1." / "2)" style list marker.
func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return line[i+1:]
	}
	return line
}
