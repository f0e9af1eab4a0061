// Package bot is the Telegram front-end of the cart automation: a user
// describes what they want to cook or buy, the LLM turns that into a
// shopping list, and the list is written to the file the shopper reads.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/artemdev/ozon-cart-bot/internal/listfile"
	"github.com/artemdev/ozon-cart-bot/internal/llm"
)

// Messenger is the Telegram surface the bot loop needs; satisfied by
// TelegramClient.
type Messenger interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Bot struct {
	telegram    Messenger
	provider    llm.Provider
	prefs       Preferences
	listPath    string
	pollTimeout time.Duration
	logger      *slog.Logger
}

func New(telegram Messenger, provider llm.Provider, prefs Preferences, listPath string, pollTimeout time.Duration, logger *slog.Logger) *Bot {
	return &Bot{
		telegram:    telegram,
		provider:    provider,
		prefs:       prefs,
		listPath:    listPath,
		pollTimeout: pollTimeout,
		logger:      logger.With("component", "bot"),
	}
}

// Run long-polls until ctx is cancelled. Poll errors are logged and
// retried after a short pause; a single bad update never stops the loop.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "provider", b.provider.Name())

	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			b.logger.Info("bot stopped")
			return err
		}

		updates, err := b.telegram.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				b.logger.Info("bot stopped")
				return ctx.Err()
			}
			b.logger.Error("failed to poll updates", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	text := strings.TrimSpace(msg.Text)
	b.logger.Info("message received", "chat_id", msg.Chat.ID, "text", text)

	var reply string
	switch {
	case strings.HasPrefix(text, "/start"):
		reply = "Привет! Напиши, что хочешь приготовить или купить, и я составлю список покупок для Ozon Fresh."
	case strings.HasPrefix(text, "/help"):
		reply = "Опиши блюдо или набор продуктов (например, «борщ на 4 порции»).\n" +
			"Я превращу это в список покупок и сохраню его для закупщика.\n\n" +
			"/settings — текущие предпочтения\n" +
			"/model — используемая модель"
	case strings.HasPrefix(text, "/settings"):
		reply = b.settingsSummary()
	case strings.HasPrefix(text, "/model"):
		reply = fmt.Sprintf("Провайдер: %s", b.provider.Name())
	default:
		reply = b.buildList(ctx, text)
	}

	if err := b.telegram.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		b.logger.Error("failed to send reply", "chat_id", msg.Chat.ID, "error", err)
	}
}

// buildList asks the LLM for a list, persists it, and renders the reply.
func (b *Bot) buildList(ctx context.Context, request string) string {
	response, err := b.provider.Generate(ctx, SystemPrompt(b.prefs), request)
	if err != nil {
		b.logger.Error("LLM request failed", "error", err)
		return "Не получилось составить список, попробуй ещё раз."
	}

	items := llm.SplitItems(response)
	if len(items) == 0 {
		return "Модель не вернула ни одного товара, попробуй переформулировать."
	}

	if err := listfile.Save(b.listPath, items); err != nil {
		b.logger.Error("failed to save shopping list", "error", err)
		return "Список составлен, но сохранить его не удалось."
	}
	b.logger.Info("shopping list saved", "items", len(items), "path", b.listPath)

	var sb strings.Builder
	sb.WriteString("Список покупок:\n")
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	sb.WriteString("\nСохранено. Запусти закупщика, чтобы добавить всё в корзину.")
	return sb.String()
}

func (b *Bot) settingsSummary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Порций по умолчанию: %d\n", b.prefs.DefaultServings)
	if len(b.prefs.FavoriteBrands) > 0 {
		fmt.Fprintf(&sb, "Любимые бренды: %s\n", strings.Join(b.prefs.FavoriteBrands, ", "))
	}
	if len(b.prefs.Exclusions) > 0 {
		fmt.Fprintf(&sb, "Исключения: %s\n", strings.Join(b.prefs.Exclusions, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
