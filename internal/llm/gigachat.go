package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artemdev/ozon-cart-bot/internal/config"
)

// Access tokens are issued for 30 minutes; refresh a little early so a
// token never expires mid-request.
const tokenRefreshMargin = 5 * time.Minute

// GigaChat talks to Sber's GigaChat API. Authentication goes through a
// separate OAuth endpoint; the obtained access token is cached and
// refreshed before expiry.
//
// The OAuth endpoint serves a certificate from the Russian trust chain
// that is absent from most system stores, hence the relaxed TLS config.
type GigaChat struct {
	authKey string
	authURL string
	apiURL  string
	model   string
	scope   string
	client  *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewGigaChat(cfg config.LLMConfig) *GigaChat {
	return &GigaChat{
		authKey: cfg.GigaChatAuthKey,
		authURL: cfg.GigaChatAuthURL,
		apiURL:  cfg.GigaChatAPIURL,
		model:   cfg.GigaChatModel,
		scope:   cfg.GigaChatScope,
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (g *GigaChat) Name() string {
	return "gigachat"
}

type gigaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix milliseconds
}

func (g *GigaChat) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.expiresAt.Add(-tokenRefreshMargin)) {
		return g.accessToken, nil
	}

	form := url.Values{"scope": {g.scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", uuid.New().String())
	req.Header.Set("Authorization", "Basic "+g.authKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed gigaTokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token response contains no access_token")
	}

	g.accessToken = parsed.AccessToken
	if parsed.ExpiresAt > 0 {
		g.expiresAt = time.UnixMilli(parsed.ExpiresAt)
	} else {
		g.expiresAt = time.Now().Add(30 * time.Minute)
	}

	return g.accessToken, nil
}

func (g *GigaChat) Generate(ctx context.Context, system, user string) (string, error) {
	token, err := g.token(ctx)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
