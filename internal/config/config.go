package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Shop    ShopConfig
	Browser BrowserConfig
	Pacing  PacingConfig
	OCR     OCRConfig
	LLM     LLMConfig
	Bot     BotConfig
	Journal JournalConfig
	Events  EventsConfig
	Status  StatusConfig
	Logging LoggingConfig
}

type ShopConfig struct {
	BaseURL          string
	FreshURL         string
	SearchTimeout    time.Duration
	PageLoadTimeout  time.Duration
	MaxCandidates    int
	DeliveryKeywords []string
	WaitForLogin     bool
	ShoppingListFile string
	ObserveHold      time.Duration
}

type BrowserConfig struct {
	Headless       bool
	UserDataDir    string
	SlowMo         time.Duration
	ViewportWidth  int
	ViewportHeight int
	Locale         string
}

type PacingConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

type OCRConfig struct {
	Endpoint      string
	Timeout       time.Duration
	MinConfidence float64
	Retries       int
	RetryDelay    time.Duration
}

type LLMConfig struct {
	Provider string // "openai" or "gigachat"

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GigaChatAuthKey string
	GigaChatAuthURL string
	GigaChatAPIURL  string
	GigaChatModel   string
	GigaChatScope   string
}

type BotConfig struct {
	Token           string
	PollTimeout     time.Duration
	PreferencesFile string
}

type JournalConfig struct {
	DSN string
}

type EventsConfig struct {
	RedisAddr string
	Stream    string
}

type StatusConfig struct {
	Addr           string
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Shop: ShopConfig{
			BaseURL:          getEnvOrDefault("OZON_URL", "https://www.ozon.ru"),
			FreshURL:         getEnvOrDefault("OZON_FRESH_URL", "https://www.ozon.ru/highlight/ozon-fresh/"),
			SearchTimeout:    getDurationOrDefault("SEARCH_TIMEOUT", 30*time.Second),
			PageLoadTimeout:  getDurationOrDefault("PAGE_LOAD_TIMEOUT", 60*time.Second),
			MaxCandidates:    getIntOrDefault("MAX_PRODUCTS_TO_CHECK", 5),
			DeliveryKeywords: getStringSliceOrDefault("DELIVERY_FILTERS", []string{"сегодня", "завтра"}),
			WaitForLogin:     getBoolOrDefault("WAIT_FOR_LOGIN", true),
			ShoppingListFile: getEnvOrDefault("SHOPPING_LIST_FILE", "./shopping_list.txt"),
			ObserveHold:      getDurationOrDefault("OBSERVE_HOLD", 30*time.Second),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", false),
			UserDataDir:    getEnvOrDefault("USER_DATA_DIR", "./ozon_browser_data"),
			SlowMo:         getDurationOrDefault("BROWSER_SLOW_MO", 100*time.Millisecond),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ru-RU"),
		},
		Pacing: PacingConfig{
			MinDelay: getDurationOrDefault("PACING_MIN", 1*time.Second),
			MaxDelay: getDurationOrDefault("PACING_MAX", 3*time.Second),
		},
		OCR: OCRConfig{
			Endpoint:      getEnvOrDefault("OCR_ENDPOINT", "http://localhost:8866/predict/ocr_system"),
			Timeout:       getDurationOrDefault("OCR_TIMEOUT", 30*time.Second),
			MinConfidence: getFloatOrDefault("OCR_MIN_CONFIDENCE", 0.5),
			Retries:       getIntOrDefault("OCR_RETRIES", 3),
			RetryDelay:    getDurationOrDefault("OCR_RETRY_DELAY", 2*time.Second),
		},
		LLM: LLMConfig{
			Provider:        getEnvOrDefault("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			GigaChatAuthKey: os.Getenv("GIGACHAT_AUTH_KEY"),
			GigaChatAuthURL: getEnvOrDefault("GIGACHAT_AUTH_URL", "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"),
			GigaChatAPIURL:  getEnvOrDefault("GIGACHAT_API_URL", "https://gigachat.devices.sberbank.ru/api/v1"),
			GigaChatModel:   getEnvOrDefault("GIGACHAT_MODEL", "GigaChat-2-Max"),
			GigaChatScope:   getEnvOrDefault("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
		},
		Bot: BotConfig{
			Token:           os.Getenv("TELEGRAM_BOT_TOKEN"),
			PollTimeout:     getDurationOrDefault("BOT_POLL_TIMEOUT", 30*time.Second),
			PreferencesFile: getEnvOrDefault("BOT_PREFERENCES_FILE", "./preferences.yaml"),
		},
		Journal: JournalConfig{
			DSN: os.Getenv("JOURNAL_DSN"),
		},
		Events: EventsConfig{
			RedisAddr: os.Getenv("REDIS_ADDR"),
			Stream:    getEnvOrDefault("EVENTS_STREAM", "stream:cart_items"),
		},
		Status: StatusConfig{
			Addr:           os.Getenv("STATUS_ADDR"),
			AllowedOrigins: getStringSliceOrDefault("STATUS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Shop.MaxCandidates < 1 {
		return fmt.Errorf("MAX_PRODUCTS_TO_CHECK must be at least 1")
	}

	if len(c.Shop.DeliveryKeywords) == 0 {
		return fmt.Errorf("DELIVERY_FILTERS must not be empty")
	}

	if c.Pacing.MinDelay > c.Pacing.MaxDelay {
		return fmt.Errorf("PACING_MIN cannot be greater than PACING_MAX")
	}

	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1 {
		return fmt.Errorf("OCR_MIN_CONFIDENCE must be within [0,1]")
	}

	switch c.LLM.Provider {
	case "openai", "gigachat":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q, use 'openai' or 'gigachat'", c.LLM.Provider)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
