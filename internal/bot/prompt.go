package bot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Preferences shape the list-generation prompt. They live in a YAML file
// next to the bot so the household can tune them without a rebuild.
type Preferences struct {
	DefaultServings int      `mapstructure:"default_servings"`
	FavoriteBrands  []string `mapstructure:"favorite_brands"`
	Exclusions      []string `mapstructure:"exclusions"`
}

func DefaultPreferences() Preferences {
	return Preferences{DefaultServings: 2}
}

// LoadPreferences reads the YAML preferences file. A missing file yields
// the defaults; a malformed one is an error.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("default_servings", prefs.DefaultServings)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := v.Unmarshal(&prefs); err != nil {
		return prefs, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}

// SystemPrompt builds the instruction the LLM gets before the user's
// request. The model must answer with a bare list: one purchasable
// grocery item per line, no commentary, so the reply can be fed straight
// into the shopping list file.
func SystemPrompt(prefs Preferences) string {
	var b strings.Builder
	b.WriteString("Ты помощник по составлению списка покупок для Ozon Fresh. ")
	b.WriteString("Пользователь описывает, что хочет приготовить или купить. ")
	b.WriteString("Ответь ТОЛЬКО списком продуктов, по одному товару на строку, ")
	b.WriteString("без нумерации, без пояснений, без приветствий. ")
	b.WriteString("Каждая строка — готовый поисковый запрос: название продукта ")
	b.WriteString("с жирностью, весом или количеством, если это важно.\n")

	fmt.Fprintf(&b, "Рассчитывай количество на %d порций, если пользователь не указал иное.\n", prefs.DefaultServings)

	if len(prefs.FavoriteBrands) > 0 {
		fmt.Fprintf(&b, "Предпочитаемые бренды: %s.\n", strings.Join(prefs.FavoriteBrands, ", "))
	}
	if len(prefs.Exclusions) > 0 {
		fmt.Fprintf(&b, "Никогда не включай в список: %s.\n", strings.Join(prefs.Exclusions, ", "))
	}

	return b.String()
}
