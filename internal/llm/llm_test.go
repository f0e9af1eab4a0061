package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artemdev/ozon-cart-bot/internal/config"
)

func TestSplitItems(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "plain lines",
			response: "молоко\nхлеб\nсыр",
			want:     []string{"молоко", "хлеб", "сыр"},
		},
		{
			name:     "numbered list",
			response: "1. молоко 3,2%\n2. хлеб бородинский\n3) сыр",
			want:     []string{"молоко 3,2%", "хлеб бородинский", "сыр"},
		},
		{
			name:     "bulleted list with blanks",
			response: "- молоко\n\n* хлеб\n• сыр\n",
			want:     []string{"молоко", "хлеб", "сыр"},
		},
		{
			name:     "surrounding whitespace",
			response: "  молоко  \n\t хлеб",
			want:     []string{"молоко", "хлеб"},
		},
		{
			name:     "quantity prefix is not a list marker",
			response: "2 литра молока\n10 яиц",
			want:     []string{"2 литра молока", "10 яиц"},
		},
		{
			name:     "empty response",
			response: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitItems(tt.response))
		})
	}
}

func TestNewProviderSelection(t *testing.T) {
	p, err := New(config.LLMConfig{Provider: "openai", OpenAIAPIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = New(config.LLMConfig{Provider: "gigachat", GigaChatAuthKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "gigachat", p.Name())
}

func TestNewProviderMissingCredentials(t *testing.T) {
	_, err := New(config.LLMConfig{Provider: "openai"})
	require.Error(t, err)

	_, err = New(config.LLMConfig{Provider: "gigachat"})
	require.Error(t, err)

	_, err = New(config.LLMConfig{Provider: "claude"})
	require.Error(t, err)
}
