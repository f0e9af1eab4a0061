package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicySelect(t *testing.T) {
	policy := NewPolicy([]string{"сегодня", "завтра"})

	tests := []struct {
		name       string
		candidates []Candidate
		wantName   string
	}{
		{
			name: "cheapest among fast delivery wins",
			candidates: []Candidate{
				{Name: "A", Price: 100, Delivery: "завтра"},
				{Name: "B", Price: 80, Delivery: "послезавтра"},
				{Name: "C", Price: 120, Delivery: "сегодня"},
			},
			wantName: "A",
		},
		{
			name: "no fast delivery falls back to full set",
			candidates: []Candidate{
				{Name: "A", Price: 100, Delivery: "через неделю"},
				{Name: "B", Price: 80, Delivery: ""},
			},
			wantName: "B",
		},
		{
			name: "tie goes to first encountered",
			candidates: []Candidate{
				{Name: "A", Price: 99, Delivery: "сегодня"},
				{Name: "B", Price: 99, Delivery: "сегодня"},
			},
			wantName: "A",
		},
		{
			name: "single candidate without keyword still selected",
			candidates: []Candidate{
				{Name: "A", Price: 250, Delivery: "в пункт выдачи"},
			},
			wantName: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Select(tt.candidates)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestPolicySelectEmpty(t *testing.T) {
	policy := NewPolicy([]string{"сегодня"})
	assert.Nil(t, policy.Select(nil))
	assert.Nil(t, policy.Select([]Candidate{}))
}
