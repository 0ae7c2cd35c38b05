package bfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", HybridStrategy},
		{"hybrid", HybridStrategy},
		{"top-down", TopDownStrategy},
		{"topdown", TopDownStrategy},
		{"forward", TopDownStrategy},
		{"bottom-up", BottomUpStrategy},
		{"bottomup", BottomUpStrategy},
		{"reverse", BottomUpStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategy("sideways")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategyStringRoundTrip(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
	assert.Equal(t, "bottom-up", StepBottomUp.String())
	assert.Equal(t, "top-down", StepTopDown.String())
}
