package folio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForImage(t *testing.T) {
	tests := []struct {
		start string
		index int
		want  string
	}{
		{"12a", 0, "12a"},
		{"12a", 1, "12b"},
		{"12a", 2, "13a"},
		{"12a", 5, "14b"},
		{"7b", 0, "7b"},
		{"7b", 1, "8a"},
		{"7b", 2, "8b"},
		{"7B", 3, "9a"},
		{" 1a ", 9, "5b"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := ForImage(tt.start, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "ForImage(%q, %d)", tt.start, tt.index)
		})
	}
}

func TestForImageAlternatesSides(t *testing.T) {
	for _, start := range []string{"1a", "1b", "12a", "7b", "100b"} {
		prev, err := Parse(start)
		require.NoError(t, err)
		for i := 1; i < 50; i++ {
			label, err := ForImage(start, i)
			require.NoError(t, err)
			cur, err := Parse(label)
			require.NoError(t, err)
			assert.NotEqual(t, prev.Side, cur.Side, "%s: images %d and %d share side", start, i-1, i)
			prev = cur
		}
	}
}

func TestParseRejectsMalformedLabels(t *testing.T) {
	for _, in := range []string{"", "a", "b12", "folio", "12", "12c", "12ab", "-3a"} {
		_, err := Parse(in)
		require.Error(t, err, "Parse(%q)", in)
		assert.True(t, errors.Is(err, ErrMalformedFolioLabel), "Parse(%q) error %v does not wrap ErrMalformedFolioLabel", in, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, in, perr.Input)
	}
}

func TestForImagePropagatesMalformedLabel(t *testing.T) {
	_, err := ForImage("xa", 3)
	assert.ErrorIs(t, err, ErrMalformedFolioLabel)
}

func TestForImageNegativeIndex(t *testing.T) {
	_, err := ForImage("1a", -1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedFolioLabel))
}

func TestRange(t *testing.T) {
	got, err := Range("7b", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"7b", "8a", "8b", "9a"}, got)
}
