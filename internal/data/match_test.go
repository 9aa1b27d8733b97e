package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aminus/internal/model"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hu Tao", "hutao"},
		{"HU-TAO", "hutao"},
		{"Wolf's Gravestone", "wolfsgravestone"},
		{"  Kamisato Ayaka ", "kamisatoayaka"},
		{"Ëula", "eula"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	names := []string{"Amber", "Hu Tao", "Kamisato Ayaka", "Kamisato Ayato", "Raiden Shogun"}
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr error
	}{
		{name: "exact", query: "Amber", want: 0},
		{name: "case and spaces", query: "hutao", want: 1},
		{name: "subsequence", query: "ayaka", want: 2},
		{name: "abbreviation", query: "raiden", want: 4},
		{name: "ambiguous", query: "kamisato", wantErr: ErrAmbiguous},
		{name: "not found", query: "zhongli", wantErr: ErrNotFound},
		{name: "empty", query: " - ", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(names, tt.query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, model.ErrLookup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_ExactBeatsFuzzy(t *testing.T) {
	t.Parallel()

	// "Amber" is also a subsequence of "Amber Bow"; the exact entry wins.
	got, err := Match([]string{"Amber Bow", "Amber"}, "amber")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestParsePercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float32
	}{
		{"5.5%", 0.055},
		{"24%", 0.24},
		{" 12 % ", 0.12},
		{"741", 741},
		{"0.192", 0.192},
	}
	for _, tt := range tests {
		got, err := ParsePercentage(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-6, tt.in)
	}

	_, err := ParsePercentage("abc%")
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.ErrorIs(t, err, model.ErrValidation)
}
