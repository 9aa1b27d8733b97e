package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStatFromID(t *testing.T) {
	tests := []struct {
		id   int
		want Stat
	}{
		{0, BaseHP},
		{5, ATKPercent},
		{12, EnergyRecharge},
		{15, PyroDMGBonus},
		{22, PhysicalDMGBonus},
		{28, HealingBonus},
		{29, StatNone},
		{30, ReactionBonus},
		{32, DefIgnore},
		{40, PhysicalResistanceReduction},
	}

	for _, tt := range tests {
		got, err := StatFromID(tt.id)
		if err != nil {
			t.Fatalf("StatFromID(%d): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("StatFromID(%d) = %s, want %s", tt.id, got, tt.want)
		}
		if got.ID() != tt.id {
			t.Errorf("%s.ID() = %d, want %d", got, got.ID(), tt.id)
		}
	}
}

func TestStatFromID_Invalid(t *testing.T) {
	for _, id := range []int{-1, 41, 255} {
		_, err := StatFromID(id)
		require.Error(t, err, "id %d", id)
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.ErrorIs(t, err, ErrValidation)
		assert.False(t, errors.Is(err, ErrLookup))
	}
}

func TestStatCount(t *testing.T) {
	assert.Equal(t, 41, int(StatCount))
	assert.Len(t, AllStats(), 41)
	for i, s := range AllStats() {
		assert.Equal(t, i, s.ID())
		assert.NotContains(t, s.String(), "Stat(", "stat %d has no name", i)
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		in   string
		want Stat
	}{
		{"CritRate", CritRate},
		{"critrate", CritRate},
		{"  ATKPercent ", ATKPercent},
		{"atk%", ATKPercent},
		{"ATK", FlatATK},
		{"em", ElementalMastery},
		{"Pyro%", PyroDMGBonus},
		{"None", StatNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStat("luck")
	assert.ErrorIs(t, err, ErrUnknownStat)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatText_YAMLRoundTrip(t *testing.T) {
	type doc struct {
		Stats []Stat `yaml:"stats"`
	}
	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("stats: [CritDMG, er, HydroDMGBonus]\n"), &d))
	assert.Equal(t, []Stat{CritDMG, EnergyRecharge, HydroDMGBonus}, d.Stats)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "EnergyRecharge")
}

func TestIsElementalDMGBonus(t *testing.T) {
	count := 0
	for _, s := range AllStats() {
		if s.IsElementalDMGBonus() {
			count++
		}
	}
	assert.Equal(t, 8, count)
	assert.False(t, ElementalDMGBonus.IsElementalDMGBonus())
}

func TestEnumIDs(t *testing.T) {
	e, err := ElementFromID(7)
	require.NoError(t, err)
	assert.Equal(t, Physical, e)
	_, err = ElementFromID(8)
	assert.ErrorIs(t, err, ErrValidation)

	d, err := DamageTypeFromID(3)
	require.NoError(t, err)
	assert.Equal(t, Skill, d)
	_, err = DamageTypeFromID(5)
	assert.ErrorIs(t, err, ErrInvalidID)

	s, err := ScalingFromID(2)
	require.NoError(t, err)
	assert.Equal(t, ScalingHP, s)
	_, err = ScalingFromID(-1)
	assert.ErrorIs(t, err, ErrInvalidID)

	a, err := AmplifierFromID(1)
	require.NoError(t, err)
	assert.Equal(t, Forward, a)
	_, err = AmplifierFromID(3)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestElementMappings(t *testing.T) {
	for _, e := range []Element{Pyro, Hydro, Electro, Cryo, Anemo, Geo, Dendro, Physical} {
		bonus, ok := e.DMGBonus()
		assert.True(t, ok, "%s bonus", e)
		assert.True(t, bonus.IsElementalDMGBonus(), "%s bonus", e)

		_, ok = e.ResistanceReduction()
		assert.True(t, ok, "%s reduction", e)
	}
	_, ok := ElementNone.DMGBonus()
	assert.False(t, ok)

	amplifiable := map[Element]bool{Pyro: true, Hydro: true, Cryo: true, Anemo: true}
	for _, e := range []Element{Pyro, Hydro, Electro, Cryo, Anemo, Geo, Dendro, Physical} {
		assert.Equal(t, amplifiable[e], e.Amplifiable(), "%s", e)
	}
}

func TestAmplifierMultiplier(t *testing.T) {
	assert.Equal(t, float32(1.0), AmplifierNone.Multiplier())
	assert.Equal(t, float32(2.0), Forward.Multiplier())
	assert.Equal(t, float32(1.5), Reverse.Multiplier())
}

func TestParseEnums(t *testing.T) {
	e, err := ParseElement("cryo")
	require.NoError(t, err)
	assert.Equal(t, Cryo, e)

	d, err := ParseDamageType("BURST")
	require.NoError(t, err)
	assert.Equal(t, Burst, d)

	s, err := ParseScaling("def")
	require.NoError(t, err)
	assert.Equal(t, ScalingDEF, s)

	a, err := ParseAmplifier("reverse")
	require.NoError(t, err)
	assert.Equal(t, Reverse, a)

	_, err = ParseElement("quantum")
	assert.ErrorIs(t, err, ErrUnknownName)
}
