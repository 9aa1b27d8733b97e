package data

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aminus/internal/model"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	assert.Len(t, c.Characters(), 10)
	assert.Len(t, c.Weapons(), 10)
	assert.Contains(t, c.Characters(), "Diluc")
	assert.Contains(t, c.Weapons(), "Wolf's Gravestone")
}

func TestCatalog_CharacterBase(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	got, err := c.CharacterBase(context.Background(), "amber")
	require.NoError(t, err)

	want := model.StatTableOf(
		model.Entry{Stat: model.BaseHP, Value: 9461.18},
		model.Entry{Stat: model.BaseATK, Value: 223.02},
		model.Entry{Stat: model.BaseDEF, Value: 600.62},
		model.Entry{Stat: model.ATKPercent, Value: 0.24},
		model.Entry{Stat: model.CritRate, Value: 0.05},
		model.Entry{Stat: model.CritDMG, Value: 0.5},
		model.Entry{Stat: model.EnergyRecharge, Value: 1},
	)
	assert.True(t, want.Equal(got), "got %s", got)
}

func TestCatalog_AscensionStacksWithBase(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	got, err := c.CharacterBase(context.Background(), "Diluc")
	require.NoError(t, err)
	assert.InDelta(t, 0.242, got.Get(model.CritRate), 1e-6)
	assert.InDelta(t, 334.85, got.Get(model.BaseATK), 1e-3)
}

func TestCatalog_WeaponBase(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	ctx := context.Background()

	suns, err := c.WeaponBase(ctx, "A Thousand Blazing Suns")
	require.NoError(t, err)
	assert.InDelta(t, 741, suns.Get(model.BaseATK), 1e-3)
	assert.InDelta(t, 0.11, suns.Get(model.CritRate), 1e-6)
	assert.Equal(t, 2, suns.Len())

	dull, err := c.WeaponBase(ctx, "dull blade")
	require.NoError(t, err)
	assert.Equal(t, 1, dull.Len())
	assert.Zero(t, dull.Get(model.BaseHP))
}

func TestCatalog_LookupErrors(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	ctx := context.Background()

	_, err := c.CharacterBase(ctx, "kamisato")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = c.CharacterBase(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, model.ErrLookup)

	_, err = c.WeaponBase(ctx, "excalibur")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_MainStatValue(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	tests := []struct {
		rarity, level int
		stat          model.Stat
		want          float32
	}{
		{5, 20, model.FlatHP, 4780},
		{5, 20, model.FlatATK, 311},
		{5, 20, model.EnergyRecharge, 0.518},
		{5, 20, model.ATKPercent, 0.466},
		{5, 20, model.CritDMG, 0.622},
		{5, 20, model.PyroDMGBonus, 0.466},
		{5, 20, model.PhysicalDMGBonus, 0.583},
		{5, 0, model.FlatHP, 717},
		{4, 16, model.CritRate, 0.232},
		{3, 12, model.ElementalMastery, 92.3},
		{1, 0, model.FlatATK, 8},
		{1, 0, model.PyroDMGBonus, 0.031},
	}
	for _, tt := range tests {
		got, err := c.MainStatValue(tt.rarity, tt.level, tt.stat)
		require.NoError(t, err, "%d* L%d %s", tt.rarity, tt.level, tt.stat)
		assert.InDelta(t, tt.want, got, 1e-4, "%d* L%d %s", tt.rarity, tt.level, tt.stat)
	}
}

func TestCatalog_MainStatValue_Errors(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)

	_, err := c.MainStatValue(6, 0, model.FlatHP)
	assert.ErrorIs(t, err, ErrInvalidRarity)

	_, err = c.MainStatValue(4, 17, model.FlatHP)
	assert.ErrorIs(t, err, ErrInvalidLevelForRarity)

	_, err = c.MainStatValue(5, -1, model.FlatHP)
	assert.ErrorIs(t, err, ErrInvalidLevelForRarity)

	_, err = c.MainStatValue(5, 20, model.BaseATK)
	assert.ErrorIs(t, err, ErrInvalidStat)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCatalog_SubStatValue(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	tests := []struct {
		rarity int
		stat   model.Stat
		want   float32
	}{
		{5, model.FlatHP, 298.75},
		{5, model.CritRate, 0.0389},
		{5, model.CritDMG, 0.0777},
		{5, model.EnergyRecharge, 0.0648},
		{4, model.ATKPercent, 0.0466},
		{1, model.ElementalMastery, 5.83},
	}
	for _, tt := range tests {
		got, err := c.SubStatValue(tt.rarity, tt.stat)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-5, "%d* %s", tt.rarity, tt.stat)
	}

	_, err := c.SubStatValue(5, model.PyroDMGBonus)
	assert.ErrorIs(t, err, ErrInvalidStat)
	_, err = c.SubStatValue(0, model.FlatHP)
	assert.ErrorIs(t, err, ErrInvalidRarity)
}

func TestLoadFS_Invalid(t *testing.T) {
	t.Parallel()

	const artifacts = "main: {}\nsub: {}\n"
	tests := []struct {
		name       string
		characters string
		weapons    string
		artifacts  string
	}{
		{
			name:       "duplicate character",
			characters: "- {name: Hu Tao, element: Pyro}\n- {name: hutao, element: Pyro}\n",
			weapons:    "[]",
			artifacts:  artifacts,
		},
		{
			name:       "nameless weapon",
			characters: "[]",
			weapons:    "- {base_atk: 10}\n",
			artifacts:  artifacts,
		},
		{
			name:       "unknown main stat",
			characters: "[]",
			weapons:    "[]",
			artifacts:  "main:\n  5:\n    Luck: [1]\n",
		},
		{
			name:       "rarity out of range",
			characters: "[]",
			weapons:    "[]",
			artifacts:  "sub:\n  7:\n    FlatHP: 1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				charactersFile: {Data: []byte(tt.characters)},
				weaponsFile:    {Data: []byte(tt.weapons)},
				artifactsFile:  {Data: []byte(tt.artifacts)},
			}
			_, err := LoadFS(fsys)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestLoadFS_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFS(fstest.MapFS{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), charactersFile)
}

func TestNewCatalog_NormalizesEmptyStats(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog(
		[]Character{{Name: "Plain", BaseHP: 1000}},
		[]Weapon{{Name: "Stick", BaseATK: 23}},
	)
	require.NoError(t, err)

	ch, err := c.Character("plain")
	require.NoError(t, err)
	assert.Equal(t, model.StatNone, ch.AscensionStat)
	// A zero Stat would have doubled BaseHP.
	assert.InDelta(t, 1000, ch.Stats().Get(model.BaseHP), 1e-6)

	_, err = c.MainStatValue(5, 20, model.FlatHP)
	assert.ErrorIs(t, err, ErrInvalidRarity)
}
