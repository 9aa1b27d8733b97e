package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aminus/internal/model"
)

const remoteCharacters = `{"data":[
 {"name":"Amber","rarity":4,"element":"Pyro","weapon":"Bow","ascension_stat":"ATK","base_stats":[
  {"LVL":"1","BaseHP":"793","BaseATK":"19","BaseDEF":"50","AscensionStatType":"ATK","AscensionStatValue":"0%","AscensionPhase":0},
  {"LVL":"90","BaseHP":"9461","BaseATK":"223","BaseDEF":"601","AscensionStatType":"ATK","AscensionStatValue":"24%","AscensionPhase":6}]},
 {"name":"Diluc","rarity":5,"element":"Pyro","weapon":"Claymore","ascension_stat":"CRIT Rate","base_stats":[
  {"LVL":"80","BaseHP":"11453","BaseATK":"296","BaseDEF":"691","AscensionStatType":"CRIT Rate","AscensionStatValue":"14.4%","AscensionPhase":5},
  {"LVL":"80+","BaseHP":"12068","BaseATK":"311","BaseDEF":"729","AscensionStatType":"CRIT Rate","AscensionStatValue":"19.2%","AscensionPhase":6}]}
]}`

const remoteWeapons = `{"data":[
 {"name":"Skyward Pride","rarity":5,"category":"Claymore","base_stats":[
  {"level":"90","base_atk":"674","sub_stat_type":"Energy Recharge","sub_stat_value":"36.8%","ascension_phase":6}]},
 {"name":"Dull Blade","rarity":1,"category":"Sword","base_stats":[
  {"level":"70","base_atk":"185"}]}
]}`

func newRemoteServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/characters.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(remoteCharacters))
	})
	mux.HandleFunc("/weapons.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(remoteWeapons))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteSource_CharacterBase(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := newRemoteServer(t, &hits)
	src := NewRemoteSource(srv.URL+"/", time.Second)
	ctx := context.Background()

	amber, err := src.CharacterBase(ctx, "amber")
	require.NoError(t, err)
	assert.InDelta(t, 223, amber.Get(model.BaseATK), 1e-3)
	assert.InDelta(t, 0.24, amber.Get(model.ATKPercent), 1e-6)
	assert.Zero(t, amber.Get(model.FlatATK))
	assert.InDelta(t, 0.05, amber.Get(model.CritRate), 1e-6)

	// No level 90 entry: the last one is used.
	diluc, err := src.CharacterBase(ctx, "diluc")
	require.NoError(t, err)
	assert.InDelta(t, 311, diluc.Get(model.BaseATK), 1e-3)
	assert.InDelta(t, 0.242, diluc.Get(model.CritRate), 1e-6)

	assert.Equal(t, int32(2), hits.Load(), "lists are fetched once")
}

func TestRemoteSource_WeaponBase(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := newRemoteServer(t, &hits)
	src := NewRemoteSource(srv.URL, 0)
	ctx := context.Background()
	require.NoError(t, src.Prefetch(ctx))

	pride, err := src.WeaponBase(ctx, "skyward")
	require.NoError(t, err)
	assert.InDelta(t, 674, pride.Get(model.BaseATK), 1e-3)
	assert.InDelta(t, 0.368, pride.Get(model.EnergyRecharge), 1e-6)

	dull, err := src.WeaponBase(ctx, "Dull Blade")
	require.NoError(t, err)
	assert.Equal(t, 1, dull.Len())

	_, err = src.WeaponBase(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoteSource_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/weapons.json" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(remoteCharacters))
	}))
	t.Cleanup(srv.Close)

	src := NewRemoteSource(srv.URL, time.Second)
	err := src.Prefetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weapons.json")

	// Nothing is cached after a failed fetch.
	_, err = src.CharacterBase(context.Background(), "amber")
	require.Error(t, err)
}

func TestRemoteSource_BadPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/weapons.json" {
			_, _ = w.Write([]byte(`{"data":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"name":"X","base_stats":[{"LVL":"90","BaseHP":"oops"}]}]}`))
	}))
	t.Cleanup(srv.Close)

	err := NewRemoteSource(srv.URL, time.Second).Prefetch(context.Background())
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestRemoteStat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label, value string
		want         model.Stat
		wantValue    float32
	}{
		{"ATK", "24%", model.ATKPercent, 0.24},
		{"HP", "28.8%", model.HPPercent, 0.288},
		{"CRIT DMG", "38.4%", model.CritDMG, 0.384},
		{"Elemental Mastery", "96", model.ElementalMastery, 96},
		{"Physical DMG Bonus", "41.3%", model.PhysicalDMGBonus, 0.413},
		{"Geo DMG Bonus", "28.8%", model.GeoDMGBonus, 0.288},
		{"", "", model.StatNone, 0},
	}
	for _, tt := range tests {
		s, v, err := remoteStat(tt.label, tt.value)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, s, tt.label)
		assert.InDelta(t, tt.wantValue, v, 1e-6, tt.label)
	}

	_, _, err := remoteStat("Luck", "1")
	assert.ErrorIs(t, err, ErrInvalidData)
}
