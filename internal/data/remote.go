package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/aminus/internal/model"
)

// DefaultRemoteTimeout bounds a single list request.
const DefaultRemoteTimeout = 10 * time.Second

const maxLevelKey = "90"

// RemoteSource fetches character and weapon lists from an HTTP API serving
// {base}/characters.json and {base}/weapons.json. Lists are fetched once
// and cached; a failed fetch leaves nothing cached.
type RemoteSource struct {
	baseURL string
	client  *http.Client

	mu      sync.Mutex
	catalog *Catalog
}

var _ StatLookup = (*RemoteSource)(nil)

// NewRemoteSource creates a source for baseURL. A zero timeout means
// DefaultRemoteTimeout.
func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type remoteCharacterList struct {
	Data []remoteCharacter `json:"data"`
}

type remoteCharacter struct {
	Name      string                `json:"name"`
	Rarity    int                   `json:"rarity"`
	Element   string                `json:"element"`
	Weapon    string                `json:"weapon"`
	BaseStats []remoteCharacterStat `json:"base_stats"`
}

type remoteCharacterStat struct {
	Level          string `json:"LVL"`
	BaseHP         string `json:"BaseHP"`
	BaseATK        string `json:"BaseATK"`
	BaseDEF        string `json:"BaseDEF"`
	AscensionType  string `json:"AscensionStatType"`
	AscensionValue string `json:"AscensionStatValue"`
}

type remoteWeaponList struct {
	Data []remoteWeapon `json:"data"`
}

type remoteWeapon struct {
	Name      string             `json:"name"`
	Rarity    int                `json:"rarity"`
	Category  string             `json:"category"`
	BaseStats []remoteWeaponStat `json:"base_stats"`
}

type remoteWeaponStat struct {
	Level        string  `json:"level"`
	BaseATK      string  `json:"base_atk"`
	SubStatType  *string `json:"sub_stat_type"`
	SubStatValue *string `json:"sub_stat_value"`
}

// Prefetch downloads both lists concurrently. It is a no-op when the lists
// are already cached.
func (r *RemoteSource) Prefetch(ctx context.Context) error {
	_, err := r.load(ctx)
	return err
}

func (r *RemoteSource) load(ctx context.Context) (*Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog != nil {
		return r.catalog, nil
	}

	var (
		chars   remoteCharacterList
		weapons remoteWeaponList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.getJSON(gctx, "/characters.json", &chars)
	})
	g.Go(func() error {
		return r.getJSON(gctx, "/weapons.json", &weapons)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	characters, err := convertCharacters(chars.Data)
	if err != nil {
		return nil, err
	}
	ws, err := convertWeapons(weapons.Data)
	if err != nil {
		return nil, err
	}
	c, err := NewCatalog(characters, ws)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded remote game data", "characters", len(characters), "weapons", len(ws), "url", r.baseURL)
	r.catalog = c
	return c, nil
}

func (r *RemoteSource) getJSON(ctx context.Context, path string, out any) error {
	url := r.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request %s: %w", url, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// CharacterBase implements StatLookup.
func (r *RemoteSource) CharacterBase(ctx context.Context, name string) (*model.StatTable, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.CharacterBase(ctx, name)
}

// WeaponBase implements StatLookup.
func (r *RemoteSource) WeaponBase(ctx context.Context, name string) (*model.StatTable, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.WeaponBase(ctx, name)
}

func convertCharacters(in []remoteCharacter) ([]Character, error) {
	out := make([]Character, 0, len(in))
	for _, rc := range in {
		st, ok := pickLevel(rc.BaseStats, func(s remoteCharacterStat) string { return s.Level })
		if !ok {
			return nil, fmt.Errorf("%w: character %q has no base stats", ErrInvalidData, rc.Name)
		}
		ch := Character{Name: rc.Name, Rarity: rc.Rarity, Weapon: rc.Weapon, Element: model.ElementNone}
		if rc.Element != "" {
			el, err := model.ParseElement(rc.Element)
			if err != nil {
				return nil, fmt.Errorf("character %q: %w", rc.Name, err)
			}
			ch.Element = el
		}

		var err error
		if ch.BaseHP, err = ParsePercentage(st.BaseHP); err != nil {
			return nil, fmt.Errorf("character %q: %w", rc.Name, err)
		}
		if ch.BaseATK, err = ParsePercentage(st.BaseATK); err != nil {
			return nil, fmt.Errorf("character %q: %w", rc.Name, err)
		}
		if ch.BaseDEF, err = ParsePercentage(st.BaseDEF); err != nil {
			return nil, fmt.Errorf("character %q: %w", rc.Name, err)
		}
		ch.AscensionStat, ch.AscensionValue, err = remoteStat(st.AscensionType, st.AscensionValue)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", rc.Name, err)
		}
		out = append(out, ch)
	}
	return out, nil
}

func convertWeapons(in []remoteWeapon) ([]Weapon, error) {
	out := make([]Weapon, 0, len(in))
	for _, rw := range in {
		st, ok := pickLevel(rw.BaseStats, func(s remoteWeaponStat) string { return s.Level })
		if !ok {
			return nil, fmt.Errorf("%w: weapon %q has no base stats", ErrInvalidData, rw.Name)
		}
		w := Weapon{Name: rw.Name, Rarity: rw.Rarity, Type: rw.Category, SubStat: model.StatNone}

		var err error
		if w.BaseATK, err = ParsePercentage(st.BaseATK); err != nil {
			return nil, fmt.Errorf("weapon %q: %w", rw.Name, err)
		}
		if st.SubStatType != nil && st.SubStatValue != nil {
			w.SubStat, w.SubValue, err = remoteStat(*st.SubStatType, *st.SubStatValue)
			if err != nil {
				return nil, fmt.Errorf("weapon %q: %w", rw.Name, err)
			}
		}
		out = append(out, w)
	}
	return out, nil
}

// pickLevel returns the level 90 entry, or the last one when the list
// stops earlier.
func pickLevel[T any](stats []T, level func(T) string) (T, bool) {
	var zero T
	if len(stats) == 0 {
		return zero, false
	}
	for _, s := range stats {
		if strings.TrimSpace(level(s)) == maxLevelKey {
			return s, true
		}
	}
	return stats[len(stats)-1], true
}

// remoteStat maps API stat labels such as "CRIT Rate" or "ATK" with a "24%"
// value onto a stat. HP, ATK and DEF labels mean the percent variant when the
// value carries a percent sign.
func remoteStat(label, value string) (model.Stat, float32, error) {
	if strings.TrimSpace(label) == "" {
		return model.StatNone, 0, nil
	}
	v, err := ParsePercentage(value)
	if err != nil {
		return 0, 0, err
	}
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", ""))
	if strings.HasSuffix(strings.TrimSpace(value), "%") {
		switch key {
		case "hp", "atk", "def":
			key += "%"
		}
	}
	s, err := model.ParseStat(key)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: stat %q", ErrInvalidData, label)
	}
	return s, v, nil
}
