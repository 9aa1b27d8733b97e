package data

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/aminus/internal/model"
)

//go:embed gamedata/*.yaml
var gamedataFS embed.FS

const (
	charactersFile = "gamedata/characters.yaml"
	weaponsFile    = "gamedata/weapons.yaml"
	artifactsFile  = "gamedata/artifacts.yaml"
)

// elementalKey в artifacts.yaml раскрывается во все elemental DMG bonus, кроме physical.
const elementalKey = "elemental"

type artifactFile struct {
	Main map[int]map[string][]float32 `yaml:"main"`
	Sub  map[int]map[string]float32   `yaml:"sub"`
}

// Catalog is an in-memory snapshot of game data. It is read-only after
// loading and safe for concurrent use.
type Catalog struct {
	characters     []Character
	characterNames []string
	weapons        []Weapon
	weaponNames    []string

	// main[rarity][stat] — значения по уровням, индекс = уровень.
	main map[int]map[model.Stat][]float32
	sub  map[int]map[model.Stat]float32
}

var (
	_ StatLookup     = (*Catalog)(nil)
	_ ArtifactValues = (*Catalog)(nil)
)

// Load reads the catalog bundled with the binary.
func Load() (*Catalog, error) {
	return LoadFS(gamedataFS)
}

// LoadFS reads characters, weapons and artifact curves from fsys, which
// must hold the gamedata/ directory layout.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	if err := readYAML(fsys, charactersFile, &c.characters); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, weaponsFile, &c.weapons); err != nil {
		return nil, err
	}
	var af artifactFile
	if err := readYAML(fsys, artifactsFile, &af); err != nil {
		return nil, err
	}

	if err := c.indexCharacters(); err != nil {
		return nil, err
	}
	if err := c.indexWeapons(); err != nil {
		return nil, err
	}
	if err := c.indexArtifacts(af); err != nil {
		return nil, err
	}

	slog.Info("loaded game data",
		"characters", len(c.characters),
		"weapons", len(c.weapons),
		"artifact_rarities", len(c.main))
	return c, nil
}

func readYAML(fsys fs.FS, path string, out any) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// NewCatalog builds a catalog from in-memory entries. Artifact values are
// not available on such a catalog.
func NewCatalog(characters []Character, weapons []Weapon) (*Catalog, error) {
	c := &Catalog{
		characters: slices.Clone(characters),
		weapons:    slices.Clone(weapons),
	}
	if err := c.indexCharacters(); err != nil {
		return nil, err
	}
	if err := c.indexWeapons(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) indexCharacters() error {
	seen := make(map[string]string, len(c.characters))
	c.characterNames = make([]string, len(c.characters))
	for i := range c.characters {
		ch := &c.characters[i]
		if ch.Name == "" {
			return fmt.Errorf("%w: character #%d has no name", ErrInvalidData, i)
		}
		key := Normalize(ch.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate character %q and %q", ErrInvalidData, prev, ch.Name)
		}
		seen[key] = ch.Name
		// Нулевой Stat это BaseHP, поэтому пустое значение явно помечаем как None.
		if ch.AscensionValue == 0 {
			ch.AscensionStat = model.StatNone
		}
		c.characterNames[i] = ch.Name
	}
	return nil
}

func (c *Catalog) indexWeapons() error {
	seen := make(map[string]string, len(c.weapons))
	c.weaponNames = make([]string, len(c.weapons))
	for i := range c.weapons {
		w := &c.weapons[i]
		if w.Name == "" {
			return fmt.Errorf("%w: weapon #%d has no name", ErrInvalidData, i)
		}
		key := Normalize(w.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate weapon %q and %q", ErrInvalidData, prev, w.Name)
		}
		seen[key] = w.Name
		if w.SubValue == 0 {
			w.SubStat = model.StatNone
		}
		c.weaponNames[i] = w.Name
	}
	return nil
}

func (c *Catalog) indexArtifacts(af artifactFile) error {
	c.main = make(map[int]map[model.Stat][]float32, len(af.Main))
	for rarity, curves := range af.Main {
		if rarity < 1 || rarity > 5 {
			return fmt.Errorf("%w: artifact rarity %d", ErrInvalidData, rarity)
		}
		byStat := make(map[model.Stat][]float32, len(curves))
		for name, values := range curves {
			if name == elementalKey {
				for _, s := range model.AllStats() {
					if s.IsElementalDMGBonus() && s != model.PhysicalDMGBonus {
						byStat[s] = values
					}
				}
				continue
			}
			s, err := model.ParseStat(name)
			if err != nil {
				return fmt.Errorf("%w: main stat %q for rarity %d", ErrInvalidData, name, rarity)
			}
			byStat[s] = values
		}
		c.main[rarity] = byStat
	}

	c.sub = make(map[int]map[model.Stat]float32, len(af.Sub))
	for rarity, values := range af.Sub {
		if rarity < 1 || rarity > 5 {
			return fmt.Errorf("%w: artifact rarity %d", ErrInvalidData, rarity)
		}
		byStat := make(map[model.Stat]float32, len(values))
		for name, v := range values {
			s, err := model.ParseStat(name)
			if err != nil {
				return fmt.Errorf("%w: substat %q for rarity %d", ErrInvalidData, name, rarity)
			}
			byStat[s] = v
		}
		c.sub[rarity] = byStat
	}
	return nil
}

// Characters returns the character names in file order.
func (c *Catalog) Characters() []string { return slices.Clone(c.characterNames) }

// Weapons returns the weapon names in file order.
func (c *Catalog) Weapons() []string { return slices.Clone(c.weaponNames) }

// Character resolves a character by exact or fuzzy name.
func (c *Catalog) Character(name string) (Character, error) {
	i, err := Match(c.characterNames, name)
	if err != nil {
		return Character{}, fmt.Errorf("character: %w", err)
	}
	return c.characters[i], nil
}

// Weapon resolves a weapon by exact or fuzzy name.
func (c *Catalog) Weapon(name string) (Weapon, error) {
	i, err := Match(c.weaponNames, name)
	if err != nil {
		return Weapon{}, fmt.Errorf("weapon: %w", err)
	}
	return c.weapons[i], nil
}

// AllCharacters returns a copy of every character entry.
func (c *Catalog) AllCharacters() []Character { return slices.Clone(c.characters) }

// AllWeapons returns a copy of every weapon entry.
func (c *Catalog) AllWeapons() []Weapon { return slices.Clone(c.weapons) }

// CharacterBase implements StatLookup.
func (c *Catalog) CharacterBase(_ context.Context, name string) (*model.StatTable, error) {
	ch, err := c.Character(name)
	if err != nil {
		return nil, err
	}
	return ch.Stats(), nil
}

// WeaponBase implements StatLookup.
func (c *Catalog) WeaponBase(_ context.Context, name string) (*model.StatTable, error) {
	w, err := c.Weapon(name)
	if err != nil {
		return nil, err
	}
	return w.Stats(), nil
}

// MainStatValue returns the main stat value of a piece of the given rarity
// and level.
func (c *Catalog) MainStatValue(rarity, level int, stat model.Stat) (float32, error) {
	curves, ok := c.main[rarity]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRarity, rarity)
	}
	values, ok := curves[stat]
	if !ok {
		return 0, fmt.Errorf("%w: main %s", ErrInvalidStat, stat)
	}
	if level < 0 || level >= len(values) {
		return 0, fmt.Errorf("%w: level %d for %d-star", ErrInvalidLevelForRarity, level, rarity)
	}
	return values[level], nil
}

// SubStatValue returns the value of one max-quality roll of stat.
func (c *Catalog) SubStatValue(rarity int, stat model.Stat) (float32, error) {
	values, ok := c.sub[rarity]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRarity, rarity)
	}
	v, ok := values[stat]
	if !ok {
		return 0, fmt.Errorf("%w: substat %s", ErrInvalidStat, stat)
	}
	return v, nil
}
