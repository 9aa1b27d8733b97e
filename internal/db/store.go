package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aminus/internal/data"
	"github.com/udisondev/aminus/internal/model"
)

// Store хранит справочные данные персонажей и оружия в PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ data.StatLookup = (*Store)(nil)

// NewStore создаёт Store поверх pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const upsertCharacter = `
	INSERT INTO characters
	 (name, element, rarity, weapon, base_hp, base_atk, base_def, ascension_stat, ascension_value)
	 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	 ON CONFLICT (name) DO UPDATE SET
	  element=$2, rarity=$3, weapon=$4, base_hp=$5, base_atk=$6, base_def=$7,
	  ascension_stat=$8, ascension_value=$9`

const upsertWeapon = `
	INSERT INTO weapons (name, rarity, type, base_atk, sub_stat, sub_value)
	 VALUES ($1,$2,$3,$4,$5,$6)
	 ON CONFLICT (name) DO UPDATE SET
	  rarity=$2, type=$3, base_atk=$4, sub_stat=$5, sub_value=$6`

// Seed upserts every character and weapon of catalog in one transaction.
func (s *Store) Seed(ctx context.Context, catalog *data.Catalog) error {
	characters := catalog.AllCharacters()
	weapons := catalog.AllWeapons()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	batch := &pgx.Batch{}
	for _, c := range characters {
		batch.Queue(upsertCharacter,
			c.Name, c.Element.String(), c.Rarity, c.Weapon,
			c.BaseHP, c.BaseATK, c.BaseDEF,
			c.AscensionStat.String(), c.AscensionValue,
		)
	}
	for _, w := range weapons {
		batch.Queue(upsertWeapon,
			w.Name, w.Rarity, w.Type, w.BaseATK, w.SubStat.String(), w.SubValue,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("seeding row %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.Info("seeded game data", "characters", len(characters), "weapons", len(weapons))
	return nil
}

// Characters returns stored character names ordered by name.
func (s *Store) Characters(ctx context.Context) ([]string, error) {
	return s.names(ctx, `SELECT name FROM characters ORDER BY name`)
}

// Weapons returns stored weapon names ordered by name.
func (s *Store) Weapons(ctx context.Context) ([]string, error) {
	return s.names(ctx, `SELECT name FROM weapons ORDER BY name`)
}

func (s *Store) names(ctx context.Context, query string) ([]string, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning names: %w", err)
	}
	return names, nil
}

// Character загружает персонажа по точному или нечёткому имени.
func (s *Store) Character(ctx context.Context, name string) (data.Character, error) {
	names, err := s.Characters(ctx)
	if err != nil {
		return data.Character{}, err
	}
	i, err := data.Match(names, name)
	if err != nil {
		return data.Character{}, fmt.Errorf("character: %w", err)
	}

	var (
		c                  data.Character
		element, ascension string
	)
	err = s.pool.QueryRow(ctx,
		`SELECT name, element, rarity, weapon, base_hp, base_atk, base_def, ascension_stat, ascension_value
		 FROM characters WHERE name = $1`, names[i],
	).Scan(&c.Name, &element, &c.Rarity, &c.Weapon, &c.BaseHP, &c.BaseATK, &c.BaseDEF, &ascension, &c.AscensionValue)
	if errors.Is(err, pgx.ErrNoRows) {
		return data.Character{}, fmt.Errorf("character: %w: %q", data.ErrNotFound, name)
	}
	if err != nil {
		return data.Character{}, fmt.Errorf("querying character %q: %w", names[i], err)
	}

	if c.Element, err = model.ParseElement(element); err != nil {
		return data.Character{}, fmt.Errorf("character %q: %w", c.Name, err)
	}
	if c.AscensionStat, err = model.ParseStat(ascension); err != nil {
		return data.Character{}, fmt.Errorf("character %q: %w", c.Name, err)
	}
	return c, nil
}

// Weapon загружает оружие по точному или нечёткому имени.
func (s *Store) Weapon(ctx context.Context, name string) (data.Weapon, error) {
	names, err := s.Weapons(ctx)
	if err != nil {
		return data.Weapon{}, err
	}
	i, err := data.Match(names, name)
	if err != nil {
		return data.Weapon{}, fmt.Errorf("weapon: %w", err)
	}

	var (
		w   data.Weapon
		sub string
	)
	err = s.pool.QueryRow(ctx,
		`SELECT name, rarity, type, base_atk, sub_stat, sub_value FROM weapons WHERE name = $1`, names[i],
	).Scan(&w.Name, &w.Rarity, &w.Type, &w.BaseATK, &sub, &w.SubValue)
	if errors.Is(err, pgx.ErrNoRows) {
		return data.Weapon{}, fmt.Errorf("weapon: %w: %q", data.ErrNotFound, name)
	}
	if err != nil {
		return data.Weapon{}, fmt.Errorf("querying weapon %q: %w", names[i], err)
	}

	if w.SubStat, err = model.ParseStat(sub); err != nil {
		return data.Weapon{}, fmt.Errorf("weapon %q: %w", w.Name, err)
	}
	return w, nil
}

// CharacterBase implements data.StatLookup.
func (s *Store) CharacterBase(ctx context.Context, name string) (*model.StatTable, error) {
	c, err := s.Character(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Stats(), nil
}

// WeaponBase implements data.StatLookup.
func (s *Store) WeaponBase(ctx context.Context, name string) (*model.StatTable, error) {
	w, err := s.Weapon(ctx, name)
	if err != nil {
		return nil, err
	}
	return w.Stats(), nil
}
