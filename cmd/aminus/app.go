package main

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/config"
	"github.com/udisondev/aminus/internal/data"
	"github.com/udisondev/aminus/internal/db"
	"github.com/udisondev/aminus/internal/model"
)

// app carries what every command shares: config, output and data sources.
type app struct {
	cfg     config.Config
	out     *message.Printer
	w       io.Writer
	catalog *data.Catalog
	closers []func()
}

func newApp(cfg config.Config, w io.Writer) *app {
	return &app{cfg: cfg, w: w, out: message.NewPrinter(language.English)}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) printf(format string, args ...any) {
	a.out.Fprintf(a.w, format, args...)
}

// embedded returns the bundled catalog. Artifact values always come from it.
func (a *app) embedded() (*data.Catalog, error) {
	if a.catalog == nil {
		c, err := data.Load()
		if err != nil {
			return nil, fmt.Errorf("loading game data: %w", err)
		}
		a.catalog = c
	}
	return a.catalog, nil
}

func (a *app) artifactValues() (artifact.Values, error) {
	return a.embedded()
}

// lookup opens the base stat source selected by config.
func (a *app) lookup(ctx context.Context) (data.StatLookup, error) {
	switch a.cfg.Source {
	case config.SourceRemote:
		return data.NewRemoteSource(a.cfg.Remote.BaseURL, a.cfg.Remote.Timeout), nil
	case config.SourcePostgres:
		conn, err := db.New(ctx, a.cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return conn.Store(), nil
	default:
		return a.embedded()
	}
}

// baseStats resolves character and weapon concurrently and sums them.
func (a *app) baseStats(ctx context.Context, character, weapon string) (*model.StatTable, error) {
	src, err := a.lookup(ctx)
	if err != nil {
		return nil, err
	}
	if rs, ok := src.(*data.RemoteSource); ok {
		if err := rs.Prefetch(ctx); err != nil {
			return nil, err
		}
	}

	var charStats, weaponStats *model.StatTable
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		charStats, err = src.CharacterBase(gctx, character)
		return err
	})
	g.Go(func() error {
		if weapon == "" {
			weaponStats = model.NewStatTable()
			return nil
		}
		var err error
		weaponStats, err = src.WeaponBase(gctx, weapon)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return model.Sum(charStats, weaponStats), nil
}
