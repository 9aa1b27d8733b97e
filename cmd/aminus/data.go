package main

import (
	"context"
	"flag"

	"github.com/udisondev/aminus/internal/db"
)

func runList(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.embedded()
	if err != nil {
		return err
	}
	a.printf("characters: %s\n", listFlag(c.Characters()))
	a.printf("weapons:    %s\n", listFlag(c.Weapons()))
	return nil
}

func runSeed(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	dsn := fs.String("dsn", a.cfg.Database.DSN(), "PostgreSQL DSN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := db.RunMigrations(ctx, *dsn); err != nil {
		return err
	}
	conn, err := db.New(ctx, *dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := a.embedded()
	if err != nil {
		return err
	}
	if err := conn.Store().Seed(ctx, c); err != nil {
		return err
	}
	a.printf("seeded %d characters and %d weapons\n", len(c.Characters()), len(c.Weapons()))
	return nil
}
