// aminus computes character damage from game data and searches artifact
// main stats and substat rolls that maximize a rotation.
//
// Usage:
//
//	aminus [-config path] <command> [flags]
//	aminus damage -character diluc -weapon "blazing suns" -rotation diluc.yaml
//	aminus substats -character raiden -weapon catch -rotation raiden.yaml -er 2.5
//	aminus --list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/aminus/internal/config"
)

const defaultConfigPath = "config/aminus.yaml"

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			slog.Error("fatal", "err", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("aminus", flag.ContinueOnError)
	global.SetOutput(stderr)
	cfgPath := global.String("config", defaultConfigPath, "path to YAML config")
	list := global.Bool("list", false, "list available commands")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if *list {
		printList(stdout)
		return nil
	}
	if global.NArg() == 0 {
		printUsage(stderr)
		return errUsage
	}

	path := *cfgPath
	if p := os.Getenv("AMINUS_CONFIG"); p != "" && path == defaultConfigPath {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		printUsage(stderr)
		return errUsage
	}

	a := newApp(cfg, stdout)
	defer a.close()

	if err := cmd.run(ctx, a, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	return nil
}
