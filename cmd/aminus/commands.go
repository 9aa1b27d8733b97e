package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

type command struct {
	name string
	desc string
	run  func(ctx context.Context, a *app, args []string) error
}

var commands []command

func registerCommand(name, desc string, fn func(ctx context.Context, a *app, args []string) error) {
	commands = append(commands, command{name: name, desc: desc, run: fn})
}

func init() {
	registerCommand("damage", "Rotation damage with KQM 5★ artifacts", runDamage)
	registerCommand("gradients", "Marginal damage per substat roll", runGradients)
	registerCommand("mains", "Best sands/goblet/circlet main stats", runMains)
	registerCommand("substats", "Greedy substat roll allocation", runSubstats)
	registerCommand("energy", "Burst energy and required energy recharge", runEnergy)
	registerCommand("list", "Characters and weapons in the bundled data", runList)
	registerCommand("seed", "Migrate PostgreSQL and load the bundled data", runSeed)
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aminus [-config path] <command> [flags]")
	fmt.Fprintln(w)
	printList(w)
}

func printList(w io.Writer) {
	sorted := make([]command, len(commands))
	copy(sorted, commands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	fmt.Fprintln(w, "Commands:")
	for _, c := range sorted {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.desc)
	}
	fmt.Fprintln(w, "\nRun 'aminus <command> -h' for command flags.")
}

func listFlag(values []string) string {
	return strings.Join(values, ", ")
}
