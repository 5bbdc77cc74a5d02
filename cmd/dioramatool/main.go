// dioramatool is a CLI utility for generating and inspecting dioramas
// without a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/diorama/internal/config"
	"github.com/Faultbox/diorama/pkg/diorama"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	switch command {
	case "dump":
		return cmdDump(rest, stdout, stderr)
	case "stats":
		return cmdStats(rest, stdout, stderr)
	case "validate", "check":
		return cmdValidate(rest, stdout, stderr)
	case "config":
		return cmdConfig(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `dioramatool - riverside diorama utility

Usage:
  dioramatool <command> [options]

Commands:
  dump      Print the generated scene as JSON or YAML
  stats     Show element counts and bounds
  validate  Check the scene invariants (exit 2 on issues)
  config    Print the effective configuration

Common options:
  -config <file>  Config file (defaults when omitted)
  -seed <n>       Scene seed (0 uses the configured seed)

Examples:
  dioramatool dump -seed 42 -format yaml
  dioramatool dump -category rock
  dioramatool stats -config diorama.yaml
  dioramatool validate -seed 7`)
}

// sceneFlags registers the options every scene command shares.
type sceneFlags struct {
	config *string
	seed   *uint64
}

func newSceneFlags(fs *flag.FlagSet) sceneFlags {
	return sceneFlags{
		config: fs.String("config", "", "Config file"),
		seed:   fs.Uint64("seed", 0, "Scene seed (0 uses the configured seed)"),
	}
}

func (f sceneFlags) build() (*diorama.Scene, error) {
	cfg, err := config.LoadFile(*f.config)
	if err != nil {
		return nil, err
	}
	seed := cfg.Scene.Seed
	if *f.seed != 0 {
		seed = *f.seed
	}
	return diorama.Build(cfg.Scene.Layout, seed)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func cmdDump(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("dump", stderr)
	sf := newSceneFlags(fs)
	format := fs.String("format", "json", "Output format: json or yaml")
	category := fs.String("category", "", "Only print elements of this category")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	scene, err := sf.build()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var out any = scene.Snapshot()
	if *category != "" {
		c := diorama.Category(*category)
		if !knownCategory(c) {
			fmt.Fprintf(stderr, "Unknown category: %s\n", *category)
			return 1
		}
		out = scene.ByCategory(c)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		err = enc.Encode(out)
		if err == nil {
			err = enc.Close()
		}
	default:
		fmt.Fprintf(stderr, "Unknown format: %s\n", *format)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

func knownCategory(c diorama.Category) bool {
	for _, k := range diorama.Categories {
		if k == c {
			return true
		}
	}
	return false
}

func cmdStats(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("stats", stderr)
	sf := newSceneFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	scene, err := sf.build()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	meta := scene.Metadata()
	fmt.Fprintf(stdout, "Seed:     %d\n", meta.Seed)
	fmt.Fprintf(stdout, "Elements: %d\n", scene.Len())
	fmt.Fprintf(stdout, "Bounds:   (%.1f, %.1f, %.1f) - (%.1f, %.1f, %.1f)\n",
		meta.Bounds.Min.X, meta.Bounds.Min.Y, meta.Bounds.Min.Z,
		meta.Bounds.Max.X, meta.Bounds.Max.Y, meta.Bounds.Max.Z)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Elements by category:")

	// Sort by count
	type catStat struct {
		cat   diorama.Category
		count int
	}
	var stats []catStat
	for c, n := range scene.Counts() {
		stats = append(stats, catStat{c, n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].cat < stats[j].cat
	})

	for _, s := range stats {
		fmt.Fprintf(stdout, "  %-13s %d\n", s.cat, s.count)
	}
	return 0
}

func cmdValidate(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	sf := newSceneFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	scene, err := sf.build()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	issues := scene.Validate()
	if len(issues) == 0 {
		fmt.Fprintf(stdout, "OK: %d elements, seed %d\n", scene.Len(), scene.Metadata().Seed)
		return 0
	}
	for _, is := range issues {
		fmt.Fprintln(stdout, is.Error())
	}
	fmt.Fprintf(stderr, "\n(%d issues found)\n", len(issues))
	return 2
}

func cmdConfig(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("config", stderr)
	path := fs.String("config", "", "Config file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, _ = stdout.Write(data)
	return 0
}
