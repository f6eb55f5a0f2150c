// Package config loads the optional vdom.yaml that tunes the vdom CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up in a project.
const FileName = "vdom.yaml"

// Output formats.
const (
	FormatHTML = "html"
	FormatTree = "tree"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults applied by Resolve.
var (
	DefaultBenchSizes      = []int{10, 100, 1000}
	DefaultBenchIterations = 100
)

// Config represents the optional vdom.yaml configuration.
type Config struct {
	Output  OutputConfig `yaml:"output"`
	Bench   BenchConfig  `yaml:"bench"`
	Verbose bool         `yaml:"verbose,omitempty"`
}

// OutputConfig controls how rendered trees are printed.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

// BenchConfig controls the bench command.
type BenchConfig struct {
	Sizes      []int `yaml:"sizes,omitempty"`
	Iterations int   `yaml:"iterations,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string
	ModulePath      string // empty outside a Go module
	Project         string
	Format          string
	Color           bool
	BenchSizes      []int
	BenchIterations int
	Verbose         bool
}

// LoadOptional reads vdom.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads vdom.yaml (if present) from dir and resolves defaults.
// Colour auto-detection looks at out.
func Resolve(dir string, out *os.File) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	switch format {
	case "":
		format = FormatHTML
	case FormatHTML, FormatTree:
	default:
		return nil, fmt.Errorf("output.format: unknown format %q (want %s or %s)", cfg.Output.Format, FormatHTML, FormatTree)
	}

	var fd uintptr
	if out != nil {
		fd = out.Fd()
	}
	color, err := ResolveColor(cfg.Output.Color, fd)
	if err != nil {
		return nil, err
	}

	sizes := cfg.Bench.Sizes
	if len(sizes) == 0 {
		sizes = DefaultBenchSizes
	}
	for _, n := range sizes {
		if n <= 0 {
			return nil, fmt.Errorf("bench.sizes: size must be positive, got %d", n)
		}
	}
	iterations := cfg.Bench.Iterations
	if iterations <= 0 {
		iterations = DefaultBenchIterations
	}

	return &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		Project:         projectName(modulePath, dir),
		Format:          format,
		Color:           color,
		BenchSizes:      append([]int(nil), sizes...),
		BenchIterations: iterations,
		Verbose:         cfg.Verbose,
	}, nil
}

// ResolveColor turns a colour mode into a decision. Auto enables colour when
// fd is a terminal.
func ResolveColor(mode string, fd uintptr) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto:
		if fd == 0 {
			return false, nil
		}
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	default:
		return false, fmt.Errorf("output.color: unknown mode %q (want %s, %s or %s)", mode, ColorAuto, ColorAlways, ColorNever)
	}
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding vdom.yaml or go.mod. It returns the current directory
// when neither is found.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	return modfile.ModulePath(data), nil
}

func projectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "vdom"
	}
	return base
}
