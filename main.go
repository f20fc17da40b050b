// Command permafrost shrinks frosts scripts by removing the library methods
// their user code never reaches.
//
// Usage:
//
//	permafrost [options] <script.osts | name.osts | dir>
//
// A bare file name that does not exist relative to the working directory is
// looked up in the working directory, ~/Documents and ~/Downloads.
//
// Config file:
//
//	permafrost looks for permafrost.json, .permafrostrc or permafrost.yaml
//	next to the script and in its parent directories.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/frosts/permafrost/analyzer"
	"github.com/frosts/permafrost/compile"
	"github.com/frosts/permafrost/config"
	"github.com/frosts/permafrost/osts"
)

func main() {
	failed, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run() (int, error) {
	var (
		repoPath   = flag.String("path", "", "Script or directory to shrink (alternative to the argument)")
		output     = flag.String("o", "", "Write output to `file` (\"-\" for stdout)")
		body       = flag.Bool("body", false, "Write .osts results as plain source")
		suffix     = flag.String("suffix", analyzer.DefaultSuffix, "Suffix inserted before the output extension")
		configFile = flag.String("config", "", "Use specific config `file`")
		noConfig   = flag.Bool("no-config", false, "Ignore config files")
		check      = flag.Bool("check", false, "Verify the output with a tree-sitter grammar")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	target := *repoPath
	if flag.NArg() > 0 {
		target = flag.Arg(0)
	}
	if target == "" {
		flag.Usage()
		return 0, errors.New("no script given")
	}

	target, err := resolveTarget(target)
	if err != nil {
		return 0, err
	}

	dialect, err := loadDialect(target, *configFile, *noConfig, logger)
	if err != nil {
		return 0, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shrinker := analyzer.New(analyzer.Options{
		Dialect: dialect,
		Logger:  logger,
		Output:  *output,
		Suffix:  *suffix,
		Body:    *body,
		Check:   *check,
		Stdout:  os.Stdout,
	})

	reports, err := shrinker.ShrinkPath(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("shrinking failed: %w", err)
	}

	// Keep stdout clean for the script itself.
	display := os.Stdout
	if *output == "-" {
		display = os.Stderr
	}
	return analyzer.DisplayReports(display, reports, *verbose), nil
}

// resolveTarget returns target when it exists, otherwise the single script
// of that name in the usual folders
func resolveTarget(target string) (string, error) {
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}
	if strings.ContainsRune(target, filepath.Separator) {
		return "", fmt.Errorf("%s does not exist", target)
	}

	matches := osts.FindFiles(target)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no file named %s in %s (names are case-sensitive)",
			target, strings.Join(osts.SearchDirs(), ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s is ambiguous, pass one of:\n  %s",
			target, strings.Join(matches, "\n  "))
	}
}

func loadDialect(target, configFile string, noConfig bool, logger *slog.Logger) (compile.Dialect, error) {
	dialect := compile.DefaultDialect()
	if noConfig {
		return dialect, nil
	}

	var (
		cfg        *config.Config
		configPath string
		err        error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return dialect, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
		configPath = configFile
	} else {
		startDir := target
		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			startDir = filepath.Dir(target)
		}
		cfg, configPath, err = config.Load(startDir)
		if err != nil {
			return dialect, fmt.Errorf("loading config: %w", err)
		}
	}

	if cfg != nil {
		logger.Debug("using config", "path", configPath)
	}
	return cfg.Apply(dialect), nil
}
