package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gatescan/internal/config"
	"gatescan/internal/gates"
	"gatescan/internal/gates/runner"
	"gatescan/internal/locate"
)

// Run executes the enabled gates over the target directory, resolves
// every finding to a document location, and reports. It returns the
// number of findings so the caller can map it to an exit code.
func Run(ctx context.Context, args []string) (int, error) {
	fs := flag.NewFlagSet("gatescan", flag.ExitOnError)
	target := fs.String("target", ".", "Directory to scan")
	include := fs.String("gates", "", "Comma-separated gate ids to run (default: all)")
	disable := fs.String("disable", "", "Comma-separated gate ids to skip")
	jsonOut := fs.Bool("json", false, "Emit resolved findings as JSON on stdout")
	debug := fs.Bool("debug", false, "Enable debug logging across the app")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	// Configure application-wide logger via slog
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *target == "" {
		return 0, errors.New("target must not be empty")
	}
	if _, err := os.Stat(*target); err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}

	cfg := config.Load()
	enabled := buildGates(*include, *disable, cfg)
	if len(enabled) == 0 {
		return 0, errors.New("no gates enabled")
	}

	slog.Info("🔎 Scanning target", "dir", *target, "gates", len(enabled))

	var all []gates.Finding
	for _, g := range enabled {
		slog.Debug("▶️  Running gate", "gate", g.ID(), "doc", g.Doc())
		found, err := g.Run(ctx, gates.Target{Dir: *target})
		if err != nil {
			slog.Error("❌ Gate failed", "gate", g.ID(), "error", err)
			continue
		}
		slog.Info("✅ Gate finished", "gate", g.ID(), "findings", len(found))
		all = append(all, found...)
	}

	resolved := runner.Resolve(all, runner.ReadFile)

	if *jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(resolved); err != nil {
			return len(resolved), fmt.Errorf("encode findings: %w", err)
		}
		return len(resolved), nil
	}

	gateCounts := map[string]int{}
	ruleCounts := map[string]int{}
	for _, f := range resolved {
		if f.Line == locate.NotFound {
			slog.Warn("⚠️  Finding (selector not found in document)",
				"gate", f.Gate,
				"rule", f.Rule,
				"severity", f.Severity,
				"file", f.Path,
				"selector", f.Selector.Raw,
				"message", f.Message,
			)
		} else {
			slog.Warn("⚠️  Finding",
				"gate", f.Gate,
				"rule", f.Rule,
				"severity", f.Severity,
				"file", f.Path,
				"line", f.Line,
				"depth", f.Depth,
				"message", f.Message,
				"suggestion", f.Suggestion,
			)
		}
		gateCounts[f.Gate]++
		ruleCounts[f.Rule]++
	}
	slog.Info("📊 Scan summary", "findings", len(resolved), "by_gate", gateCounts, "by_rule", ruleCounts)
	return len(resolved), nil
}
