package app

import (
	"strings"

	"gatescan/internal/config"
	"gatescan/internal/gates"
	"gatescan/internal/gates/scorecard"
	"gatescan/internal/gates/secrets"
	tmpl "gatescan/internal/gates/template"
)

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		out = append(out, t)
	}
	return out
}

// buildGates builds the list of gates to run based on include/disable
// flags. If includeCSV is non-empty, only those gates are enabled.
// Otherwise, all known gates are enabled except those explicitly
// disabled via disableCSV.
func buildGates(includeCSV, disableCSV string, cfg config.Config) []gates.Gate {
	var remote *secrets.Client
	if cfg.SecretsURL != "" {
		remote = secrets.NewClient(cfg.SecretsURL, cfg.SecretsAPIKey)
	}
	catalog := []gates.Gate{
		scorecard.New(cfg.ScorerBin, cfg.ScorerGradeThreshold, cfg.ToolTimeout),
		secrets.New(cfg.SecretsBin, remote, cfg.ToolTimeout),
		tmpl.New(),
	}

	if strings.TrimSpace(includeCSV) != "" {
		want := map[string]struct{}{}
		for _, id := range splitAndTrim(includeCSV) {
			if id != "" {
				want[id] = struct{}{}
			}
		}
		var out []gates.Gate
		for _, g := range catalog {
			if _, ok := want[g.ID()]; ok {
				out = append(out, g)
			}
		}
		return out
	}

	disabled := map[string]struct{}{}
	for _, id := range splitAndTrim(disableCSV) {
		if id != "" {
			disabled[id] = struct{}{}
		}
	}
	var out []gates.Gate
	for _, g := range catalog {
		if _, off := disabled[g.ID()]; off {
			continue
		}
		out = append(out, g)
	}
	return out
}
