// Package scorecard gates Kubernetes manifests through an external
// scoring tool and maps failing checks to structural selectors.
package scorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gatescan/internal/gates"
	"gatescan/internal/selector"
	"gatescan/internal/toolexec"
)

type Gate struct {
	bin       string
	threshold int
	timeout   time.Duration
}

func New(bin string, threshold int, timeout time.Duration) *Gate {
	return &Gate{bin: bin, threshold: threshold, timeout: timeout}
}

func (g *Gate) ID() string { return "scorecard" }

func (g *Gate) Doc() string {
	return "scores Kubernetes manifests against configuration best practices"
}

func (g *Gate) Run(ctx context.Context, target gates.Target) ([]gates.Finding, error) {
	if !toolexec.Available(g.bin) {
		return nil, fmt.Errorf("scorer binary %q not found on PATH", g.bin)
	}
	manifests, err := findManifests(target.Dir)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target.Dir, err)
	}

	var out []gates.Finding
	for _, path := range manifests {
		// The scorer exits non-zero when checks fail; its output is
		// still the report, so the error only matters if the output
		// does not parse.
		raw, runErr := toolexec.Run(ctx, "", g.timeout, g.bin, "--output-format", "json", path)
		reports, parseErr := parseReports([]byte(raw))
		if parseErr != nil {
			if runErr != nil {
				return nil, fmt.Errorf("score %s: %w", path, runErr)
			}
			return nil, fmt.Errorf("score %s: %w", path, parseErr)
		}
		objects := manifestObjects(path)
		out = append(out, g.findings(path, reports, objects)...)
	}
	return out, nil
}

func (g *Gate) findings(path string, reports []report, objects []objectRef) []gates.Finding {
	var out []gates.Finding
	for _, rep := range reports {
		subject := objectLabel(rep, objects)
		for _, chk := range rep.Checks {
			if chk.Grade >= g.threshold {
				continue
			}
			sev := gates.SeverityWarning
			if chk.Grade <= 1 {
				sev = gates.SeverityCritical
			}
			msg := chk.Comment
			if subject != "" {
				msg = subject + ": " + msg
			}
			out = append(out, gates.Finding{
				Gate:       "scorecard",
				Rule:       chk.ID,
				Severity:   sev,
				Path:       path,
				Selector:   selector.Structural(chk.Path),
				Message:    msg,
				Suggestion: chk.Suggestion,
			})
		}
	}
	return out
}

// objectLabel cross-checks the scorer's object reference against the
// documents actually present in the manifest before trusting it.
func objectLabel(rep report, objects []objectRef) string {
	for _, obj := range objects {
		if obj.Kind == rep.Object.Kind && obj.Name == rep.Object.Name {
			return obj.Kind + "/" + obj.Name
		}
	}
	if rep.Object.Kind != "" {
		return rep.Object.Kind
	}
	return ""
}

func findManifests(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

type report struct {
	Object struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	} `json:"object"`
	Checks []check `json:"checks"`
}

type check struct {
	ID         string `json:"id"`
	Grade      int    `json:"grade"`
	Comment    string `json:"comment"`
	Suggestion string `json:"suggestion"`
	// Path is the structural selector of the offending field, in the
	// scorer's jq-like dialect.
	Path string `json:"path"`
}

func parseReports(raw []byte) ([]report, error) {
	var out []report
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse scorer output: %w", err)
	}
	return out, nil
}

var _ gates.Gate = (*Gate)(nil)

// manifestObjects enumerates kind/name of every document in a
// (possibly multi-document) manifest file. Decode failures yield an
// empty list; attribution is best-effort.
func manifestObjects(path string) []objectRef {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return decodeObjects(data)
}
