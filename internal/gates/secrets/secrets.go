// Package secrets gates files through a secrets scanner: an external
// binary, a remote scanning API, or a built-in analyzer over Go
// source. Every finding is addressed by a literal fragment selector so
// duplicates in one file resolve to successive occurrences.
package secrets

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gatescan/internal/gates"
	"gatescan/internal/selector"
	"gatescan/internal/toolexec"
)

// maxFileSize bounds what gets handed to a scanner per file.
const maxFileSize = 1 << 20

type Gate struct {
	bin     string
	remote  *Client
	timeout time.Duration
}

// New builds the secrets gate. bin takes precedence over remote; with
// neither set, the built-in Go source analyzer runs.
func New(bin string, remote *Client, timeout time.Duration) *Gate {
	return &Gate{bin: bin, remote: remote, timeout: timeout}
}

func (g *Gate) ID() string { return "secrets" }

func (g *Gate) Doc() string { return "scans files for exposed credentials" }

func (g *Gate) Run(ctx context.Context, target gates.Target) ([]gates.Finding, error) {
	files, err := findFiles(target.Dir)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target.Dir, err)
	}

	var out []gates.Finding
	for _, path := range files {
		var found []gates.Finding
		var err error
		switch {
		case g.bin != "":
			found, err = g.scanWithBinary(ctx, path)
		case g.remote != nil:
			found, err = g.scanWithRemote(ctx, path)
		default:
			found, err = scanGoSource(path)
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		out = append(out, found...)
	}
	return out, nil
}

// scanWithBinary execs the external scanner, which prints one finding
// per line as "<token> <rule-name>" on stdout. Scanners conventionally
// exit non-zero when they find something, so the exit error is ignored
// as long as stdout parses into findings; stderr never reaches the
// parser.
func (g *Gate) scanWithBinary(ctx context.Context, path string) ([]gates.Finding, error) {
	raw, runErr := toolexec.Run(ctx, "", g.timeout, g.bin, path)
	findings := g.parseLines(path, raw)
	if len(findings) == 0 && runErr != nil {
		return nil, runErr
	}
	return findings, nil
}

func (g *Gate) scanWithRemote(ctx context.Context, path string) ([]gates.Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	remote, err := g.remote.Scan(ctx, path, content)
	if err != nil {
		return nil, err
	}
	var out []gates.Finding
	for _, rf := range remote {
		out = append(out, fragmentFinding(path, rf.Token, rf.Rule))
	}
	return out, nil
}

func (g *Gate) parseLines(path, raw string) []gates.Finding {
	var out []gates.Finding
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rule := "secret"
		if len(fields) > 1 {
			rule = fields[1]
		}
		out = append(out, fragmentFinding(path, fields[0], rule))
	}
	return out
}

func fragmentFinding(path, tok, rule string) gates.Finding {
	return gates.Finding{
		Gate:       "secrets",
		Rule:       rule,
		Severity:   gates.SeverityCritical,
		Path:       path,
		Selector:   selector.Literal(tok + " " + rule),
		Message:    fmt.Sprintf("potential %s exposed", rule),
		Suggestion: "move the value to a secret store and rotate it",
	}
}

// scanGoSource applies the built-in credential analyzer heuristics to
// one file. Non-Go files are skipped; unparsable Go is skipped too
// (report, don't throw).
func scanGoSource(path string) ([]gates.Finding, error) {
	if filepath.Ext(path) != ".go" {
		return nil, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, 0)
	if err != nil {
		return nil, nil
	}
	var out []gates.Finding
	ast.Inspect(f, func(n ast.Node) bool {
		for _, m := range credentialsFromNode(n) {
			fd := fragmentFinding(path, m.Value, "hardcoded-credential")
			fd.Message = fmt.Sprintf("possible hardcoded credential bound to %s", m.Name)
			out = append(out, fd)
		}
		return true
	})
	return out, nil
}

func findFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() || info.Size() > maxFileSize {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out, err
}

var _ gates.Gate = (*Gate)(nil)
