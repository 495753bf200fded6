// Package template gates Helm-style chart templates: every
// ".Values.*" reference must resolve to a key in the chart's
// values.yaml. The check itself runs through the hierarchy locator, so
// "defined" means exactly "locatable by the editor".
package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gatescan/internal/gates"
	"gatescan/internal/locate"
	"gatescan/internal/selector"
)

var valuesRef = regexp.MustCompile(`\.Values(?:\.[A-Za-z0-9_]+)+`)

type Gate struct{}

func New() *Gate { return &Gate{} }

func (g *Gate) ID() string { return "template" }

func (g *Gate) Doc() string {
	return "verifies template value references against the chart's values file"
}

func (g *Gate) Run(ctx context.Context, target gates.Target) ([]gates.Finding, error) {
	templates, err := findTemplates(target.Dir)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target.Dir, err)
	}

	values := map[string]locate.Document{}
	var out []gates.Finding
	for _, path := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		root := chartRoot(path)
		doc, ok := values[root]
		if !ok {
			doc = loadValues(root)
			values[root] = doc
		}
		out = append(out, g.checkFile(path, string(data), doc)...)
	}
	return out, nil
}

// checkFile flags every occurrence of an unresolvable reference. The
// finding's selector is the reference text itself, so the editor jumps
// to the offending template line, and repeated references resolve to
// successive occurrences.
func (g *Gate) checkFile(path, content string, values locate.Document) []gates.Finding {
	var out []gates.Finding
	for _, ref := range valuesRef.FindAllString(content, -1) {
		valuePath := strings.TrimPrefix(ref, ".Values")
		res := locate.Locate(values, selector.Structural(valuePath))
		if res.Line != locate.NotFound {
			continue
		}
		msg := fmt.Sprintf("%s is not defined in values.yaml", ref)
		if values.Empty() {
			msg = fmt.Sprintf("%s cannot be verified: values.yaml is missing or empty", ref)
		}
		out = append(out, gates.Finding{
			Gate:       "template",
			Rule:       "undefined-value",
			Severity:   gates.SeverityWarning,
			Path:       path,
			Selector:   selector.Literal(ref),
			Message:    msg,
			Suggestion: "define the key in values.yaml or drop the reference",
		})
	}
	return out
}

// chartRoot is the directory holding values.yaml: the parent of the
// templates directory when the file lives under one, otherwise the
// file's own directory.
func chartRoot(path string) string {
	dir := filepath.Dir(path)
	d := dir
	for {
		if filepath.Base(d) == "templates" {
			return filepath.Dir(d)
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}

func loadValues(root string) locate.Document {
	data, err := os.ReadFile(filepath.Join(root, "values.yaml"))
	if err != nil {
		return locate.Document{}
	}
	return locate.NewDocument(strings.ReplaceAll(string(data), "\r\n", "\n"))
}

func findTemplates(dir string) ([]string, error) {
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
		ext := strings.ToLower(filepath.Ext(path))
		inTemplates := filepath.Base(filepath.Dir(path)) == "templates"
		if ext == ".tpl" || (inTemplates && (ext == ".yaml" || ext == ".yml")) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

var _ gates.Gate = (*Gate)(nil)
