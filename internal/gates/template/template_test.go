package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gatescan/internal/gates"
	"gatescan/internal/selector"
)

func writeChart(t *testing.T, values, tpl string) string {
	t.Helper()
	dir := t.TempDir()
	if values != "" {
		if err := os.WriteFile(filepath.Join(dir, "values.yaml"), []byte(values), 0o644); err != nil {
			t.Fatalf("write values: %v", err)
		}
	}
	tplDir := filepath.Join(dir, "templates")
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tplDir, "deploy.yaml"), []byte(tpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return dir
}

func TestRun_UndefinedReferenceFlagged(t *testing.T) {
	dir := writeChart(t,
		"image:\n  repository: nginx\n",
		"image: {{ .Values.image.repository }}:{{ .Values.image.tag }}\n",
	)
	g := New()
	findings, err := g.Run(context.Background(), gates.Target{Dir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(findings), findings)
	}
	f := findings[0]
	if f.Rule != "undefined-value" {
		t.Fatalf("unexpected rule: %q", f.Rule)
	}
	if f.Selector.Kind != selector.KindLiteral || f.Selector.Segments[0].Name != ".Values.image.tag" {
		t.Fatalf("finding should point back at the reference text, got %+v", f.Selector)
	}
}

func TestRun_AllReferencesDefined(t *testing.T) {
	dir := writeChart(t,
		"replicas: 2\nimage:\n  repository: nginx\n",
		"replicas: {{ .Values.replicas }}\nimage: {{ .Values.image.repository }}\n",
	)
	g := New()
	findings, err := g.Run(context.Background(), gates.Target{Dir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %+v", findings)
	}
}

func TestRun_MissingValuesFile(t *testing.T) {
	dir := writeChart(t, "", "name: {{ .Values.appName }}\n")
	g := New()
	findings, err := g.Run(context.Background(), gates.Target{Dir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Message != ".Values.appName cannot be verified: values.yaml is missing or empty" {
		t.Fatalf("unexpected message: %q", findings[0].Message)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	dir := writeChart(t,
		"image:\n  repository: nginx\n",
		"image: {{ .Values.image.repository }}\n",
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := New()
	if _, err := g.Run(ctx, gates.Target{Dir: dir}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestRun_RepeatedReferenceFlaggedPerOccurrence(t *testing.T) {
	dir := writeChart(t,
		"image:\n  repository: nginx\n",
		"a: {{ .Values.missing }}\nb: {{ .Values.missing }}\n",
	)
	g := New()
	findings, err := g.Run(context.Background(), gates.Target{Dir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected one finding per occurrence, got %d", len(findings))
	}
}
