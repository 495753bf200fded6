package secrets

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

func runAnalyzerOnSrc(t *testing.T, src string) []analysis.Diagnostic {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	files := []*ast.File{f}
	var diags []analysis.Diagnostic
	pass := &analysis.Pass{
		Analyzer: AnalyzerHardcodedCred,
		Fset:     fset,
		Files:    files,
		Report:   func(d analysis.Diagnostic) { diags = append(diags, d) },
		ResultOf: map[*analysis.Analyzer]interface{}{insppass.Analyzer: inspector.New(files)},
	}
	if _, err := AnalyzerHardcodedCred.Run(pass); err != nil {
		t.Fatalf("run: %v", err)
	}
	return diags
}

func TestHardcodedCred_Assignment_Flagged(t *testing.T) {
	src := `package a
func f() {
	apiKey := "sk-live-abcdef123456"
	_ = apiKey
}`
	if diags := runAnalyzerOnSrc(t, src); len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestHardcodedCred_ConstAndStructField_Flagged(t *testing.T) {
	src := `package a
const dbPassword = "hunter2hunter2"
type cfg struct{ Token string }
var c = cfg{Token: "ghp_abcdefgh12345678"}`
	if diags := runAnalyzerOnSrc(t, src); len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
}

func TestHardcodedCred_SelectorTarget_Flagged(t *testing.T) {
	src := `package a
type cfg struct{ Secret string }
func f(c *cfg) { c.Secret = "9f8e7d6c5b4a3210" }`
	if diags := runAnalyzerOnSrc(t, src); len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestHardcodedCred_Placeholder_NotFlagged(t *testing.T) {
	src := `package a
var password = "changeme-please"
var apiKey = "${API_KEY}12345"
var secret = "example-secret-value"`
	if diags := runAnalyzerOnSrc(t, src); len(diags) != 0 {
		t.Fatalf("did not expect diagnostics for placeholders, got %d", len(diags))
	}
}

func TestHardcodedCred_ShortOrUnrelated_NotFlagged(t *testing.T) {
	src := `package a
var password = "short"
var hostname = "db.internal.example.test"`
	if diags := runAnalyzerOnSrc(t, src); len(diags) != 0 {
		t.Fatalf("did not expect diagnostics, got %d", len(diags))
	}
}
