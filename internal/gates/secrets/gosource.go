package secrets

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerHardcodedCred flags string literals bound to
// credential-named identifiers in Go source. Heuristic: the bind
// target's name looks like a secret and the literal looks like a real
// value rather than a placeholder.
var AnalyzerHardcodedCred = &analysis.Analyzer{
	Name:     "hardcodedcred",
	Doc:      "flags string literals bound to credential-named identifiers",
	Run:      runHardcodedCred,
	Requires: []*analysis.Analyzer{insppass.Analyzer},
}

func runHardcodedCred(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[insppass.Analyzer].(*inspector.Inspector)

	nodes := []ast.Node{(*ast.AssignStmt)(nil), (*ast.ValueSpec)(nil), (*ast.KeyValueExpr)(nil)}
	insp.Nodes(nodes, func(n ast.Node, push bool) bool {
		if !push {
			return true
		}
		for _, m := range credentialsFromNode(n) {
			pass.Reportf(m.Pos, "possible hardcoded credential bound to %s", m.Name)
		}
		return true
	})

	return nil, nil
}

// Match is one credential-looking literal found in Go source.
type Match struct {
	Name  string
	Value string
	Pos   token.Pos
}

func credentialsFromNode(n ast.Node) []Match {
	var out []Match
	switch x := n.(type) {
	case *ast.AssignStmt:
		for i, lhs := range x.Lhs {
			if i >= len(x.Rhs) {
				break
			}
			if m, ok := matchBinding(lhs, x.Rhs[i]); ok {
				out = append(out, m)
			}
		}
	case *ast.ValueSpec:
		for i, name := range x.Names {
			if i >= len(x.Values) {
				break
			}
			if m, ok := matchBinding(name, x.Values[i]); ok {
				out = append(out, m)
			}
		}
	case *ast.KeyValueExpr:
		if m, ok := matchBinding(x.Key, x.Value); ok {
			out = append(out, m)
		}
	}
	return out
}

func matchBinding(target, value ast.Expr) (Match, bool) {
	id := bindIdent(target)
	if id == nil || !credentialName(id.Name) {
		return Match{}, false
	}
	lit, ok := value.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return Match{}, false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil || !plausibleValue(s) {
		return Match{}, false
	}
	return Match{Name: id.Name, Value: s, Pos: lit.Pos()}, true
}

// bindIdent returns the identifier a bind target resolves to, handling
// both plain identifiers and selector expressions. Returns nil if
// unresolved.
func bindIdent(expr ast.Expr) *ast.Ident {
	switch x := expr.(type) {
	case *ast.Ident:
		return x
	case *ast.SelectorExpr:
		if x.Sel != nil {
			return x.Sel
		}
	}
	return nil
}

var credentialWords = []string{
	"password", "passwd", "secret", "token", "apikey", "api_key",
	"credential", "accesskey", "access_key", "privatekey", "private_key",
}

func credentialName(name string) bool {
	l := strings.ToLower(name)
	for _, w := range credentialWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

var placeholderWords = []string{
	"example", "changeme", "change-me", "placeholder", "dummy", "xxx",
	"todo", "<", "${", "%s",
}

func plausibleValue(s string) bool {
	if len(s) < 8 || strings.ContainsAny(s, " \t\n") {
		return false
	}
	l := strings.ToLower(s)
	for _, w := range placeholderWords {
		if strings.Contains(l, w) {
			return false
		}
	}
	return true
}
