package selector

import "strings"

// Kind distinguishes the two selector dialects scanners emit.
type Kind int

const (
	// KindStructural is a jq-like path into a nested document,
	// e.g. ".spec .containers[] .securityContext .runAsUser".
	KindStructural Kind = iota
	// KindLiteral is a verbatim text fragment; the first
	// whitespace-delimited field is the search target.
	KindLiteral
)

// Segment is one normalized step of a structural selector. Order encodes
// nesting depth, outermost first.
type Segment struct {
	Name string
	// Repeatable marks segments that originated from an array-style
	// token such as "containers[]".
	Repeatable bool
	// TopLevel restricts matching to depth 0. Set for the collapsed
	// metadata segment.
	TopLevel bool
}

// Selector is a normalized scanner locator. An empty Selector (no
// segments) means the raw input could not be normalized; callers treat
// it as "not locatable".
type Selector struct {
	Kind     Kind
	Raw      string
	Segments []Segment
}

func (s Selector) Empty() bool { return len(s.Segments) == 0 }

// operators truncate a structural selector: everything after the first
// occurrence is a comparison/filter expression, not a path component.
// Known ambiguity: a path component containing a literal "-" is cut
// short too; kept for compatibility with the emitting scanners.
var operators = []string{"|", "==", "-"}

// Structural normalizes a jq-like path selector. It never fails;
// unparsable input yields an empty Selector.
func Structural(raw string) Selector {
	sel := Selector{Kind: KindStructural, Raw: raw}

	s := strings.TrimPrefix(raw, ".")
	if cut := operatorIndex(s); cut >= 0 {
		s = s[:cut]
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return sel
	}

	for i, tok := range strings.Split(s, ".") {
		if tok == "" {
			continue
		}
		if i == 0 && strings.Contains(tok, "metadata") {
			// The manifest scorer over-qualifies metadata paths;
			// only the top-level key is meaningful for locating it.
			sel.Segments = []Segment{{Name: "metadata", TopLevel: true}}
			return sel
		}
		seg := Segment{Name: tok}
		if strings.HasSuffix(tok, "[]") {
			seg.Name = tok[:len(tok)-2]
			seg.Repeatable = true
		}
		if seg.Name == "" {
			continue
		}
		sel.Segments = append(sel.Segments, seg)
	}
	return sel
}

// Literal normalizes a verbatim fragment selector down to its first
// whitespace-delimited field.
func Literal(raw string) Selector {
	sel := Selector{Kind: KindLiteral, Raw: raw}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return sel
	}
	sel.Segments = []Segment{{Name: fields[0]}}
	return sel
}

func operatorIndex(s string) int {
	cut := -1
	for _, op := range operators {
		if i := strings.Index(s, op); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	return cut
}
