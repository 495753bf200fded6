// Package runner resolves gate findings to concrete document
// locations. Findings for one file are resolved strictly in order,
// threading the remaining buffer forward so duplicate selectors land
// on successive occurrences.
package runner

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"gatescan/internal/gates"
	"gatescan/internal/locate"
)

// Resolved is a finding with its selector resolved against the
// document text. Line is the absolute zero-based line index or
// locate.NotFound; Depth is the structural nesting level used to
// position the editor highlight.
type Resolved struct {
	gates.Finding
	ID    string `json:"id"`
	Line  int    `json:"line"`
	Depth int    `json:"depth"`
}

// ReadFileFunc loads one file's full text. Line splitting happens in
// the resolver; the reader normalizes line endings.
type ReadFileFunc func(path string) (string, error)

// ReadFile is the default ReadFileFunc.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// Resolve maps every finding to a location. Each file is loaded once;
// its findings consume the buffer sequentially. Unreadable files and
// empty selectors resolve to locate.NotFound rather than failing the
// run.
func Resolve(findings []gates.Finding, read ReadFileFunc) []Resolved {
	docs := map[string]*locate.Document{}
	unreadable := map[string]bool{}

	out := make([]Resolved, 0, len(findings))
	for _, f := range findings {
		r := Resolved{Finding: f, ID: uuid.NewString(), Line: locate.NotFound}
		doc := docFor(f.Path, docs, unreadable, read)
		if doc != nil {
			res := locate.Locate(*doc, f.Selector)
			*doc = res.Remaining
			r.Line = res.Line
			r.Depth = res.Depth
		}
		out = append(out, r)
	}
	return out
}

func docFor(path string, docs map[string]*locate.Document, unreadable map[string]bool, read ReadFileFunc) *locate.Document {
	if unreadable[path] {
		return nil
	}
	if doc, ok := docs[path]; ok {
		return doc
	}
	text, err := read(path)
	if err != nil {
		unreadable[path] = true
		return nil
	}
	doc := locate.NewDocument(text)
	docs[path] = &doc
	return &doc
}
