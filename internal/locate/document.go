package locate

import "strings"

// Document is an ordered, immutable view over a source file's lines.
// The full line slice is always retained; a remaining buffer produced
// by Locate only advances the start cursor. That keeps line numbers
// absolute and lets depth computation see every ancestor line even
// after a prefix has been consumed.
type Document struct {
	lines []string
	start int
}

// NewDocument splits text on "\n" and trims a single trailing empty
// line. Callers normalize "\r\n" before invocation.
func NewDocument(text string) Document {
	if text == "" {
		return Document{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return Document{lines: lines}
}

// FromLines wraps an existing line slice. The slice is not copied;
// callers must not mutate it afterwards.
func FromLines(lines []string) Document {
	return Document{lines: lines}
}

// Len is the number of lines still visible in this view.
func (d Document) Len() int { return len(d.lines) - d.start }

func (d Document) Empty() bool { return d.start >= len(d.lines) }

// Offset is the absolute index of this view's first line in the
// original document. Zero for a freshly created Document.
func (d Document) Offset() int { return d.start }

// Line returns the line at index i relative to this view's start.
func (d Document) Line(i int) string { return d.lines[d.start+i] }
