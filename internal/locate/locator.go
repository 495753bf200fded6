// Package locate resolves normalized selectors against line-oriented
// document text, tracking nesting by indentation. It performs no I/O
// and never fails: every miss is the NotFound sentinel.
package locate

import (
	"strings"

	"gatescan/internal/selector"
)

// NotFound is the line value signalling that the selector does not
// resolve anywhere in the document.
const NotFound = -1

// Result is the outcome of one Locate call. Line is the absolute,
// zero-based index of the matched line in the original document (or
// NotFound). Depth is the matched line's structural nesting level.
// Remaining is the buffer to thread into the next call for the same
// file so duplicate findings resolve to successive occurrences.
type Result struct {
	Line      int
	Depth     int
	Remaining Document
}

// Locate finds the line satisfying sel within doc, scanning from the
// view's start cursor. On a hit the returned Remaining starts just
// past the matched line; on a miss it is doc unchanged. doc itself is
// never mutated. Depth is always computed over the full document, so
// a remaining buffer reports the same depth for a duplicate occurrence
// as a fresh document would.
func Locate(doc Document, sel selector.Selector) Result {
	if sel.Empty() || doc.Empty() {
		return Result{Line: NotFound, Remaining: doc}
	}
	if sel.Kind == selector.KindLiteral {
		return locateLiteral(doc, sel.Segments[0].Name)
	}
	return locateStructural(doc, sel.Segments)
}

func locateStructural(doc Document, segs []selector.Segment) Result {
	depths := lineDepths(doc.lines)

	lo, hi := doc.start, len(doc.lines)
	for si, seg := range segs {
		found := -1
		for i := lo; i < hi; i++ {
			if depths[i] < 0 {
				continue
			}
			if seg.TopLevel && depths[i] != 0 {
				continue
			}
			if lineKey(doc.lines[i]) == seg.Name {
				found = i
				break
			}
		}
		if found < 0 {
			return Result{Line: NotFound, Remaining: doc}
		}
		if si == len(segs)-1 {
			return Result{
				Line:      found,
				Depth:     depths[found],
				Remaining: Document{lines: doc.lines, start: found + 1},
			}
		}
		// Deeper segments must match inside the child region of this
		// line: everything below it with strictly greater indentation.
		// The first match commits; there is no backtracking to a later
		// sibling once a region is entered.
		lo = found + 1
		bound := lo
		w := indentWidth(doc.lines[found])
		for bound < hi && (blank(doc.lines[bound]) || indentWidth(doc.lines[bound]) > w) {
			bound++
		}
		hi = bound
	}
	return Result{Line: NotFound, Remaining: doc}
}

func locateLiteral(doc Document, token string) Result {
	depths := lineDepths(doc.lines)
	for i := doc.start; i < len(doc.lines); i++ {
		if !strings.Contains(doc.lines[i], token) {
			continue
		}
		depth := depths[i]
		if depth < 0 {
			depth = 0
		}
		return Result{
			Line:      i,
			Depth:     depth,
			Remaining: Document{lines: doc.lines, start: i + 1},
		}
	}
	return Result{Line: NotFound, Remaining: doc}
}

// lineDepths computes the structural nesting level of every line. A
// line indented deeper than its nearest shallower predecessor is one
// level below it; equal indentation means siblings. Counting relative
// widths rather than dividing by a unit keeps tabs, 2-space and
// 4-space documents uniform, and a document with no indentation
// collapses to depth 0 everywhere. Blank lines get -1.
func lineDepths(lines []string) []int {
	out := make([]int, len(lines))
	var stack []int
	for i, ln := range lines {
		if blank(ln) {
			out[i] = -1
			continue
		}
		w := indentWidth(ln)
		for len(stack) > 0 && stack[len(stack)-1] >= w {
			stack = stack[:len(stack)-1]
		}
		out[i] = len(stack)
		stack = append(stack, w)
	}
	return out
}

func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// lineKey extracts the declared key token of a line: leading
// whitespace and list-item markers stripped, cut at the first ":".
// Matching against the key, not the whole line, keeps unrelated text
// that merely contains a segment name from satisfying it.
func lineKey(line string) string {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, "- ") {
		s = strings.TrimLeft(s[2:], " \t")
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
