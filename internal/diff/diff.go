// Package diff turns `git stash show` output into structured records.
//
// Both parsers make a single left-to-right pass and never fail: input they
// cannot fully account for yields a truncated result with Partial set.
package diff

import (
	"strconv"
	"strings"
)

// LineKind classifies one physical line of a unified diff.
type LineKind int

const (
	Context LineKind = iota
	Added
	Removed
	MetaHeader
	HunkHeader // Only produced by Document.Lines.
)

// Line is one physical line, Text kept byte-exact including its marker.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one @@ block plus the file metadata lines that preceded it.
// A hunk with an empty Header carries metadata only (binary files,
// pure renames, mode changes).
type Hunk struct {
	File   string
	Meta   []Line
	Header string
	Lines  []Line
	Binary bool
}

// Document is a parsed diff.
type Document struct {
	Hunks   []Hunk
	Partial bool // Input ended inside a hunk; that hunk was dropped.
}

// Stats summarises a document.
type Stats struct {
	Files      int
	Insertions int
	Deletions  int
}

// Lines flattens the document into display order.
func (d *Document) Lines() []Line {
	if d == nil {
		return nil
	}
	var out []Line
	for _, h := range d.Hunks {
		out = append(out, h.Meta...)
		if h.Header != "" {
			out = append(out, Line{Kind: HunkHeader, Text: h.Header})
		}
		out = append(out, h.Lines...)
	}
	return out
}

// Len returns the number of display lines.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, h := range d.Hunks {
		n += len(h.Meta) + len(h.Lines)
		if h.Header != "" {
			n++
		}
	}
	return n
}

// Stats counts files and changed lines.
func (d *Document) Stats() Stats {
	var s Stats
	if d == nil {
		return s
	}
	last := ""
	for i, h := range d.Hunks {
		if i == 0 || h.File != last {
			s.Files++
			last = h.File
		}
		for _, l := range h.Lines {
			switch l.Kind {
			case Added:
				s.Insertions++
			case Removed:
				s.Deletions++
			}
		}
	}
	return s
}

// parser carries the state of one Parse call.
type parser struct {
	doc     Document
	file    string
	binary  bool
	meta    []Line
	cur     *Hunk
	oldLeft int
	newLeft int
}

// Parse parses unified diff text.
func Parse(raw string) *Document {
	p := &parser{}
	for _, line := range splitLines(raw) {
		p.line(line)
	}
	if p.cur != nil {
		p.cur = nil
		p.doc.Partial = true
	}
	p.flushMeta()
	return &p.doc
}

func (p *parser) line(line string) {
	if p.cur != nil {
		if p.body(line) {
			return
		}
		// A line that cannot belong to the open hunk means its counts lied.
		p.cur = nil
		p.doc.Partial = true
	}

	switch {
	case strings.HasPrefix(line, "@@ "):
		oldN, newN, ok := parseHunkHeader(line)
		if !ok {
			p.doc.Partial = true
			p.addMeta(line)
			return
		}
		p.cur = &Hunk{File: p.file, Meta: p.meta, Header: line, Binary: p.binary}
		p.meta = nil
		p.binary = false
		p.oldLeft, p.newLeft = oldN, newN
		p.maybeClose()
	case strings.HasPrefix(line, `\`) && len(p.meta) == 0 && len(p.doc.Hunks) > 0:
		last := &p.doc.Hunks[len(p.doc.Hunks)-1]
		last.Lines = append(last.Lines, Line{Kind: Context, Text: line})
	case strings.HasPrefix(line, "diff --git "):
		p.flushMeta()
		p.file = pathFromDiffGit(line)
		p.addMeta(line)
	default:
		switch {
		case strings.HasPrefix(line, "+++ "):
			if path := stripPrefix(strings.TrimPrefix(line, "+++ ")); path != "/dev/null" {
				p.file = path
			}
		case strings.HasPrefix(line, "rename to "):
			p.file = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files ") || line == "GIT binary patch":
			p.binary = true
		}
		p.addMeta(line)
	}
}

// body consumes a line inside the open hunk. It reports false when the
// line cannot be part of the hunk.
func (p *parser) body(line string) bool {
	var kind LineKind
	switch {
	case line == "" || line[0] == ' ':
		if p.oldLeft <= 0 || p.newLeft <= 0 {
			return false
		}
		kind = Context
		p.oldLeft--
		p.newLeft--
	case line[0] == '+':
		if p.newLeft <= 0 {
			return false
		}
		kind = Added
		p.newLeft--
	case line[0] == '-':
		if p.oldLeft <= 0 {
			return false
		}
		kind = Removed
		p.oldLeft--
	case line[0] == '\\':
		kind = Context
	default:
		return false
	}
	p.cur.Lines = append(p.cur.Lines, Line{Kind: kind, Text: line})
	p.maybeClose()
	return true
}

func (p *parser) maybeClose() {
	if p.cur != nil && p.oldLeft <= 0 && p.newLeft <= 0 {
		p.doc.Hunks = append(p.doc.Hunks, *p.cur)
		p.cur = nil
	}
}

func (p *parser) addMeta(line string) {
	p.meta = append(p.meta, Line{Kind: MetaHeader, Text: line})
}

// flushMeta emits queued metadata that no hunk claimed.
func (p *parser) flushMeta() {
	if len(p.meta) == 0 {
		return
	}
	p.doc.Hunks = append(p.doc.Hunks, Hunk{File: p.file, Meta: p.meta, Binary: p.binary})
	p.meta = nil
	p.binary = false
}

// parseHunkHeader reads the line counts from "@@ -a[,b] +c[,d] @@".
func parseHunkHeader(line string) (oldN, newN int, ok bool) {
	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return 0, 0, false
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return 0, 0, false
	}
	if oldN, ok = rangeCount(fields[0][1:]); !ok {
		return 0, 0, false
	}
	if newN, ok = rangeCount(fields[1][1:]); !ok {
		return 0, 0, false
	}
	return oldN, newN, true
}

// rangeCount parses "start[,count]"; a missing count means one line.
func rangeCount(s string) (int, bool) {
	start, count, found := strings.Cut(s, ",")
	if _, err := strconv.Atoi(start); err != nil {
		return 0, false
	}
	if !found {
		return 1, true
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func pathFromDiffGit(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return rest[i+3:]
	}
	return rest
}

func stripPrefix(path string) string {
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}
	return path
}

func splitLines(raw string) []string {
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
