package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// stashListFormat asks for ref, commit hash, commit time and reflog subject,
// NUL-separated so subjects may contain any printable text.
const stashListFormat = "--format=%gd%x00%H%x00%ct%x00%gs"

// ParseStashList parses `git stash list` output produced with stashListFormat.
func ParseStashList(out string) ([]stash.Entry, error) {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil, nil
	}
	lines := strings.Split(out, "\n")
	entries := make([]stash.Entry, 0, len(lines))
	for n, line := range lines {
		e, err := parseStashLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseStashLine(line string) (stash.Entry, error) {
	parts := strings.SplitN(line, "\x00", 4)
	if len(parts) != 4 {
		return stash.Entry{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}
	var idx int
	if _, err := fmt.Sscanf(parts[0], "stash@{%d}", &idx); err != nil {
		return stash.Entry{}, fmt.Errorf("bad stash ref %q", parts[0])
	}
	e := stash.Entry{
		Index:   idx,
		Hash:    strings.TrimSpace(parts[1]),
		Subject: parts[3],
	}
	if ts, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64); err == nil {
		e.CreatedAt = time.Unix(ts, 0)
	}
	e.Branch, e.Message = splitSubject(parts[3])
	return e, nil
}

// splitSubject extracts branch and message from a stash reflog subject:
// "WIP on <branch>: <hash> <subject>" or "On <branch>: <message>".
func splitSubject(subject string) (branch, message string) {
	branch = "unknown"
	head, rest, found := strings.Cut(subject, ": ")
	if !found {
		return branch, subject
	}
	switch {
	case strings.HasPrefix(head, "WIP on "):
		branch = strings.TrimPrefix(head, "WIP on ")
	case strings.HasPrefix(head, "On "):
		branch = strings.TrimPrefix(head, "On ")
	default:
		return branch, subject
	}
	return branch, rest
}
