package diff

import (
	"strconv"
	"strings"
)

// ChangeType is the kind of change a stash made to one file.
type ChangeType int

const (
	ChangeModified ChangeType = iota
	ChangeAdded
	ChangeDeleted
	ChangeRenamed
)

// String returns the one-letter git status for the change.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "A"
	case ChangeDeleted:
		return "D"
	case ChangeRenamed:
		return "R"
	default:
		return "M"
	}
}

// Label returns a human-readable name for the change.
func (c ChangeType) Label() string {
	switch c {
	case ChangeAdded:
		return "Added"
	case ChangeDeleted:
		return "Deleted"
	case ChangeRenamed:
		return "Renamed"
	default:
		return "Modified"
	}
}

// FileChange is one file touched by a stash.
type FileChange struct {
	Path         string
	OldPath      string // Set for renames.
	Change       ChangeType
	Insertions   int
	Deletions    int
	Binary       bool
	RawStatus    string // Status field exactly as git printed it, e.g. "R087".
	Unrecognized bool   // RawStatus was not one of A, M, D, R.
}

// FileSummary is the parsed `stash show --raw --numstat` listing.
type FileSummary struct {
	Files   []FileChange
	Partial bool // Some records were malformed or could not be paired.
}

// Totals sums insertions and deletions across all files.
func (s *FileSummary) Totals() (insertions, deletions int) {
	if s == nil {
		return 0, 0
	}
	for _, f := range s.Files {
		insertions += f.Insertions
		deletions += f.Deletions
	}
	return insertions, deletions
}

// Len returns the number of files.
func (s *FileSummary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}

type numstat struct {
	ins, del int
	binary   bool
}

// ParseFileSummary parses the combined output of --raw and --numstat.
// Raw records carry status and paths, numstat records carry line counts;
// git prints both in the same file order, so they are paired by position.
func ParseFileSummary(raw string) *FileSummary {
	sum := &FileSummary{}
	var counts []numstat
	for _, line := range splitLines(raw) {
		switch {
		case line == "":
		case line[0] == ':':
			fc, ok := parseRawRecord(line)
			if !ok {
				sum.Partial = true
				continue
			}
			sum.Files = append(sum.Files, fc)
		default:
			ns, ok := parseNumstat(line)
			if !ok {
				sum.Partial = true
				continue
			}
			counts = append(counts, ns)
		}
	}
	if len(counts) != len(sum.Files) {
		sum.Partial = true
	}
	for i := range sum.Files {
		if i >= len(counts) {
			break
		}
		sum.Files[i].Insertions = counts[i].ins
		sum.Files[i].Deletions = counts[i].del
		sum.Files[i].Binary = counts[i].binary
	}
	return sum
}

// parseRawRecord reads ":<mode> <mode> <sha> <sha> <status>\t<path>[\t<path>]".
func parseRawRecord(line string) (FileChange, bool) {
	head, paths, ok := strings.Cut(line, "\t")
	if !ok {
		return FileChange{}, false
	}
	fields := strings.Fields(head)
	if len(fields) != 5 || fields[4] == "" {
		return FileChange{}, false
	}
	fc := FileChange{RawStatus: fields[4]}
	parts := strings.Split(paths, "\t")

	switch fc.RawStatus[0] {
	case 'A':
		fc.Change = ChangeAdded
	case 'M':
		fc.Change = ChangeModified
	case 'D':
		fc.Change = ChangeDeleted
	case 'R':
		fc.Change = ChangeRenamed
		if len(parts) != 2 {
			return FileChange{}, false
		}
		fc.OldPath, fc.Path = parts[0], parts[1]
		return fc, true
	default:
		fc.Change = ChangeModified
		fc.Unrecognized = true
	}
	// Copies list source then destination; show the destination.
	fc.Path = parts[len(parts)-1]
	if fc.Path == "" {
		return FileChange{}, false
	}
	return fc, true
}

// parseNumstat reads "<ins>\t<del>\t<path>"; binary files report "-".
func parseNumstat(line string) (numstat, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return numstat{}, false
	}
	if parts[0] == "-" && parts[1] == "-" {
		return numstat{binary: true}, true
	}
	ins, err1 := strconv.Atoi(parts[0])
	del, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || ins < 0 || del < 0 {
		return numstat{}, false
	}
	return numstat{ins: ins, del: del}, true
}
