package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrNotARepo          = errors.New("not a git repository")
	ErrExecutableMissing = errors.New("git executable not found")
	ErrUnparseable       = errors.New("unparseable git output")
	ErrIndexGone         = errors.New("stash entry no longer exists")
	ErrExecFailed        = errors.New("git command failed")
	ErrApplyConflict     = errors.New("stash applied with conflicts")
	ErrNothingToStash    = errors.New("no local changes to save")
)

// Error is the typed failure every Service method returns.
type Error struct {
	Op     string // e.g. "stash pop stash@{2}"
	Kind   error  // One of the Err* sentinels.
	Detail string // Trimmed stderr (or stdout) from git.
	Err    error  // Underlying cause, if any.
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is matches the failure kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// IsFatal reports whether err means no session can run at all.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotARepo) || errors.Is(err, ErrExecutableMissing)
}

// Summary returns a short, user-facing description of err.
func Summary(err error) string {
	var ge *Error
	if !errors.As(err, &ge) {
		return err.Error()
	}
	msg := ge.Kind.Error()
	if ge.Detail != "" && ge.Kind == ErrExecFailed {
		msg += ": " + firstLine(ge.Detail)
	}
	return msg
}

// indexGoneMarkers are the phrases git uses when a stash ref does not resolve.
var indexGoneMarkers = []string{
	"is not a valid reference",
	"not a stash-like commit",
	"unknown revision",
	"only has",
	"No stash entries found",
	"does not exist",
}

// classify turns a failed git invocation into an *Error.
func classify(op, stdout, stderr string, err error) *Error {
	detail := strings.TrimSpace(stderr)
	if detail == "" {
		detail = strings.TrimSpace(stdout)
	}
	kind := ErrExecFailed
	combined := stdout + "\n" + stderr
	switch {
	case errors.Is(err, exec.ErrNotFound):
		kind = ErrExecutableMissing
	case strings.Contains(combined, "not a git repository"):
		kind = ErrNotARepo
	case strings.Contains(combined, "CONFLICT"):
		kind = ErrApplyConflict
	case containsAny(combined, indexGoneMarkers):
		kind = ErrIndexGone
	}
	return &Error{Op: op, Kind: kind, Detail: detail, Err: err}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// unparseable wraps a parse failure.
func unparseable(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrUnparseable, Detail: fmt.Sprint(err), Err: err}
}
