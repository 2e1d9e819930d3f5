package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/logging"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// CLIOptions tunes how CLIService invokes git.
type CLIOptions struct {
	Timeout      time.Duration // Per-command limit; 0 means 30s.
	ContextLines int           // -U value for stash diffs; <0 means git's default.
}

const defaultTimeout = 30 * time.Second

// CLIService implements Service by shelling out to the git CLI.
//   - GIT_OPTIONAL_LOCKS=0 on read commands (no lock contention)
//   - Context-based timeouts prevent hangs
//   - Stdout/Stderr captured separately and both kept for classification
type CLIService struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
	bin    string // Resolved git executable.
	opts   CLIOptions
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// NewCLIService opens the Git repository containing path.
func NewCLIService(path string, opts CLIOptions) (*CLIService, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	bin, err := exec.LookPath("git")
	if err != nil {
		return nil, &Error{Op: "lookup git", Kind: ErrExecutableMissing, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &Error{Op: "open " + abs, Kind: ErrNotARepo, Err: err}
	}

	s := &CLIService{root: abs, bin: bin, opts: opts}
	topLevel, err := s.run("rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, ErrExecutableMissing) {
			return nil, err
		}
		var ge *Error
		if errors.As(err, &ge) {
			return nil, &Error{Op: "open " + abs, Kind: ErrNotARepo, Detail: ge.Detail, Err: err}
		}
		return nil, err
	}
	s.root = strings.TrimSpace(topLevel)

	gitDir, err := s.run("rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(s.root, gd)
	}
	s.gitDir = gd
	return s, nil
}

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// run executes a read-only git command at the repo root.
func (s *CLIService) run(args ...string) (string, error) {
	out, _, err := s.runGit(readEnv, args...)
	return out, err
}

// runWrite executes a mutating git command and returns stdout as well as
// stderr, since some outcomes are only reported there.
func (s *CLIService) runWrite(args ...string) (string, string, error) {
	return s.runGit(nil, args...)
}

// runGit executes git with a context timeout. Non-zero exits are returned
// as a classified *Error.
func (s *CLIService) runGit(extraEnv []string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.bin, args...)
	cmd.Dir = s.root
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	op := strings.Join(args, " ")
	logging.Logger.Debug("git", "args", op, "duration", time.Since(start), "ok", err == nil)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", s.opts.Timeout, err)
		}
		gerr := classify("git "+op, stdout.String(), stderr.String(), err)
		logging.Logger.Warn("git failed", "args", op, "kind", gerr.Kind.Error(), "detail", gerr.Detail)
		return stdout.String(), stderr.String(), gerr
	}
	return stdout.String(), stderr.String(), nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// Head returns the current branch, or the short commit hash when detached.
func (s *CLIService) Head() (string, error) {
	ref, err := s.run("symbolic-ref", "--short", "-q", "HEAD")
	if err == nil && strings.TrimSpace(ref) != "" {
		return strings.TrimSpace(ref), nil
	}
	hash, hashErr := s.run("rev-parse", "--short", "HEAD")
	if hashErr != nil {
		return "", fmt.Errorf("getting HEAD: %w", hashErr)
	}
	return strings.TrimSpace(hash), nil
}

// ── Stash ───────────────────────────────────────────────────────────────────

// StashList returns the current stash stack.
func (s *CLIService) StashList() (stash.List, error) {
	out, err := s.run("stash", "list", stashListFormat)
	if err != nil {
		return stash.List{}, err
	}
	entries, err := ParseStashList(out)
	if err != nil {
		return stash.List{}, unparseable("git stash list", err)
	}
	list, err := stash.NewList(entries)
	if err != nil {
		return stash.List{}, unparseable("git stash list", err)
	}
	return list, nil
}

// StashShow returns the parsed patch of a stash entry.
func (s *CLIService) StashShow(index int) (*diff.Document, error) {
	args := []string{"stash", "show", "-p", "--color=never", "--no-ext-diff"}
	if s.opts.ContextLines >= 0 {
		args = append(args, "-U"+strconv.Itoa(s.opts.ContextLines))
	}
	out, err := s.run(append(args, stash.Ref(index))...)
	if err != nil {
		return nil, err
	}
	return diff.Parse(out), nil
}

// StashFiles returns the files touched by a stash entry.
func (s *CLIService) StashFiles(index int) (*diff.FileSummary, error) {
	out, err := s.run("-c", "core.quotepath=false", "stash", "show",
		"--raw", "--numstat", "--no-color", stash.Ref(index))
	if err != nil {
		return nil, err
	}
	return diff.ParseFileSummary(out), nil
}

// StashApply applies the stash at index, removing it when drop is set.
// A conflicted apply still exits non-zero and is reported as ErrApplyConflict;
// the working tree is left as git left it.
func (s *CLIService) StashApply(index int, drop bool) error {
	verb := "apply"
	if drop {
		verb = "pop"
	}
	_, _, err := s.runWrite("stash", verb, stash.Ref(index))
	return err
}

// StashDrop removes the stash at index without applying it.
func (s *CLIService) StashDrop(index int) error {
	_, _, err := s.runWrite("stash", "drop", stash.Ref(index))
	return err
}

// StashSave stashes the working tree.
func (s *CLIService) StashSave(message string, includeUntracked bool) error {
	args := []string{"stash", "push"}
	if message = strings.TrimSpace(message); message != "" {
		args = append(args, "-m", message)
	}
	if includeUntracked {
		args = append(args, "--include-untracked")
	}
	stdout, stderr, err := s.runWrite(args...)
	if err != nil {
		return err
	}
	if strings.Contains(stdout+stderr, "No local changes to save") {
		return &Error{Op: "git " + strings.Join(args, " "), Kind: ErrNothingToStash}
	}
	return nil
}
