// Package watcher notifies the TUI when the stash stack may have changed
// outside the program, for example a `git stash` run in another terminal.
//
// Only a handful of paths inside the git directory are watched:
//   - <gitdir>/refs/stash and <gitdir>/logs/refs/stash  → push, drop, pop, clear
//   - <gitdir>/packed-refs                              → gc packing refs/stash
//   - <gitdir>/HEAD                                     → branch switch (header)
//
// The working tree is never watched.
package watcher

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/logging"
)

// Event is sent when a watched stash path changed.
type Event struct{}

// Watch monitors the stash refs under gitDir and sends an Event on the
// returned channel after each burst of changes settles for debounce.
// A debounce of zero or less disables coalescing.
//
// Call the returned stop function to tear down the watcher.
func Watch(gitDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	targets := []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "logs"),
		filepath.Join(gitDir, "logs", "refs"),
	}
	watched := 0
	for _, t := range targets {
		if info, statErr := os.Stat(t); statErr != nil || !info.IsDir() {
			continue
		}
		if addErr := w.Add(t); addErr != nil {
			logging.Logger.Debug("watch add failed", "path", t, "error", addErr)
			continue
		}
		watched++
	}
	logging.Logger.Debug("watcher started", "gitDir", gitDir, "dirs", watched, "debounce", debounce)

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Spread refreshes of several instances watching the same repository.
	jitterRange := int64(debounce / 2)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !isStashPath(ev.Name) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(jitterRange))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Logger.Warn("watcher error", "error", werr)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isStashPath reports whether a change to path can affect the stash list
// or the branch shown in the header.
func isStashPath(path string) bool {
	if shouldIgnore(path) {
		return false
	}
	switch filepath.Base(path) {
	case "stash", "packed-refs", "HEAD":
		return true
	}
	return false
}

// shouldIgnore returns true for transient files git and editors create.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Git holds these mid-operation; the rename that follows is the real event.
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}
	return false
}
