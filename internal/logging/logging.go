// Package logging configures the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Logger is shared by every package. It discards output until Initialize
// enables it.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// closer holds the open log file, if any.
var closer io.Closer

// Initialize routes Logger to a JSON log file. With debug off and no file
// logs are discarded. Without an explicit file a uuid-named file is created
// in the OS log directory, keeping at most maxFiles of them.
func Initialize(debug bool, file string, maxFiles int) error {
	if os.Getenv("ZGS_DEBUG") == "1" {
		debug = true
	}
	if !debug && file == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	path := file
	if path == "" {
		dir, err := logDir()
		if err != nil {
			return fmt.Errorf("locating log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		if maxFiles > 0 {
			if err := rotate(dir, maxFiles); err != nil {
				fmt.Fprintf(os.Stderr, "warning: log rotation failed: %v\n", err)
			}
		}
		path = filepath.Join(dir, uuid.New().String()+".log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	closer = f
	Logger.Info("logging initialized", "log_file", path, "debug", debug)
	return nil
}

// Close flushes and closes the log file opened by Initialize.
func Close() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	return err
}

// rotate deletes the oldest .log files so that one more fits under max.
func rotate(dir string, max int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading log directory: %w", err)
	}
	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, e.Name()), modTime: info.ModTime()})
	}
	if len(files) < max {
		return nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })
	for _, f := range files[:len(files)-max+1] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: removing old log %s: %v\n", f.path, err)
		}
	}
	return nil
}

func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "zgs"), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "zgs", "logs"), nil
	default:
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			state = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(state, "zgs"), nil
	}
}
