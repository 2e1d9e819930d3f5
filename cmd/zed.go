package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type zedTask struct {
	Label               string   `json:"label"`
	Command             string   `json:"command"`
	Args                []string `json:"args,omitempty"`
	Cwd                 string   `json:"cwd,omitempty"`
	UseNewTerminal      bool     `json:"use_new_terminal,omitempty"`
	AllowConcurrentRuns bool     `json:"allow_concurrent_runs,omitempty"`
	Reveal              string   `json:"reveal,omitempty"`
	Shell               string   `json:"shell,omitempty"`
}

const zedLabelPrefix = "zgs:"

func buildZedCmd() *cobra.Command {
	zedCmd := &cobra.Command{
		Use:   "zed",
		Short: "Manage the Zed task that opens zgs",
	}

	zedCmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Add the zgs task to Zed's global tasks.json",
		RunE: func(_ *cobra.Command, _ []string) error {
			return updateZedTasks(func(tasks []zedTask) []zedTask {
				return append(removeManagedZedTasks(tasks), defaultZedTasks()...)
			}, "Installed zgs Zed task in %s\n")
		},
	})
	zedCmd.AddCommand(&cobra.Command{
		Use:   "uninstall",
		Short: "Remove the zgs task from Zed's global tasks.json",
		RunE: func(_ *cobra.Command, _ []string) error {
			return updateZedTasks(removeManagedZedTasks, "Removed zgs Zed task from %s\n")
		},
	})

	return zedCmd
}

func updateZedTasks(edit func([]zedTask) []zedTask, done string) error {
	dir, err := zedConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "tasks.json")
	tasks, err := readZedTasks(path)
	if err != nil {
		return err
	}
	if err := writeZedTasks(path, edit(tasks)); err != nil {
		return err
	}
	fmt.Printf(done, path)
	return nil
}

func zedConfigDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("ZGS_ZED_CONFIG_DIR")); override != "" {
		return override, nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "zed"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "zed"), nil
}

func readZedTasks(path string) ([]zedTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read zed tasks file %s: %w", path, err)
	}
	var tasks []zedTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse zed tasks file %s: %w", path, err)
	}
	return tasks, nil
}

func writeZedTasks(path string, tasks []zedTask) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create zed config dir: %w", err)
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize zed tasks: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write zed tasks file %s: %w", path, err)
	}
	return nil
}

func removeManagedZedTasks(tasks []zedTask) []zedTask {
	out := make([]zedTask, 0, len(tasks))
	for _, t := range tasks {
		if !strings.HasPrefix(t.Label, zedLabelPrefix) {
			out = append(out, t)
		}
	}
	return out
}

func defaultZedTasks() []zedTask {
	return []zedTask{{
		Label:          "zgs: stashes (current worktree)",
		Command:        "zgs",
		Args:           []string{"--path", "$ZED_WORKTREE_ROOT"},
		Cwd:            "$ZED_WORKTREE_ROOT",
		UseNewTerminal: true,
		Reveal:         "always",
		Shell:          "system",
	}}
}
