package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/app"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/config"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/git"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/logging"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// The program mostly waits on git subprocesses and the terminal; two
	// threads are enough. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("zgs: %v", err))
		os.Exit(1)
	}
}

type rootFlags struct {
	path    string
	debug   bool
	logFile string
	config  string
}

func buildRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "zgs",
		Short: "A keyboard-first TUI for git stash",
		Long: `zgs lists the stash entries of a repository and lets you preview,
filter, apply, pop, drop and create them without leaving the terminal.

The list refreshes by itself when the stash changes elsewhere, for example
after running git stash in another terminal.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApp(flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"zgs %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildZedCmd())

	rootCmd.Flags().StringVarP(&flags.path, "path", "p", ".", "Path to the git repository")
	rootCmd.Flags().BoolVar(&flags.debug, "debug", false, "Write debug logs")
	rootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "Log to this file instead of the state directory")
	rootCmd.Flags().StringVarP(&flags.config, "config", "c", "", "Read configuration from this file only")

	return rootCmd
}

// buildVersionCmd creates the `zgs version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
					"go":      runtime.Version(),
					"os":      runtime.GOOS,
					"arch":    runtime.GOARCH,
				})
			}
			fmt.Printf("zgs %s (%s, %s) %s %s/%s\n",
				version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	return cmd
}

// buildCompletionCmd creates the `zgs completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Example: `  zgs completion bash > /etc/bash_completion.d/zgs
  zgs completion zsh > "${fpath[1]}/_zgs"
  zgs completion fish > ~/.config/fish/completions/zgs.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}

func runApp(flags rootFlags) error {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logFile := cfg.LogFile
	if flags.logFile != "" {
		logFile = flags.logFile
	}
	if err := logging.Initialize(cfg.Debug || flags.debug, logFile, cfg.MaxLogFiles); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	cliSvc, err := git.NewCLIService(flags.path, git.CLIOptions{
		Timeout:      cfg.CommandTimeout,
		ContextLines: cfg.DiffContextLines,
	})
	if err != nil {
		logging.Logger.Error("startup failed", "path", flags.path, "error", err)
		return err
	}
	gitSvc := git.NewCachedService(cliSvc, cfg.CacheTTL)
	logging.Logger.Info("session started", "repo", cliSvc.RepoRoot(), "version", version)

	p := tea.NewProgram(app.New(gitSvc, cfg), tea.WithAltScreen())

	if watchCh, stop, watchErr := watcher.Watch(cliSvc.GitDir(), cfg.WatchDebounce); watchErr == nil {
		defer stop()
		go func() {
			for range watchCh {
				gitSvc.Invalidate()
				p.Send(common.RefreshMsg{})
			}
		}()
	} else {
		logging.Logger.Warn("watcher unavailable", "error", watchErr)
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
