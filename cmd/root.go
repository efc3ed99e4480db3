package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lakshaymaurya-felt/nmsweep/internal/app"
	"github.com/lakshaymaurya-felt/nmsweep/internal/config"
	"github.com/lakshaymaurya-felt/nmsweep/internal/core"
	"github.com/lakshaymaurya-felt/nmsweep/internal/logging"
	"github.com/lakshaymaurya-felt/nmsweep/internal/purge"
	"github.com/lakshaymaurya-felt/nmsweep/internal/report"
)

var (
	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"depth":       config.KeyDepth,
	"concurrency": config.KeyConcurrency,
	"manifest":    config.KeyManifest,
	"cache-dir":   config.KeyCacheDir,
	"exclude":     config.KeyExclude,
	"silent":      config.KeySilent,
	"interactive": config.KeyInteractive,
	"plain":       config.KeyPlain,
	"debug":       config.KeyDebug,
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nmsweep [path]",
		Short: "Remove node_modules folders from your projects",
		Long: `nmsweep - reclaim disk space from dependency folders.

Searches the given directory (default: the current one) for projects,
directories holding a package.json, and deletes their node_modules
folder. Deletions run concurrently with live per-project progress.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSweep,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	f := rootCmd.Flags()
	f.IntP("depth", "d", config.DefaultDepth, "How deep to search for projects")
	f.BoolP("silent", "s", false, "Silent mode")
	f.BoolP("interactive", "i", false, "Interactive mode: choose projects before deleting")
	f.IntP("concurrency", "c", purge.DefaultConcurrency, "Maximum deletions in flight")
	f.String("manifest", config.DefaultManifest, "File name that marks a project")
	f.String("cache-dir", config.DefaultCacheDir, "Directory to delete inside each project")
	f.StringSlice("exclude", nil, "Directory names to skip while searching")
	f.Bool("plain", false, "Print plain lines instead of the live view")

	rootCmd.PersistentFlags().Bool("debug", false, "Show detailed operation logs")

	// Register all subcommands
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// ExitCode maps an Execute error to a process exit status.
// Per-project failures never reach here; they only show in the output.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, report.ErrInterrupted):
		return 130
	default:
		return 1
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	v := config.NewViper()
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Debug)
	ctx := logging.WithContext(cmd.Context(), logger)

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("search root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("search root %s is not a directory", root)
	}

	return app.Run(ctx, app.Options{
		Root:        root,
		Depth:       cfg.Depth,
		Concurrency: cfg.Concurrency,
		Manifest:    cfg.Manifest,
		CacheDir:    cfg.CacheDir,
		Exclude:     cfg.Exclude,
		Silent:      cfg.Silent,
		Interactive: cfg.Interactive,
		Live:        useLiveView(cmd, cfg),
		Out:         cmd.OutOrStdout(),
	})
}

// bindFlags lets explicitly set flags override config file and environment values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(fl *pflag.Flag) {
		key, ok := flagKeys[fl.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, fl); err != nil {
			bindErr = fmt.Errorf("bind --%s: %w", fl.Name, err)
		}
	})
	return bindErr
}

// useLiveView picks the bubbletea view only for a real terminal. Debug logs
// share stderr with the screen, so they get the line printer.
func useLiveView(cmd *cobra.Command, cfg *config.Config) bool {
	if cfg.Silent || cfg.Plain || cfg.Debug {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !core.IsTerminal(out) {
		return false
	}
	return core.EnableVirtualTerminal(out)
}
