package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/config"
	"github.com/tixcli/tix/internal/debug"
	"github.com/tixcli/tix/internal/dispatch"
	"github.com/tixcli/tix/internal/storage"
	"github.com/tixcli/tix/internal/telemetry"
	"github.com/tixcli/tix/internal/ui"
)

var (
	dataPath    string
	jsonOutput  bool
	noInit      bool               // Require the data file to exist
	lockTimeout = 30 * time.Second // How long to wait for the data file lock
	verboseFlag bool               // Enable verbose/debug output
	quietFlag   bool               // Suppress non-essential output

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

// telemetryShutdownTimeout bounds the final span/metric flush.
const telemetryShutdownTimeout = 5 * time.Second

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Ticket data file (default: data/tickets.json, $TIX_DATA)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noInit, "no-init", false, "Fail instead of starting empty when the data file is missing")
	rootCmd.PersistentFlags().DurationVar(&lockTimeout, "lock-timeout", lockTimeout, "How long to wait for another tix process to release the data file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	// Add --version flag to root command (same behavior as version subcommand)
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")

	rootCmd.AddGroup(&cobra.Group{ID: "tickets", Title: "Working With Tickets:"})
	rootCmd.AddGroup(&cobra.Group{ID: "setup", Title: "Setup & Configuration:"})
}

var rootCmd = &cobra.Command{
	Use:   "tix",
	Short: "tix - a local ticket tracker",
	Long: `Track tickets in a single JSON file.

Every command loads the whole file, applies one change and writes it back
atomically. Concurrent tix processes are serialized by an advisory lock
next to the data file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Handle --version flag on root command
		if v, _ := cmd.Flags().GetBool("version"); v {
			printVersion(cmd)
			return
		}
		// No subcommand - show help
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupSignalContext()
		if err := config.Initialize(); err != nil {
			return err
		}
		applyViperOverrides(cmd)
		applyVerbosityFlags()
		ui.ApplyColorProfile()

		if err := telemetry.Init(getRootContext(), "tix", Version); err != nil {
			WarnError("telemetry disabled: %v", err)
		}
		debug.Logger().Debug("configuration resolved",
			"data", dataPath,
			"json", jsonOutput,
			"init_missing", !noInit,
			"lock_timeout", lockTimeout,
			"config_file", config.ConfigFileUsed(),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdown()
	},
}

// setupSignalContext creates a context cancelled on SIGINT/SIGTERM, so a
// command waiting on the data file lock gives up cleanly.
func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func getRootContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

// applyViperOverrides merges config file and environment values into flags
// that weren't explicitly set on the command line.
// Priority: flags > env > config file > defaults.
func applyViperOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("data") {
		dataPath = config.GetString(config.KeyData)
	}
	if !flags.Changed("json") {
		jsonOutput = config.GetBool(config.KeyJSON)
	}
	if !flags.Changed("no-init") {
		noInit = !config.GetBool(config.KeyInitMissing)
	}
	if !flags.Changed("lock-timeout") {
		lockTimeout = config.GetDuration(config.KeyLockTimeout)
	}
	if dataPath == "" {
		dataPath = config.DefaultDataPath
	}

	// Record the resolved values so config list reports what this run uses.
	config.Set(config.KeyData, dataPath)
	config.Set(config.KeyJSON, jsonOutput)
	config.Set(config.KeyInitMissing, !noInit)
	config.Set(config.KeyLockTimeout, lockTimeout.String())
}

// applyVerbosityFlags propagates --verbose and --quiet to the debug package
// so all subsequent output respects the user's preference.
func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// newRepository opens the configured data file, instrumented when telemetry
// is on.
func newRepository() storage.Repository {
	repo := storage.NewFileRepository(dataPath)
	repo.InitMissing = !noInit
	repo.LockTimeout = lockTimeout
	repo.Logger = debug.Logger()
	return telemetry.WrapRepository(repo)
}

func newDispatcher(cmd *cobra.Command) *dispatch.Dispatcher {
	d := dispatch.New(newRepository())
	d.Out = cmd.OutOrStdout()
	d.JSON = jsonOutput
	d.Quiet = debug.IsQuiet()
	d.Logger = debug.Logger()
	return d
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()
	telemetry.Shutdown(ctx)
	if rootCancel != nil {
		rootCancel()
	}
}

func main() {
	// TIX_NAME overrides the binary name in help text, for wrapper scripts.
	if name := os.Getenv("TIX_NAME"); name != "" {
		rootCmd.Use = name
	}

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		reportError(err)
	}
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "tix version %s (%s)\n", Version, Build)
}
