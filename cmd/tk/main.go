package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tkt-dev/tk/internal/config"
	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/lockfile"
	"github.com/tkt-dev/tk/internal/storage"
	"github.com/tkt-dev/tk/internal/storage/jsonfile"
	"github.com/tkt-dev/tk/internal/telemetry"
	"github.com/tkt-dev/tk/internal/ui"
)

// annotationNoStore marks commands that never touch the ticket file.
const annotationNoStore = "tk/no-store"

var (
	dataFile   string
	store      *storage.TicketStore
	jsonOutput bool

	verboseFlag bool // Enable verbose/debug output
	quietFlag   bool // Suppress non-essential output
	noColorFlag bool

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc

	// Held from load until after save so concurrent tk processes serialise.
	fileLock *lockfile.Lock

	// storeDirty is set by commands that changed the store; only then is the
	// file rewritten after the command.
	storeDirty bool

	commandSpan trace.Span

	stderr io.Writer = os.Stderr
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tk",
		Short: "tk - a single-user ticket tracker",
		Long: `tk keeps a list of tickets in a local JSON file.

Each ticket has a title, a free-form description, a status
(ToDo, InProgress, Blocked or Done) and an ordered list of comments.
Every invocation runs one command against the file and saves the result.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "tk version %s\n", FullVersionString())
				return
			}
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupSignalContext()
			applyVerbosityFlags()
			if err := applyConfig(cmd); err != nil {
				return err
			}
			startTelemetry(cmd)

			if !needsStore(cmd) {
				return nil
			}
			return openStore(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if store == nil || !storeDirty {
				return nil
			}
			if err := jsonfile.Save(rootCtx, dataFile, store); err != nil {
				return fmt.Errorf("failed to save tickets: %w", err)
			}
			storeDirty = false
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataFile, "file", "", "Ticket data file (default: $TK_FILE or ~/.tk/tickets.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable coloured output")
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")

	rootCmd.AddGroup(&cobra.Group{ID: "tickets", Title: "Working With Tickets:"})
	rootCmd.AddGroup(&cobra.Group{ID: "data", Title: "Data & Configuration:"})

	rootCmd.AddCommand(
		newCreateCmd(),
		newShowCmd(),
		newListCmd(),
		newEditCmd(),
		newMoveCmd(),
		newCommentCmd(),
		newDeleteCmd(),
		newExportCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// needsStore reports whether cmd reads or writes tickets. The root command,
// cobra's help and completion commands, and anything annotated with
// annotationNoStore (or under a parent that is) run without the data file.
func needsStore(cmd *cobra.Command) bool {
	if cmd == cmd.Root() {
		return false
	}
	for c := cmd; c != nil && c != cmd.Root(); c = c.Parent() {
		if c.Annotations[annotationNoStore] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// applyConfig loads config.yaml and the environment, then lets explicitly
// given flags win over both.
func applyConfig(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return err
	}
	flags := cmd.Flags()

	if !flags.Changed("json") {
		jsonOutput = config.GetBool(config.KeyJSON)
	}

	colorMode := config.GetString(config.KeyColor)
	if noColorFlag || jsonOutput {
		colorMode = ui.ColorNever
	}
	if err := ui.ConfigureColor(colorMode); err != nil {
		return err
	}

	if flags.Changed("file") {
		path, err := config.ExpandHome(dataFile)
		if err != nil {
			return err
		}
		dataFile = path
		return nil
	}
	path, err := config.DataFile()
	if err != nil {
		return err
	}
	dataFile = path
	return nil
}

func startTelemetry(cmd *cobra.Command) {
	if err := telemetry.Init(rootCtx, "tk", Version); err != nil {
		WarnError("telemetry disabled: %v", err)
	}
	rootCtx, commandSpan = telemetry.Tracer("github.com/tkt-dev/tk/cmd").Start(rootCtx, "tk."+cmd.Name(),
		trace.WithAttributes(attribute.String("tk.command", cmd.CommandPath())),
	)
}

func openStore(cmd *cobra.Command) error {
	lock, err := lockfile.Acquire(rootCtx, lockfile.PathFor(dataFile), cmd.Name(), config.GetDuration(config.KeyLockTimeout))
	if errors.Is(err, lockfile.ErrLockBusy) {
		return fmt.Errorf("another tk process is using %s: %w", dataFile, err)
	}
	if err != nil {
		return err
	}
	fileLock = lock
	debug.Logf("lock acquired: %s\n", lock.Path())

	s, err := jsonfile.Load(rootCtx, dataFile)
	if err != nil {
		return err
	}
	store = s
	return nil
}

// cleanup runs after every invocation, including failed ones.
func cleanup(runErr error) {
	if fileLock != nil {
		if err := fileLock.Release(); err != nil {
			WarnError("%v", err)
		}
		fileLock = nil
	}
	store = nil
	storeDirty = false

	if commandSpan != nil {
		if runErr != nil {
			commandSpan.RecordError(runErr)
			commandSpan.SetStatus(codes.Error, runErr.Error())
		}
		commandSpan.End()
		commandSpan = nil
	}
	if rootCtx != nil {
		telemetry.Shutdown(context.WithoutCancel(rootCtx))
	}
	if rootCancel != nil {
		rootCancel()
	}
	rootCtx, rootCancel = nil, nil
}

// execute runs one tk invocation and returns the process exit code.
func execute(args []string, stdout, errOut io.Writer) int {
	stderr = errOut
	debug.SetOutput(stdout, errOut)
	debug.SetVerbose(false)
	debug.SetQuiet(false)
	defer debug.SetOutput(nil, nil)

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	cleanup(err)
	if err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
