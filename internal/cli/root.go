// Package cli implements the entityschema command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/entityschema/internal/paths"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one command invocation.
type app struct {
	flags  rootFlags
	config types.Config
	logger *zap.Logger
}

// NewRootCmd creates the top-level "entityschema" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "entityschema",
		Short: "Edit versioned, multilingual entity schemas",
		Long: "entityschema stores ShExC entity schemas with labels, descriptions and aliases\n" +
			"per language, keeps every revision, and merges concurrent edits.",
		Version: Version,
		// Errors are printed by Execute with the matching exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return userError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newCreateCmd(a),
		newImportCmd(a),
		newShowCmd(a),
		newSetBadgeCmd(a),
		newSetTextCmd(a),
		newDiffCmd(a),
		newHistoryCmd(a),
		newListCmd(a),
		newUndoCmd(a),
		newRestoreCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return userError(err)
	}
	a.config = cfg
	a.logger = logger
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:]))
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// cliError carries an exit code with the error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }

// userErrors are failures caused by input rather than the environment.
var userErrors = []error{
	types.ErrInvalidArgument,
	types.ErrInvalidSchemaID,
	types.ErrNotFound,
	types.ErrAlreadyExists,
	types.ErrStaleRevision,
	types.ErrNoParentRevision,
	types.ErrInvalidRevision,
	types.ErrEditConflict,
	types.ErrInvalidConfig,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return wrapArgs(cobra.RangeArgs(lo, hi))
}

func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}
