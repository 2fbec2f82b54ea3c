package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ctor-generator/internal/config"
	"ctor-generator/internal/logger"
	"ctor-generator/internal/runner"
)

// app is shared by the commands of one invocation.
type app struct {
	cfg    *config.Config
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// RootCmd builds the command tree. Running the root command is the same as
// running generate.
func RootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ctor-generator [packages...]",
		Short: "Generate constructor functions from //ctor directives",
		Long: `ctor-generator reads Go packages, finds types annotated with //ctor(...)
directives and writes their constructor functions into a generated file
in each package.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), args)
		},
	}

	addFlags(root.PersistentFlags())

	root.AddCommand(
		generateCmd(a),
		checkCmd(a),
		explainCmd(a),
		watchCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	loader, err := config.NewLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.Load(path, overrides(cmd.Flags()))
	if err != nil {
		return err
	}

	logger.SetupLogger(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Source)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), logger.GetDefault()))

	if a.dir == "" {
		if a.dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	a.cfg = cfg
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	return nil
}

func (a *app) runner() *runner.Runner {
	return runner.New(a.cfg.Generate, a.dir)
}

// report prints the diagnostics of a run. Diagnostics errors were already
// shown and are passed through unchanged.
func (a *app) report(rep *runner.Report, err error) error {
	if rep != nil {
		if perr := runner.PrintDiagnostics(a.stderr, rep.Diagnostics(), a.dir); perr != nil {
			return perr
		}
	}

	return err
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := RootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, runner.ErrDiagnostics):
		return 1
	default:
		fmt.Fprintf(stderr, "ctor-generator: %v\n", err)
		return 1
	}
}
