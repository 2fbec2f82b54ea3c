package cli

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"ctor-generator/internal/logger"
	"ctor-generator/internal/plan"
	"ctor-generator/internal/runner"
)

func generateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Write the generated constructors of each package",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), args)
		},
	}
}

func (a *app) generate(ctx context.Context, patterns []string) error {
	rep, err := a.runner().Run(ctx, runner.ModeGenerate, patterns...)

	return a.report(rep, err)
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages...]",
		Short: "Validate directives without writing files",
		Long:  "check plans every annotated type and exits with status 1 when any error is found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.runner().Run(cmd.Context(), runner.ModeCheck, args...)
			if err == nil {
				logger.FromContext(cmd.Context()).Info("No problems found", "packages", len(rep.Packages))
			}

			return a.report(rep, err)
		},
	}
}

func explainCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "explain [packages...]",
		Short: "Print the resolved constructors of each package",
		Long: `explain prints, for every factory, its signature and how each field is
initialized. The output is YAML; --dump prints the raw structures instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.runner().Run(cmd.Context(), runner.ModeExplain, args...)
			if rep == nil {
				return err
			}

			if perr := a.explain(rep, dump); perr != nil {
				return perr
			}

			return a.report(rep, err)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the plans with go-spew")

	return cmd
}

func (a *app) explain(rep *runner.Report, dump bool) error {
	for i, pr := range rep.Packages {
		if dump {
			spew.Fdump(a.stdout, plan.Explain(pr.Plan))
			continue
		}

		data, err := plan.ExplainYAML(pr.Plan)
		if err != nil {
			return fmt.Errorf("explain %s: %w", pr.Path, err)
		}

		if i > 0 {
			fmt.Fprintln(a.stdout, "---")
		}

		if _, err := a.stdout.Write(data); err != nil {
			return err
		}
	}

	return nil
}

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [packages...]",
		Short: "Regenerate whenever a Go file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.FromContext(ctx)

			return a.runner().Watch(ctx, func(rep *runner.Report, err error) {
				if rerr := a.report(rep, err); rerr != nil && rep == nil {
					log.Error("Generation failed", "error", rerr)
				}
			}, args...)
		},
	}
}
