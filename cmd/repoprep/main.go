// Command repoprep cleans up a repository list: rows with a repeated URL are
// collapsed to the last one, URLs listed in an exclusion file are dropped,
// duplicate names are reported and the result is written out.
package main

import (
	"io"
	"os"

	"github.com/JonMunkholm/committools/internal/cli"
	"github.com/JonMunkholm/committools/internal/config"
	"github.com/JonMunkholm/committools/internal/repos"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cfg, stop, err := cli.Bootstrap("repoprep")
	if err != nil {
		os.Exit(cli.ExitCode(os.Stderr, err))
	}

	err = newCommand(cfg, os.Stdout).ExecuteContext(ctx)
	stop()
	os.Exit(cli.ExitCode(os.Stderr, err))
}

func newCommand(cfg *config.Config, report io.Writer) *cobra.Command {
	job := repos.PrepJob{Report: report}

	cmd := &cobra.Command{
		Use:   "repoprep [-p projects] [-x exclude_prjs] [-o projects_processed]",
		Short: "Deduplicate and filter a repository list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected arguments: %v", args)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := repos.Preprocess(cmd.Context(), job)
			return err
		},
	}

	cmd.Flags().StringVarP(&job.ProjectsPath, "projects", "p", cfg.Prep.ProjectsFile, "repository list to clean")
	cmd.Flags().StringVarP(&job.ExcludePath, "exclude", "x", cfg.Prep.ExcludeFile, "list of repository URLs to drop")
	cmd.Flags().StringVarP(&job.OutputPath, "output", "o", cfg.Prep.OutputFile, "where to write the cleaned list")
	cmd.Flags().IntVar(&job.ReportLimit, "top", cfg.Prep.ReportLimit, "duplicate name groups to list (0 for all)")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})

	return cmd
}
