// Command repoclone prints a shell script that clones every repository in a
// repository list, optionally restricted to some languages. Repositories
// with the same name get distinct folders and random sleeps are placed
// between clones to spread the load on the host.
//
//	repoclone -l "Java,C++" -i /path/to/project/list > download_script.sh
package main

import (
	"io"
	"os"

	"github.com/JonMunkholm/committools/internal/cli"
	"github.com/JonMunkholm/committools/internal/config"
	"github.com/JonMunkholm/committools/internal/logging"
	"github.com/JonMunkholm/committools/internal/repos"
	"github.com/spf13/cobra"
)

type options struct {
	input     string
	languages string
	noDelay   bool
}

func main() {
	ctx, cfg, stop, err := cli.Bootstrap("repoclone")
	if err != nil {
		os.Exit(cli.ExitCode(os.Stderr, err))
	}

	err = newCommand(cfg, os.Stdout).ExecuteContext(ctx)
	stop()
	os.Exit(cli.ExitCode(os.Stderr, err))
}

func newCommand(cfg *config.Config, out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "repoclone -i <project list> [-l languages]",
		Short: "Print a git clone script for a repository list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected arguments: %v", args)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.input == "" {
				return cli.Usagef("no input file given")
			}

			projects, err := repos.ReadProjects(opts.input)
			if err != nil {
				return err
			}

			logger := logging.WithFields(cmd.Context(), "input", opts.input)
			if opts.languages != "" {
				before := len(projects)
				projects = repos.FilterLanguages(projects, repos.ParseLanguages(opts.languages))
				logger.Info("filtered by language", "languages", opts.languages, "before", before, "after", len(projects))
			}

			plan := repos.BuildDownloadPlan(projects, cfg.Clone.URLScheme)

			var delay repos.DelayFunc
			if cfg.Clone.RandomDelay && !opts.noDelay {
				delay = repos.NormalDelay(cfg.Clone.DelayMean, cfg.Clone.DelaySigma)
			}

			if err := repos.WriteScript(out, plan, delay); err != nil {
				return err
			}
			logger.Info("clone script written", "repositories", len(plan))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path to the repository list")
	cmd.Flags().StringVarP(&opts.languages, "lang", "l", "", "only clone repositories in these languages (comma separated)")
	cmd.Flags().BoolVar(&opts.noDelay, "no-delay", false, "do not add random sleeps between clones")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})

	return cmd
}
