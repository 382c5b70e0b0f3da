// Command csvjoin joins two CSV files on a key column.
//
//	csvjoin <fileA> <keyIndexA> <fileB> <keyIndexB> <outputFile>
//
// Rows whose trimmed keys appear in both files are written to outputFile as
// the key followed by the remaining fields of fileA and then fileB.
package main

import (
	"os"
	"strconv"

	"github.com/JonMunkholm/committools/internal/cli"
	"github.com/JonMunkholm/committools/internal/config"
	"github.com/JonMunkholm/committools/internal/join"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cfg, stop, err := cli.Bootstrap("csvjoin")
	if err != nil {
		os.Exit(cli.ExitCode(os.Stderr, err))
	}

	err = newCommand(cfg).ExecuteContext(ctx)
	stop()
	os.Exit(cli.ExitCode(os.Stderr, err))
}

func newCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "csvjoin <fileA> <keyIndexA> <fileB> <keyIndexB> <outputFile>",
		Short: "Inner-join two CSV files on a key column",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 5 {
				return cli.Usagef("expected 5 arguments, got %d", len(args))
			}
			return nil
		},
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := parseJob(args)
			if err != nil {
				return err
			}
			job.Comma = cfg.Join.Comma()

			_, err = join.Run(cmd.Context(), job)
			return err
		},
	}
}

func parseJob(args []string) (join.Job, error) {
	left, err := parseKeyIndex("keyIndexA", args[1])
	if err != nil {
		return join.Job{}, err
	}
	right, err := parseKeyIndex("keyIndexB", args[3])
	if err != nil {
		return join.Job{}, err
	}
	return join.Job{
		LeftPath:   args[0],
		LeftKey:    left,
		RightPath:  args[2],
		RightKey:   right,
		OutputPath: args[4],
	}, nil
}

func parseKeyIndex(name, value string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 {
		return 0, cli.Usagef("%s must be a non-negative integer, got %q", name, value)
	}
	return i, nil
}
