package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cattywampus/internal/cleaner"
	"cattywampus/internal/config"
	"cattywampus/internal/history"
)

const defaultHistoryLimit = 20

func newHistoryCommand(env *environment, flags *cliFlags) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs recorded with --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := flags.values(cmd.Flags(), nil)
			if err != nil {
				return err
			}
			rec, err := resolveOptions(env, cli, flags.configPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			path := config.HistoryPathFor(rec.ConfigPath.Value)
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "No run history at %s (enable with --history or history = true)\n", path)
				return nil
			}
			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			ctx := cmd.Context()
			if id := strings.TrimSpace(runID); id != "" {
				files, err := store.Files(ctx, id)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintf(out, "No files recorded for run %s\n", id)
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Path", "Kind", "Status", "Time", "Error"},
					fileRows(files),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			}

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Duration", "Processed", "Errored", "Skipped", "Dry run"},
				runRows(runs, env.now()),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the files processed by one run")
	return cmd
}

func runRows(runs []history.Run, now time.Time) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			cleaner.Seconds(run.Duration()),
			strconv.Itoa(run.FilesProcessed),
			strconv.Itoa(run.FilesErrored),
			strconv.Itoa(run.FilesSkipped),
			yesNo(run.DryRun),
		})
	}
	return rows
}

func fileRows(files []history.File) [][]string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Path, f.Kind, f.Status, cleaner.Seconds(f.Duration), f.Error})
	}
	return rows
}
