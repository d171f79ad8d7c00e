package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var runsFlags struct{ limit int }

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent bulk analysis runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if rootFlags.input != "" {
			return errors.New("runs are kept in clickhouse; drop --input")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		runs, err := b.svc.Runs(ctx, runsFlags.limit)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), runs, func(w io.Writer) {
			if len(runs) == 0 {
				fmt.Fprintf(w, "%s\n", gray("no runs recorded"))
				return
			}
			for _, r := range runs {
				status := green(r.Status)
				if r.Status != "ok" {
					status = yellow(r.Status)
				}
				fmt.Fprintf(w, "%s  %s  %s  %d records, %d clusters, %d duplicates, %dms\n",
					r.StartedAt, cyan(r.ID), status, r.Records, r.Clusters, r.Duplicates, r.DurationMs)
			}
		})
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsFlags.limit, "limit", 20, "Number of runs to show")
}
