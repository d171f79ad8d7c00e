package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lookalike/internal/platform/config"
	"lookalike/internal/platform/logger"
	"lookalike/internal/platform/store/schema"
	deduperepo "lookalike/internal/services/dedupe/repo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the customers schema migrations",
	Long: `Migrate brings SERVICE_PGSQL_DBURL up to the latest embedded schema:
the customers table, soft delete columns and the trigram name index.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url := config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")
		res, err := schema.Up(schema.Config{URL: url, FS: deduperepo.Migrations, Dir: deduperepo.MigrationsDir}, *logger.Get())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), res, func(w io.Writer) {
			if !res.Changed {
				fmt.Fprintf(w, "%s\n", gray(fmt.Sprintf("schema already at version %d", res.To)))
				return
			}
			fmt.Fprintf(w, "%s\n", green(fmt.Sprintf("schema migrated %d -> %d", res.From, res.To)))
		})
	},
}
