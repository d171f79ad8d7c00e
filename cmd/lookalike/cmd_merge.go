package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lookalike/internal/services/dedupe/domain"
)

var mergeFlags struct {
	primary    string
	duplicates []string
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Fold duplicate customers into a primary record",
	Long: `Merge repoints every DEDUPE_MERGE_REFS column from the duplicates to the
primary record and soft deletes the duplicates, in one transaction.

  lookalike merge --primary <uuid> --duplicates <uuid>,<uuid>`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	f := mergeCmd.Flags()
	f.StringVar(&mergeFlags.primary, "primary", "", "Id of the record to keep")
	f.StringSliceVar(&mergeFlags.duplicates, "duplicates", nil, "Ids folded into the primary")
	_ = mergeCmd.MarkFlagRequired("primary")
	_ = mergeCmd.MarkFlagRequired("duplicates")
}

func runMerge(cmd *cobra.Command, _ []string) error {
	if rootFlags.input != "" {
		return errors.New("merge needs the database; drop --input")
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

	res, err := b.svc.Merge(ctx, domain.MergeInput{PrimaryID: mergeFlags.primary, DuplicateIDs: mergeFlags.duplicates})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), res, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", green("merged"), fmt.Sprintf("%d record(s) into %s, %d reference(s) moved", res.Merged, res.PrimaryID, res.Reassigned))
	})
}
