package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"lookalike/internal/core/match"
	"lookalike/internal/services/dedupe/domain"
	dedupesvc "lookalike/internal/services/dedupe/service"
)

var checkFlags struct {
	id    string
	name  string
	phone string
	email string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List stored records that look like the given one",
	Long: `Check scores one record against the store and prints at most five
likely duplicates, best first.

  lookalike check --name "Jon Smith" --phone "+974 5555 1234"
  lookalike check -i customers.json --email alice@example.com`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.id, "id", "", "Id of the record being edited, excluded from results")
	f.StringVar(&checkFlags.name, "name", "", "Full name")
	f.StringVar(&checkFlags.phone, "phone", "", "Phone number")
	f.StringVar(&checkFlags.email, "email", "", "Email address")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		res domain.CheckResult
		err error
	)
	if rootFlags.input != "" {
		res, err = checkFile(ctx, rootFlags.input)
	} else {
		var b *backend
		if b, err = openBackend(ctx); err != nil {
			return err
		}
		defer b.Close()
		res, err = b.svc.Check(ctx, domain.CheckInput{
			ID:          checkFlags.id,
			FullName:    checkFlags.name,
			PhoneNumber: checkFlags.phone,
			Email:       checkFlags.email,
		})
	}
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), res, func(w io.Writer) { printMatches(w, res) })
}

func checkFile(ctx context.Context, path string) (domain.CheckResult, error) {
	records, err := loadRecords(path)
	if err != nil {
		return domain.CheckResult{}, err
	}
	found, err := dedupesvc.NewMatcher(fileSource{records: records}, 0, 0).FindPotentialDuplicates(ctx, match.Record{
		ID:          checkFlags.id,
		FullName:    checkFlags.name,
		PhoneNumber: checkFlags.phone,
		Email:       checkFlags.email,
	})
	if err != nil {
		return domain.CheckResult{}, err
	}
	out := domain.CheckResult{Status: domain.StatusOK, Matches: make([]domain.Match, 0, len(found))}
	for _, c := range found {
		out.Matches = append(out.Matches, dedupesvc.ToMatch(c))
	}
	return out, nil
}
