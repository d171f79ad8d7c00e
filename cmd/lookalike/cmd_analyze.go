package main

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lookalike/internal/core/cluster"
	"lookalike/internal/services/dedupe/domain"
	dedupesvc "lookalike/internal/services/dedupe/service"
)

var analyzeFlags struct {
	role      string
	threshold float64
	batch     int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Cluster every customer into duplicate groups",
	Long: `Analyze groups records sharing an exact phone or email, or whose names
sound alike and share enough name parts.

  lookalike analyze --input customers.yaml
  lookalike analyze --role customer --threshold 0.8 -f json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.role, "role", "", "Only analyze records with this role (database mode)")
	f.Float64Var(&analyzeFlags.threshold, "threshold", cluster.DefaultThreshold, "Minimum name part similarity for a name match")
	f.IntVar(&analyzeFlags.batch, "batch-size", cluster.DefaultBatchSize, "Anchors evaluated between cancellation checks (file mode)")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		res domain.AnalyzeResult
		err error
	)
	if rootFlags.input != "" {
		res, err = analyzeFile(ctx, rootFlags.input)
	} else {
		var b *backend
		if b, err = openBackend(ctx); err != nil {
			return err
		}
		defer b.Close()
		res, err = b.svc.Analyze(ctx, domain.AnalyzeInput{Role: analyzeFlags.role, Threshold: analyzeFlags.threshold})
	}
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), res, func(w io.Writer) { printAnalysis(w, res) })
}

func analyzeFile(ctx context.Context, path string) (domain.AnalyzeResult, error) {
	records, err := loadRecords(path)
	if err != nil {
		return domain.AnalyzeResult{}, err
	}
	start := time.Now()
	res, err := cluster.Run(ctx, records, cluster.NewProcessed(), cluster.Options{
		Threshold: analyzeFlags.threshold,
		BatchSize: analyzeFlags.batch,
	})
	if err != nil {
		return domain.AnalyzeResult{}, err
	}
	return dedupesvc.ToAnalyzeResult(uuid.NewString(), res, len(records), time.Since(start)), nil
}
