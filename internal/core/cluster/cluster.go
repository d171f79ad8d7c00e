// Package cluster partitions a set of customer records into duplicate clusters
// using exact phone and email buckets plus phonetic name buckets
package cluster

import (
	"context"
	"sort"

	"lookalike/internal/core/match"
)

// Defaults used when Options leave a field at zero
const (
	DefaultThreshold = 0.7
	DefaultBatchSize = 50
)

// Options tune a clustering run
type Options struct {
	// Threshold is the minimum name part similarity for a phonetic bucket hit
	Threshold float64
	// BatchSize is the number of anchors evaluated between cancellation checks
	BatchSize int
	// OnBatch is called after each batch with the anchors handled so far
	OnBatch func(done, total int)
}

// Cluster is a group of records believed to be the same customer
// Members[0] is the anchor
type Cluster struct {
	Members    []match.Candidate
	Similarity float64
	Reasons    match.Reasons
}

// Anchor returns the seed record of the cluster
func (c Cluster) Anchor() match.Candidate { return c.Members[0] }

// Duplicates returns the non anchor members
func (c Cluster) Duplicates() []match.Candidate { return c.Members[1:] }

// Result is the outcome of a clustering run
type Result struct {
	Clusters        []Cluster
	TotalDuplicates int
	ProcessedCount  int
	// Overlapping counts clusters sharing a member with an earlier cluster
	Overlapping int
}

// Processed is the set of record ids already used as anchors
// it is owned by the caller and grows as a run progresses
type Processed map[string]struct{}

// NewProcessed returns an empty set
func NewProcessed() Processed { return Processed{} }

// Has reports whether id was already used as an anchor
func (p Processed) Has(id string) bool {
	_, ok := p[id]
	return ok
}

// Mark records id as processed
func (p Processed) Mark(id string) { p[id] = struct{}{} }

// Len returns the number of processed ids
func (p Processed) Len() int { return len(p) }

// FindBulkDuplicates clusters records with a fresh processed set
func FindBulkDuplicates(ctx context.Context, records []match.Record, threshold float64) (Result, error) {
	return Run(ctx, records, NewProcessed(), Options{Threshold: threshold})
}

// Run clusters records, skipping ids already present in processed and
// marking every anchor it evaluates. Only anchors are marked, so a record
// found as a duplicate may still seed its own, overlapping cluster later on.
func Run(ctx context.Context, records []match.Record, processed Processed, opt Options) (Result, error) {
	if processed == nil {
		processed = NewProcessed()
	}
	if opt.Threshold <= 0 {
		opt.Threshold = DefaultThreshold
	}
	if opt.BatchSize <= 0 {
		opt.BatchSize = DefaultBatchSize
	}

	idx := buildIndex(records, processed)

	var res Result
	for start := 0; start < len(records); start += opt.BatchSize {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		end := start + opt.BatchSize
		if end > len(records) {
			end = len(records)
		}

		for i := start; i < end; i++ {
			anchor := records[i]
			if processed.Has(anchor.ID) {
				continue
			}
			if c, ok := idx.clusterFor(i, processed, opt.Threshold); ok {
				res.Clusters = append(res.Clusters, c)
				res.TotalDuplicates += len(c.Members) - 1
			}
			processed.Mark(anchor.ID)
			res.ProcessedCount++
		}

		if opt.OnBatch != nil {
			opt.OnBatch(end, len(records))
		}
	}

	res.Overlapping = overlapping(res.Clusters)
	sort.SliceStable(res.Clusters, func(i, j int) bool {
		return res.Clusters[i].Similarity > res.Clusters[j].Similarity
	})
	return res, nil
}

func overlapping(cs []Cluster) int {
	seen := map[string]struct{}{}
	n := 0
	for _, c := range cs {
		shared := false
		for _, m := range c.Members {
			if _, ok := seen[m.ID]; ok {
				shared = true
			}
			seen[m.ID] = struct{}{}
		}
		if shared {
			n++
		}
	}
	return n
}
