package domain

import "context"

// ServicePort defines the dedupe service contract
type ServicePort interface {
	Check(ctx context.Context, in CheckInput) (CheckResult, error)
	Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error)
	Merge(ctx context.Context, in MergeInput) (MergeResult, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// MergedEvent is published after a merge commits
type MergedEvent struct {
	PrimaryID    string   `json:"primary_id"`
	DuplicateIDs []string `json:"duplicate_ids"`
	Reassigned   int64    `json:"reassigned"`
}

// EventCustomerMerged is the event type for MergedEvent
const EventCustomerMerged = "customer.merged"
