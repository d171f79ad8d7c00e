// Package service contains the duplicate detection workflows: interactive
// checks, bulk analysis runs and merges
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lookalike/internal/core/cluster"
	"lookalike/internal/core/debounce"
	"lookalike/internal/core/match"
	"lookalike/internal/modkit/repokit"
	perr "lookalike/internal/platform/errors"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/logger"
	"lookalike/internal/platform/metrics"
	str "lookalike/internal/platform/strings"
	"lookalike/internal/services/dedupe/domain"
	"lookalike/internal/services/dedupe/guardrails"
	"lookalike/internal/services/dedupe/repo"
	"lookalike/internal/services/dedupe/runlog"
)

// Service defines the service contract for dedupe
type Service interface{ domain.ServicePort }

// Config tunes the dedupe workflows; zero fields take defaults
type Config struct {
	RecentLimit  int
	FuzzyLimit   int
	Threshold    float64
	BatchSize    int
	Debounce     time.Duration
	SessionTTL   time.Duration
	MergeRetries int
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		RecentLimit:  200,
		FuzzyLimit:   50,
		Threshold:    cluster.DefaultThreshold,
		BatchSize:    cluster.DefaultBatchSize,
		Debounce:     500 * time.Millisecond,
		SessionTTL:   10 * time.Minute,
		MergeRetries: 3,
	}
}

// Option configures a Svc
type Option func(*Svc)

// WithConfig overrides the tuning
func WithConfig(c Config) Option { return func(s *Svc) { s.cfg = c } }

// WithPublisher sets where merge events go
func WithPublisher(p events.Publisher) Option {
	return func(s *Svc) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithRunLog sets the bulk run ledger
func WithRunLog(r runlog.Recorder) Option {
	return func(s *Svc) {
		if r != nil {
			s.runs = r
		}
	}
}

// WithLease serializes bulk analysis runs behind lease
func WithLease(l guardrails.Lease) Option { return func(s *Svc) { s.lease = l } }

// WithMetrics registers the dedupe collectors on reg
func WithMetrics(reg *metrics.Registry) Option { return func(s *Svc) { s.met = newCollectors(reg) } }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	cfg      Config
	matcher  *Matcher
	sessions *debounce.Sessions
	pub      events.Publisher
	runs     runlog.Recorder
	met      *collectors
	lease    guardrails.Lease
	now      func() time.Time
}

// New creates a new dedupe service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("dedupe.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dedupe.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		cfg:    DefaultConfig(),
		pub:    events.Nop{},
		runs:   runlog.Nop{},
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.cfg = withDefaults(s.cfg)
	s.matcher = NewMatcher(s.Repo, s.cfg.RecentLimit, s.cfg.FuzzyLimit)
	s.sessions = debounce.NewSessions(s.cfg.Debounce, s.cfg.SessionTTL)
	return s
}

func withDefaults(c Config) Config {
	d := DefaultConfig()
	if c.RecentLimit <= 0 {
		c.RecentLimit = d.RecentLimit
	}
	if c.FuzzyLimit <= 0 {
		c.FuzzyLimit = d.FuzzyLimit
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = d.Threshold
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Debounce < 0 {
		c.Debounce = 0
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.MergeRetries < 0 {
		c.MergeRetries = 0
	}
	return c
}

// Check scores a record being edited against the store. Calls sharing a
// SessionID are debounced and a call overtaken by a newer one reports stale.
func (s *Svc) Check(ctx context.Context, in domain.CheckInput) (domain.CheckResult, error) {
	if in.SessionID == "" {
		return s.check(ctx, in)
	}
	res, err := debounce.Do(ctx, s.sessions.Get(in.SessionID), func(ctx context.Context) (domain.CheckResult, error) {
		return s.check(ctx, in)
	})
	if errors.Is(err, debounce.ErrSuperseded) {
		s.met.check(domain.StatusStale, 0)
		return domain.CheckResult{Status: domain.StatusStale, Matches: []domain.Match{}}, nil
	}
	return res, err
}

func (s *Svc) check(ctx context.Context, in domain.CheckInput) (domain.CheckResult, error) {
	start := s.now()
	found, err := s.matcher.FindPotentialDuplicates(ctx, match.Record{
		ID:          strings.TrimSpace(in.ID),
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	})
	if err != nil {
		s.met.check(domain.StatusUnknown, 0)
		return domain.CheckResult{}, err
	}
	s.met.check(domain.StatusOK, s.now().Sub(start))

	out := make([]domain.Match, 0, len(found))
	for _, c := range found {
		out = append(out, ToMatch(c))
	}
	return domain.CheckResult{Status: domain.StatusOK, Matches: out}, nil
}

// Analyze clusters every live record and records the run in the ledger
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeResult, error) {
	log := logger.C(ctx).With().Str("mod", "dedupe").Logger()
	start := s.now()
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = s.cfg.Threshold
	}
	entry := runlog.Entry{ID: uuid.NewString(), StartedAt: start, Role: in.Role, Threshold: threshold}

	var (
		res cluster.Result
		n   int
	)
	err := s.withLease(ctx, func(ctx context.Context) error {
		var aerr error
		res, n, aerr = s.analyze(ctx, in.Role, threshold)
		return aerr
	})
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		s.met.analyze("busy", 0, 0)
		return domain.AnalyzeResult{}, perr.Conflictf("another analysis is already running")
	}
	entry.Duration = s.now().Sub(start)
	entry.Records = n
	entry.Processed = res.ProcessedCount
	entry.Clusters = len(res.Clusters)
	entry.Duplicates = res.TotalDuplicates
	entry.Status = "ok"
	if err != nil {
		entry.Status, entry.Error = "failed", err.Error()
	}
	s.met.analyze(entry.Status, entry.Duration, entry.Clusters)

	// the ledger outlives the request
	if rerr := s.runs.Record(context.WithoutCancel(ctx), entry); rerr != nil {
		log.Warn().Err(rerr).Str("run_id", entry.ID).Msg("dedupe: run ledger write failed")
	}
	if err != nil {
		return domain.AnalyzeResult{}, err
	}

	log.Info().
		Str("run_id", entry.ID).
		Int("records", n).
		Int("clusters", entry.Clusters).
		Int("duplicates", entry.Duplicates).
		Int("overlapping", res.Overlapping).
		Dur("took", entry.Duration).
		Msg("dedupe: analysis complete")

	return ToAnalyzeResult(entry.ID, res, n, entry.Duration), nil
}

func (s *Svc) withLease(ctx context.Context, fn func(context.Context) error) error {
	if s.lease == nil {
		return fn(ctx)
	}
	return s.lease(ctx, "analyze", fn)
}

func (s *Svc) analyze(ctx context.Context, role string, threshold float64) (cluster.Result, int, error) {
	rows, err := s.Repo.FetchAllRecords(ctx, role)
	if err != nil {
		return cluster.Result{}, 0, err
	}
	records := make([]match.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, toRecord(r))
	}
	res, err := cluster.Run(ctx, records, cluster.NewProcessed(), cluster.Options{
		Threshold: threshold,
		BatchSize: s.cfg.BatchSize,
		OnBatch: func(done, total int) {
			logger.C(ctx).Debug().Int("done", done).Int("total", total).Msg("dedupe: batch")
		},
	})
	if err != nil {
		return cluster.Result{}, len(records), perr.Wrap(err, perr.ErrorCodeUnavailable, "analysis interrupted")
	}
	return res, len(records), nil
}

// Merge repoints references from the duplicates to the primary record and
// soft deletes the duplicates in one transaction
func (s *Svc) Merge(ctx context.Context, in domain.MergeInput) (domain.MergeResult, error) {
	primary, dups, err := normalizeMerge(in)
	if err != nil {
		return domain.MergeResult{}, err
	}

	var reassigned, merged int64
	for attempt := 0; ; attempt++ {
		err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			n, err := r.MergeRecords(ctx, primary, dups)
			if err != nil {
				return err
			}
			m, err := r.MarkMerged(ctx, dups, primary)
			if err != nil {
				return err
			}
			if m == 0 {
				return perr.NotFoundf("no live duplicates among %d ids", len(dups))
			}
			reassigned, merged = n, m
			return nil
		})
		if err == nil || attempt >= s.cfg.MergeRetries || !perr.IsRetryable(err) {
			break
		}
		logger.C(ctx).Debug().Int("attempt", attempt+1).Err(err).Msg("dedupe: merge retry")
	}
	s.met.merge(merged, err)
	if err != nil {
		return domain.MergeResult{}, err
	}

	ev := events.Event{
		Type:    domain.EventCustomerMerged,
		Key:     primary,
		Payload: domain.MergedEvent{PrimaryID: primary, DuplicateIDs: dups, Reassigned: reassigned},
	}
	if pubErr := s.pub.Publish(context.WithoutCancel(ctx), ev); pubErr != nil {
		logger.C(ctx).Warn().Err(pubErr).Str("primary_id", primary).Msg("dedupe: merge event not published")
	}
	return domain.MergeResult{PrimaryID: primary, Merged: merged, Reassigned: reassigned}, nil
}

func normalizeMerge(in domain.MergeInput) (string, []string, error) {
	primary := strings.ToLower(strings.TrimSpace(in.PrimaryID))
	if _, err := uuid.Parse(primary); err != nil {
		return "", nil, perr.InvalidArgf("primary_id %q is not a uuid", in.PrimaryID)
	}
	seen := map[string]struct{}{}
	dups := make([]string, 0, len(in.DuplicateIDs))
	for _, id := range in.DuplicateIDs {
		id = strings.ToLower(strings.TrimSpace(id))
		if _, err := uuid.Parse(id); err != nil {
			return "", nil, perr.InvalidArgf("duplicate id %q is not a uuid", id)
		}
		if id == primary {
			return "", nil, perr.InvalidArgf("primary %s cannot also be a duplicate", primary)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		dups = append(dups, id)
	}
	if len(dups) == 0 {
		return "", nil, perr.InvalidArgf("at least one duplicate id is required")
	}
	return primary, dups, nil
}

// Runs lists recent bulk analysis runs, newest first
func (s *Svc) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	entries, err := s.runs.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Run{
			ID:         e.ID,
			StartedAt:  e.StartedAt.UTC().Format(time.RFC3339),
			DurationMs: e.Duration.Milliseconds(),
			Role:       e.Role,
			Threshold:  e.Threshold,
			Records:    e.Records,
			Processed:  e.Processed,
			Clusters:   e.Clusters,
			Duplicates: e.Duplicates,
			Status:     e.Status,
			Error:      e.Error,
		})
	}
	return out, nil
}

// ToAnalyzeResult maps a clustering result to its transport shape
func ToAnalyzeResult(runID string, res cluster.Result, records int, took time.Duration) domain.AnalyzeResult {
	out := domain.AnalyzeResult{
		RunID:           runID,
		Clusters:        make([]domain.Cluster, 0, len(res.Clusters)),
		TotalDuplicates: res.TotalDuplicates,
		ProcessedCount:  res.ProcessedCount,
		Overlapping:     res.Overlapping,
		RecordCount:     records,
		DurationMs:      took.Milliseconds(),
	}
	for _, c := range res.Clusters {
		members := make([]domain.Match, 0, len(c.Members))
		for _, m := range c.Members {
			members = append(members, ToMatch(m))
		}
		out.Clusters = append(out.Clusters, domain.Cluster{
			Members:    members,
			Similarity: c.Similarity,
			Reasons:    c.Reasons,
		})
	}
	return out
}

// ToMatch maps a scored candidate; empty fields become nulls
func ToMatch(c match.Candidate) domain.Match {
	return domain.Match{
		ID:          c.ID,
		FullName:    str.Ptr(c.FullName),
		PhoneNumber: str.Ptr(c.PhoneNumber),
		Email:       str.Ptr(c.Email),
		Similarity:  c.Similarity,
		Reasons:     c.Reasons,
		Labels:      c.Reasons.Labels(),
	}
}
