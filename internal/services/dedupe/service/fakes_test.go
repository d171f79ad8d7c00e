package service

import (
	"context"
	"sync"

	"lookalike/internal/modkit/repokit"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/store"
	"lookalike/internal/services/dedupe/repo"
	"lookalike/internal/services/dedupe/runlog"
)

// fakeRepo serves canned rows and counts calls; safe for the concurrent matcher
type fakeRepo struct {
	mu sync.Mutex

	recent    []repo.Row
	named     []repo.Row
	all       []repo.Row
	recentErr error
	fuzzyErr  error
	fetchErr  error

	mergeErrs []error
	marked    int64
	reassign  int64

	recentCalls, fuzzyCalls, mergeCalls int
	lastSelf, lastExclude, lastName     string
	lastDups                            []string
}

func (f *fakeRepo) QueryRecordsExcluding(_ context.Context, selfID string, _ int) ([]repo.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentCalls++
	f.lastSelf = selfID
	return f.recent, f.recentErr
}

func (f *fakeRepo) FuzzyNameSearch(_ context.Context, name, excludeID string, _ int) ([]repo.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fuzzyCalls++
	f.lastName, f.lastExclude = name, excludeID
	return f.named, f.fuzzyErr
}

func (f *fakeRepo) FetchAllRecords(context.Context, string) ([]repo.Row, error) {
	return f.all, f.fetchErr
}

func (f *fakeRepo) MergeRecords(_ context.Context, _ string, dups []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergeCalls++
	f.lastDups = dups
	if len(f.mergeErrs) > 0 {
		err := f.mergeErrs[0]
		f.mergeErrs = f.mergeErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	return f.reassign, nil
}

func (f *fakeRepo) MarkMerged(context.Context, []string, string) (int64, error) {
	return f.marked, nil
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

// fakeTx runs fn inline without a database
type fakeTx struct{ calls int }

func (f *fakeTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	f.calls++
	return fn(f)
}
func (f *fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row            { return nil }

type fakePub struct{ got []events.Event }

func (p *fakePub) Publish(_ context.Context, evs ...events.Event) error {
	p.got = append(p.got, evs...)
	return nil
}
func (p *fakePub) Close() error { return nil }

type fakeRuns struct {
	entries []runlog.Entry
}

func (r *fakeRuns) Record(_ context.Context, e runlog.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeRuns) Recent(context.Context, int) ([]runlog.Entry, error) { return r.entries, nil }

func row(id, name, phone, email string) repo.Row {
	r := repo.Row{ID: id}
	if name != "" {
		r.FullName = &name
	}
	if phone != "" {
		r.PhoneNumber = &phone
	}
	if email != "" {
		r.Email = &email
	}
	return r
}

func newTestSvc(r *fakeRepo, opts ...Option) (*Svc, *fakeTx) {
	tx := &fakeTx{}
	return New(tx, fakeBinder{r: r}, opts...), tx
}
