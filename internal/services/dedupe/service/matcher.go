package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lookalike/internal/core/match"
	str "lookalike/internal/platform/strings"
	"lookalike/internal/services/dedupe/repo"
)

// MaxMatches caps the interactive result list
const MaxMatches = 5

// Source is the read side of the record store the matcher queries
type Source interface {
	QueryRecordsExcluding(ctx context.Context, selfID string, limit int) ([]repo.Row, error)
	FuzzyNameSearch(ctx context.Context, name, excludeID string, limit int) ([]repo.Row, error)
}

// Matcher finds likely duplicates of a single record while it is being edited
type Matcher struct {
	src         Source
	recentLimit int
	fuzzyLimit  int
}

// NewMatcher builds a matcher over src; zero limits fall back to the repo defaults
func NewMatcher(src Source, recentLimit, fuzzyLimit int) *Matcher {
	return &Matcher{src: src, recentLimit: recentLimit, fuzzyLimit: fuzzyLimit}
}

// FindPotentialDuplicates scores stored records against c by phone, then name,
// then email. A record is reported once under the first signal that found it.
// The result is sorted by similarity and holds at most MaxMatches entries.
func (m *Matcher) FindPotentialDuplicates(ctx context.Context, c match.Record) ([]match.Candidate, error) {
	if c.Empty() {
		return nil, nil
	}

	var recent, named []repo.Row
	g, gctx := errgroup.WithContext(ctx)
	if c.PhoneNumber != "" || c.Email != "" {
		g.Go(func() error {
			rows, err := m.src.QueryRecordsExcluding(gctx, c.ID, m.recentLimit)
			recent = rows
			return err
		})
	}
	if match.NormalizeName(c.FullName) != "" {
		g.Go(func() error {
			rows, err := m.src.FuzzyNameSearch(gctx, c.FullName, c.ID, m.fuzzyLimit)
			named = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		out  []match.Candidate
		seen = map[string]struct{}{}
	)
	keep := func(r match.Record, s match.Signal) {
		if !s.Matched() || r.ID == "" || r.ID == c.ID {
			return
		}
		if _, dup := seen[r.ID]; dup {
			return
		}
		seen[r.ID] = struct{}{}
		out = append(out, match.FromRecord(r, s))
	}

	if c.PhoneNumber != "" {
		for _, row := range recent {
			r := toRecord(row)
			keep(r, match.ComparePhones(c.PhoneNumber, r.PhoneNumber))
		}
	}
	for _, row := range named {
		// phone and email are unknown at this stage
		r := match.Record{ID: row.ID, FullName: str.Deref(row.FullName)}
		keep(r, match.CompareNames(c.FullName, r.FullName))
	}
	if c.Email != "" {
		for _, row := range recent {
			r := toRecord(row)
			keep(r, match.CompareEmails(c.Email, r.Email))
		}
	}

	match.SortBySimilarity(out)
	if len(out) > MaxMatches {
		out = out[:MaxMatches]
	}
	return out, nil
}

func toRecord(r repo.Row) match.Record {
	return match.Record{
		ID:          r.ID,
		FullName:    str.Deref(r.FullName),
		PhoneNumber: str.Deref(r.PhoneNumber),
		Email:       str.Deref(r.Email),
	}
}
