package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lookalike/internal/core/match"
	"lookalike/internal/services/dedupe/repo"
)

func TestFindPotentialDuplicates_PhoneSuffixMatchesLocalFormat(t *testing.T) {
	r := &fakeRepo{
		recent: []repo.Row{row("r1", "Jon Smith", "55551234", "")},
		named:  []repo.Row{row("r1", "Jon Smith", "", "")},
	}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{FullName: "John Smith", PhoneNumber: "+974 5555 1234"})
	if err != nil {
		t.Fatalf("FindPotentialDuplicates error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(got), got)
	}
	if got[0].Similarity < 0.8 {
		t.Fatalf("similarity = %v, want >= 0.8", got[0].Similarity)
	}
	if diff := cmp.Diff(match.Reasons{match.ExactPhone}, got[0].Reasons); diff != "" {
		t.Fatalf("reasons mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPotentialDuplicates_EmailDomainMismatchFallsBackToName(t *testing.T) {
	r := &fakeRepo{
		recent: []repo.Row{row("r2", "Alice Brown", "", "alice@exampl.com")},
		named:  []repo.Row{row("r2", "Alice Brown", "", "alice@exampl.com")},
	}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{FullName: "Alice Brown", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("FindPotentialDuplicates error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].Reasons.Has(match.ExactEmail) || got[0].Reasons.Has(match.SimilarEmail) {
		t.Fatalf("email must not match across domains: %v", got[0].Reasons)
	}
	if !got[0].Reasons.Has(match.SimilarNameParts) {
		t.Fatalf("want a name match, got %v", got[0].Reasons)
	}
	if got[0].Email != "" || got[0].PhoneNumber != "" {
		t.Fatalf("name only match must not carry contact fields: %+v", got[0])
	}
}

func TestFindPotentialDuplicates_EmptyCandidateSkipsQueries(t *testing.T) {
	r := &fakeRepo{}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(), match.Record{ID: "x"})
	if err != nil || got != nil {
		t.Fatalf("got %v, %v; want nil, nil", got, err)
	}
	if r.recentCalls+r.fuzzyCalls != 0 {
		t.Fatalf("expected no queries, got recent=%d fuzzy=%d", r.recentCalls, r.fuzzyCalls)
	}
}

func TestFindPotentialDuplicates_OnlyNeededQueries(t *testing.T) {
	r := &fakeRepo{}
	if _, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(), match.Record{FullName: "Ann Lee"}); err != nil {
		t.Fatal(err)
	}
	if r.recentCalls != 0 || r.fuzzyCalls != 1 {
		t.Fatalf("recent=%d fuzzy=%d, want 0 and 1", r.recentCalls, r.fuzzyCalls)
	}

	r = &fakeRepo{}
	if _, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(), match.Record{ID: "me", Email: "a@b.c"}); err != nil {
		t.Fatal(err)
	}
	if r.recentCalls != 1 || r.fuzzyCalls != 0 || r.lastSelf != "me" {
		t.Fatalf("recent=%d fuzzy=%d self=%q", r.recentCalls, r.fuzzyCalls, r.lastSelf)
	}
}

func TestFindPotentialDuplicates_SortsAndCaps(t *testing.T) {
	r := &fakeRepo{recent: []repo.Row{
		row("s1", "", "99345678", ""),
		row("s2", "", "88345678", ""),
		row("e1", "", "0412345678", ""),
		row("e2", "", "12345678", ""),
		row("e3", "", "+61 1234 5678", ""),
		row("e4", "", "(12) 34-5678", ""),
		row("s3", "", "77345678", ""),
	}}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{PhoneNumber: "0412345678"})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	want := []string{"e1", "e2", "e3", "e4", "s1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Fatalf("not sorted at %d: %+v", i, got)
		}
	}
}

func TestFindPotentialDuplicates_FirstSignalWins(t *testing.T) {
	r := &fakeRepo{
		recent: []repo.Row{row("r1", "Mark Jones", "55551234", "mark@x.io")},
		named:  []repo.Row{row("r1", "Mark Jones", "", "")},
	}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{FullName: "Mark Jones", PhoneNumber: "99 5555 1234", Email: "mark@x.io"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if diff := cmp.Diff(match.Reasons{match.ExactPhone}, got[0].Reasons); diff != "" {
		t.Fatalf("reasons mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPotentialDuplicates_ExcludesSelf(t *testing.T) {
	r := &fakeRepo{
		recent: []repo.Row{row("me", "", "55551234", "")},
		named:  []repo.Row{row("me", "Ann Lee", "", "")},
	}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{ID: "me", FullName: "Ann Lee", PhoneNumber: "55551234"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("self must not match: %+v", got)
	}
	if r.lastExclude != "me" {
		t.Fatalf("fuzzy search exclude = %q", r.lastExclude)
	}
}

func TestFindPotentialDuplicates_EmailCaseSensitive(t *testing.T) {
	r := &fakeRepo{recent: []repo.Row{row("r1", "", "", "bob@x.com")}}
	got, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(), match.Record{Email: "Bob@x.com"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Reasons.Has(match.SimilarEmail) || got[0].Similarity != match.SimilarEmailScore {
		t.Fatalf("want one similar email match, got %+v", got)
	}
}

func TestFindPotentialDuplicates_QueryErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := &fakeRepo{fuzzyErr: boom}
	_, err := NewMatcher(r, 0, 0).FindPotentialDuplicates(context.Background(),
		match.Record{FullName: "Ann Lee", PhoneNumber: "55551234"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestFindPotentialDuplicates_Deterministic(t *testing.T) {
	r := &fakeRepo{
		recent: []repo.Row{row("a", "", "11112222", ""), row("b", "", "33112222", "")},
		named:  []repo.Row{row("c", "Jon Smyth", "", ""), row("d", "John Smith", "", "")},
	}
	m := NewMatcher(r, 0, 0)
	in := match.Record{FullName: "John Smith", PhoneNumber: "11112222"}
	first, err := m.FindPotentialDuplicates(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.FindPotentialDuplicates(context.Background(), in)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}
