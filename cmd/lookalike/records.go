package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"lookalike/internal/core/match"
	str "lookalike/internal/platform/strings"
	"lookalike/internal/services/dedupe/repo"
)

// fileRecord is one entry of a records file; JSON is read through the yaml decoder
type fileRecord struct {
	ID          string `yaml:"id"`
	FullName    string `yaml:"full_name"`
	PhoneNumber string `yaml:"phone_number"`
	Email       string `yaml:"email"`
}

func loadRecords(path string) ([]match.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in []fileRecord
	if err := yaml.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]match.Record, 0, len(in))
	for i, r := range in {
		id := r.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		out = append(out, match.Record{ID: id, FullName: r.FullName, PhoneNumber: r.PhoneNumber, Email: r.Email})
	}
	return out, nil
}

// fileSource serves a records file to the matcher; the newest record is last
// in the file and every named record is a fuzzy candidate
type fileSource struct{ records []match.Record }

func (f fileSource) QueryRecordsExcluding(_ context.Context, selfID string, limit int) ([]repo.Row, error) {
	var out []repo.Row
	for i := len(f.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r := f.records[i]; r.ID != selfID {
			out = append(out, toRow(r))
		}
	}
	return out, nil
}

func (f fileSource) FuzzyNameSearch(_ context.Context, _ string, excludeID string, limit int) ([]repo.Row, error) {
	var out []repo.Row
	for _, r := range f.records {
		if limit > 0 && len(out) >= limit {
			break
		}
		if r.ID != excludeID && r.FullName != "" {
			out = append(out, repo.Row{ID: r.ID, FullName: str.Ptr(r.FullName)})
		}
	}
	return out, nil
}

func toRow(r match.Record) repo.Row {
	return repo.Row{
		ID:          r.ID,
		FullName:    str.Ptr(r.FullName),
		PhoneNumber: str.Ptr(r.PhoneNumber),
		Email:       str.Ptr(r.Email),
	}
}
