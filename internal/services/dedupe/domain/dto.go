// Package domain holds DTOs for the dedupe http and service contracts
package domain

import "lookalike/internal/core/match"

// Check statuses
const (
	StatusOK      = "ok"
	StatusUnknown = "unknown"
	StatusStale   = "stale"
)

// CheckInput is a customer record being typed into a form
type CheckInput struct {
	ID          string `json:"id,omitempty" validate:"omitempty,uuid" example:"3f0c2a0e-8a0e-4a8b-9b55-5c2a3c3d9e01"`
	FullName    string `json:"full_name,omitempty" validate:"omitempty,max=200" example:"John Smith"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=40" example:"+974 5555 1234"`
	Email       string `json:"email,omitempty" validate:"omitempty,max=254" example:"john.smith@example.com"`
	SessionID   string `json:"session_id,omitempty" validate:"omitempty,max=128" example:"form-7f3a"`
}

// Match is a scored record; phone and email are null for name only matches
type Match struct {
	ID          string        `json:"id"`
	FullName    *string       `json:"full_name"`
	PhoneNumber *string       `json:"phone_number"`
	Email       *string       `json:"email"`
	Similarity  float64       `json:"similarity" example:"0.9"`
	Reasons     match.Reasons `json:"reasons" swaggertype:"array,string" example:"exact_phone"`
	Labels      []string      `json:"labels" example:"Exact phone number match"`
}

// CheckResult lists at most five matches, best first
type CheckResult struct {
	Status  string  `json:"status" example:"ok"`
	Matches []Match `json:"matches"`
}

// AnalyzeInput starts a bulk duplicate analysis
type AnalyzeInput struct {
	Role      string  `json:"role,omitempty" validate:"omitempty,max=64" example:"customer"`
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=1" example:"0.7"`
}

// Cluster is a group of records believed to be one customer, anchor first
type Cluster struct {
	Members    []Match       `json:"members"`
	Similarity float64       `json:"similarity" example:"1"`
	Reasons    match.Reasons `json:"reasons" swaggertype:"array,string" example:"exact_phone"`
}

// AnalyzeResult is the outcome of a bulk analysis run
type AnalyzeResult struct {
	RunID           string    `json:"run_id" example:"b7f1c1c4-5e0b-4c8e-9d59-1b6d2f0c8a11"`
	Clusters        []Cluster `json:"clusters"`
	TotalDuplicates int       `json:"total_duplicates" example:"12"`
	ProcessedCount  int       `json:"processed_count" example:"480"`
	Overlapping     int       `json:"overlapping" example:"1"`
	RecordCount     int       `json:"record_count" example:"480"`
	DurationMs      int64     `json:"duration_ms" example:"35"`
}

// MergeInput folds duplicates into a primary record
type MergeInput struct {
	PrimaryID    string   `json:"primary_id" validate:"required,uuid" example:"3f0c2a0e-8a0e-4a8b-9b55-5c2a3c3d9e01"`
	DuplicateIDs []string `json:"duplicate_ids" validate:"required,min=1,max=100,dive,uuid" example:"9a3e6c1d-2b4f-4d6e-8a1b-0c2d3e4f5a6b"`
}

// MergeResult reports what a merge touched
type MergeResult struct {
	PrimaryID  string `json:"primary_id"`
	Merged     int64  `json:"merged" example:"2"`
	Reassigned int64  `json:"reassigned" example:"7"`
}

// Run is one recorded bulk analysis
type Run struct {
	ID         string  `json:"id"`
	StartedAt  string  `json:"started_at" example:"2025-09-03T13:00:00Z"`
	DurationMs int64   `json:"duration_ms"`
	Role       string  `json:"role"`
	Threshold  float64 `json:"threshold"`
	Records    int     `json:"records"`
	Processed  int     `json:"processed"`
	Clusters   int     `json:"clusters"`
	Duplicates int     `json:"duplicates"`
	Status     string  `json:"status" example:"ok"`
	Error      string  `json:"error,omitempty"`
}
