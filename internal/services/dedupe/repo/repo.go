// Package repo provides postgres access to customer records for duplicate detection
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"lookalike/internal/modkit/repokit"
	perr "lookalike/internal/platform/errors"
	"lookalike/internal/platform/store"
)

// Repo defines the record store contract the matchers consume
type Repo interface {
	// QueryRecordsExcluding returns the most recently created records other than selfID
	QueryRecordsExcluding(ctx context.Context, selfID string, limit int) ([]Row, error)
	// FuzzyNameSearch returns records whose name is lexically or phonetically close
	FuzzyNameSearch(ctx context.Context, name, excludeID string, limit int) ([]Row, error)
	// FetchAllRecords returns every live record, optionally filtered by role
	FetchAllRecords(ctx context.Context, role string) ([]Row, error)
	// MergeRecords points every configured reference at primaryID
	MergeRecords(ctx context.Context, primaryID string, duplicateIDs []string) (int64, error)
	// MarkMerged soft deletes the duplicates and links them to primaryID
	MarkMerged(ctx context.Context, duplicateIDs []string, primaryID string) (int64, error)
}

// Row is a customer row; nullable columns stay pointers
type Row struct {
	ID          string
	FullName    *string
	PhoneNumber *string
	Email       *string
}

// Reference is a foreign key column that points at customers.id
type Reference struct {
	Table  string
	Column string
}

// ParseReferences reads "table:column" pairs, skipping blanks
func ParseReferences(pairs []string) ([]Reference, error) {
	var out []Reference
	for _, p := range pairs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		t, c, ok := strings.Cut(p, ":")
		t, c = strings.TrimSpace(t), strings.TrimSpace(c)
		if !ok || t == "" || c == "" {
			return nil, perr.InvalidArgf("merge reference %q must look like table:column", p)
		}
		out = append(out, Reference{Table: t, Column: c})
	}
	return out, nil
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{ refs []Reference }

	// queries holds the database query methods
	queries struct {
		q    repokit.Queryer
		refs []Reference
	}
)

// NewPG creates a Postgres repository binder; refs are reassigned on merge
func NewPG(refs ...Reference) repokit.Binder[Repo] { return PG{refs: refs} }

// Bind binds a Postgres queryer to the Repo implementation
func (p PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, refs: p.refs} }

func (r *queries) QueryRecordsExcluding(ctx context.Context, selfID string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 200
	}
	const sql = `
select c.id::text, c.full_name, c.phone_number, c.email
from customers c
where c.deleted_at is null
and ($1 = '' or c.id::text <> $1)
order by c.created_at desc, c.id
limit $2
`
	rows, err := r.scan(ctx, sql, selfID, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "query recent customers")
	}
	return rows, nil
}

func (r *queries) FuzzyNameSearch(ctx context.Context, name, excludeID string, limit int) ([]Row, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	// trigram similarity for typos, soundex and dmetaphone for spelling variants
	const sql = `
select c.id::text, c.full_name, null::text, null::text
from customers c
where c.deleted_at is null
and c.full_name is not null
and ($2 = '' or c.id::text <> $2)
and (
  c.full_name % $1
  or soundex(c.full_name) = soundex($1)
  or dmetaphone(c.full_name) = dmetaphone($1)
)
order by similarity(c.full_name, $1) desc, c.id
limit $3
`
	rows, err := r.scan(ctx, sql, name, excludeID, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "fuzzy name search")
	}
	return rows, nil
}

func (r *queries) FetchAllRecords(ctx context.Context, role string) ([]Row, error) {
	const sql = `
select c.id::text, c.full_name, c.phone_number, c.email
from customers c
where c.deleted_at is null
and ($1 = '' or c.role = $1)
order by c.created_at, c.id
`
	rows, err := r.scan(ctx, sql, strings.TrimSpace(role))
	if err != nil {
		return nil, perr.FromPostgres(err, "fetch customers")
	}
	return rows, nil
}

func (r *queries) MergeRecords(ctx context.Context, primaryID string, duplicateIDs []string) (int64, error) {
	var total int64
	for _, ref := range r.refs {
		sql := fmt.Sprintf(
			"update %s set %s = $1::uuid where %s = any($2::uuid[])",
			pgx.Identifier{ref.Table}.Sanitize(),
			pgx.Identifier{ref.Column}.Sanitize(),
			pgx.Identifier{ref.Column}.Sanitize(),
		)
		tag, err := r.q.Exec(ctx, sql, primaryID, duplicateIDs)
		if err != nil {
			return total, perr.FromPostgresf(err, "reassign %s.%s", ref.Table, ref.Column)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func (r *queries) MarkMerged(ctx context.Context, duplicateIDs []string, primaryID string) (int64, error) {
	const sql = `
update customers
set deleted_at = now(), merged_into = $1::uuid
where id = any($2::uuid[])
and deleted_at is null
and id <> $1::uuid
`
	tag, err := r.q.Exec(ctx, sql, primaryID, duplicateIDs)
	if err != nil {
		return 0, perr.FromPostgres(err, "mark customers merged")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) scan(ctx context.Context, sql string, args ...any) ([]Row, error) {
	return store.Many(ctx, r.q, scanRow, sql, args...)
}

func scanRow(row store.Row) (Row, error) {
	var rr Row
	err := row.Scan(&rr.ID, &rr.FullName, &rr.PhoneNumber, &rr.Email)
	return rr, err
}
