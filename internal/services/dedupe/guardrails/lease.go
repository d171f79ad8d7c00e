// Package guardrails keeps bulk analysis runs from overlapping across instances
// and bounds how long merge transactions wait on row locks
package guardrails

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"lookalike/internal/modkit/repokit"
)

// ErrLeaseHeld signals another instance owns the lease already
var ErrLeaseHeld = errors.New("dedupe: lease already held")

// Lease runs do while holding the named lease
type Lease func(ctx context.Context, name string, do func(context.Context) error) error

// MakeLease claims rows in dedupe_leases. A lease whose expires_at has passed
// is reclaimed by the next caller; a finished run releases its own row.
func MakeLease(db repokit.TxRunner, owner string, ttl time.Duration) Lease {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	interval := fmt.Sprintf("%d seconds", int64(ttl/time.Second))

	return func(ctx context.Context, name string, do func(context.Context) error) error {
		var claimed bool
		err := db.Tx(ctx, func(q repokit.Queryer) error {
			rows, err := q.Query(ctx, `
				insert into dedupe_leases (name, owner, claimed_at, expires_at)
				values ($1, $2, now(), now() + ($3)::interval)
				on conflict (name) do update
				   set owner = excluded.owner, claimed_at = excluded.claimed_at, expires_at = excluded.expires_at
				 where dedupe_leases.expires_at <= now()
				returning true
			`, name, owner, interval)
			if err != nil {
				return err
			}
			defer rows.Close()
			claimed = rows.Next()
			return rows.Err()
		})
		if err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld
		}

		defer func() {
			// release even when the caller went away
			_, _ = db.Exec(context.WithoutCancel(ctx),
				`delete from dedupe_leases where name = $1 and owner = $2`, name, owner)
		}()
		return do(ctx)
	}
}

// LockTimeout returns a begin hook that caps row lock waits for the tx
func LockTimeout(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		if d <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, `select set_config('lock_timeout', $1, true)`, fmt.Sprintf("%dms", d.Milliseconds()))
		return err
	}
}
