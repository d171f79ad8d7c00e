package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres_Classifies(t *testing.T) {
	cases := []struct {
		state string
		want  ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"22P02", ErrorCodeInvalidArgument},
		{"57P03", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
		{"XX000", ErrorCodeDB},
	}
	for _, c := range cases {
		err := FromPostgres(&pgconn.PgError{Code: c.state}, "query")
		if got := CodeOf(err); got != c.want {
			t.Fatalf("%s: code = %d want %d", c.state, got, c.want)
		}
	}

	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil stays nil")
	}
	if got := CodeOf(FromPostgresf(stderrs.New("io"), "reassign %s", "orders")); got != ErrorCodeDB {
		t.Fatalf("non-pg error code = %d", got)
	}
	if _, ok := DBErrorCode(stderrs.New("io")); ok {
		t.Fatal("non-pg error must not classify")
	}
}

func TestIsRetryable(t *testing.T) {
	wrapped := func(state string) error {
		return fmt.Errorf("merge: %w", Wrap(&pgconn.PgError{Code: state}, ErrorCodeDB, "tx"))
	}
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", wrapped("40001"), true},
		{"deadlock", wrapped("40P01"), true},
		{"lock timeout", wrapped("55P03"), true},
		{"unique", wrapped("23505"), false},
		{"commit text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"canceled", fmt.Errorf("x: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"plain", stderrs.New("boom"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("%s: IsRetryable = %v", c.name, got)
		}
	}
}
