package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the repos run into
var codeBySQLState = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation: input pointed at a missing customer
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation, e.g. a malformed uuid
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// retryable SQLSTATEs: serialization_failure, deadlock_detected, lock_not_available
var retryableSQLState = map[string]bool{"40001": true, "40P01": true, "55P03": true}

// PgError returns the *pgconn.PgError at the root of err, if any
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode classifies a Postgres error; ok is false for non-Postgres errors
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := codeBySQLState[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with msg and the code DBErrorCode picks, ErrorCodeDB otherwise.
// nil stays nil.
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

var retryableText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
}

// IsRetryable reports whether a merge transaction that failed with err may succeed
// when run again. Caller cancellation and deadlines never are.
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := PgError(err); ok {
		return retryableSQLState[pgErr.Code]
	}
	s := strings.ToLower(Root(err).Error())
	for _, needle := range retryableText {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
