package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the app distinguishes
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgStringTruncation     = "22001"
	pgInvalidText          = "22P02"
	pgInvalidDatetime      = "22007"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgReadOnlyTransaction  = "25006"
	pgCannotConnectNow     = "57P03"
)

var sqlStateCodes = map[string]ErrorCode{
	pgUniqueViolation:      ErrorCodeDuplicateKey,
	pgForeignKeyViolation:  ErrorCodeInvalidArgument,
	pgNotNullViolation:     ErrorCodeValidation,
	pgCheckViolation:       ErrorCodeValidation,
	pgStringTruncation:     ErrorCodeInvalidArgument,
	pgInvalidText:          ErrorCodeInvalidArgument,
	pgInvalidDatetime:      ErrorCodeInvalidArgument,
	pgSerializationFailure: ErrorCodeDB,
	pgDeadlockDetected:     ErrorCodeDB,
	pgLockNotAvailable:     ErrorCodeDB,
	pgReadOnlyTransaction:  ErrorCodeUnavailable,
	pgCannotConnectNow:     ErrorCodeUnavailable,
}

// ExtractPgError returns the *pgconn.PgError anywhere in err's chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, state string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == state
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgUniqueViolation) }

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, pgForeignKeyViolation) }

// IsCheckViolation reports a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, pgCheckViolation) }

// IsNoRows reports pgx.ErrNoRows anywhere in the chain
func IsNoRows(err error) bool { return stderrs.Is(err, pgx.ErrNoRows) }

// ConstraintName returns the violated constraint, or "" when err is not a constraint error
func ConstraintName(err error) string {
	if pgErr, ok := ExtractPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// DBErrorCode classifies a database error; ok is false when err came from neither pgx nor Postgres
func DBErrorCode(err error) (ErrorCode, bool) {
	if IsNoRows(err) {
		return ErrorCodeNotFound, true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if code, known := sqlStateCodes[pgErr.Code]; known {
		return code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err under its mapped code; a nil err stays nil
// ErrNoRows becomes NotFound so repos can return it directly
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	if e, already := As(err); already && !ok {
		return WithOp(e, msg)
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

var retryableText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
	"terminating connection due to administrator command",
}

// IsRetryable reports transient contention worth retrying
// caller cancellation and deadlines are never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range retryableText {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
