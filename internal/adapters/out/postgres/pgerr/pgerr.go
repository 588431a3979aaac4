// Package pgerr classifies PostgreSQL driver errors for the dispatch repositories.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the repositories react to.
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
	CodeLockNotAvailable     = "55P03"
	CodeAdminShutdown        = "57P01"
)

// LiveAssignmentIndex is the partial unique index that keeps one live assignment per order.
const LiveAssignmentIndex = "ux_delivery_assignments_live_order"

// IsTransient reports whether err is worth retrying with a fresh transaction.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errs.ErrTransientStorage) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable, CodeAdminShutdown:
			return true
		}
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation reports whether err is a unique violation, optionally of one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) && constraint == "" {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Translate wraps transient failures of op in a TransientStorageError and returns every
// other error unchanged.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrTransientStorage) {
		return err
	}
	if IsTransient(err) {
		return errs.NewTransientStorageError(op, err)
	}
	return err
}
