package pgerr_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerr.CodeSerializationFailure}, want: true},
		{name: "deadlock wrapped", err: fmt.Errorf("update: %w", &pgconn.PgError{Code: pgerr.CodeDeadlockDetected}),
			want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerr.CodeUniqueViolation}, want: false},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "already classified", err: errs.NewTransientStorageError("x", nil), want: true},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerr.IsTransient(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: pgerr.CodeUniqueViolation, ConstraintName: pgerr.LiveAssignmentIndex}

	assert.True(t, pgerr.IsUniqueViolation(err, ""))
	assert.True(t, pgerr.IsUniqueViolation(err, pgerr.LiveAssignmentIndex))
	assert.False(t, pgerr.IsUniqueViolation(err, "orders_pkey"))
	assert.False(t, pgerr.IsUniqueViolation(errors.New("x"), ""))
}

func TestTranslate(t *testing.T) {
	deadlock := &pgconn.PgError{Code: pgerr.CodeDeadlockDetected}

	err := pgerr.Translate("commit", deadlock)
	assert.ErrorIs(t, err, errs.ErrTransientStorage)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)

	plain := errors.New("boom")
	assert.Same(t, plain, pgerr.Translate("commit", plain))
	assert.NoError(t, pgerr.Translate("commit", nil))
}
