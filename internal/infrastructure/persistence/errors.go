package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/retail/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// SQLSTATE codes reported when concurrent transactions collide
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

// TranslateError maps a storage error to the domain error taxonomy. Domain
// errors pass through unchanged, lock contention becomes a concurrency
// conflict, a missing row becomes NotFound and anything else is an opaque
// infrastructure error that keeps its cause.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := shared.AsDomainError(err); ok {
		return err
	}
	if IsLockConflict(err) {
		return shared.NewConcurrencyConflictError(err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.WrapDomainError(shared.CodeNotFound, "Resource not found", err)
	}
	return shared.NewInfrastructureError(op, err)
}

// IsLockConflict reports whether err is a serialization failure, a deadlock
// or a lock wait timeout
func IsLockConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	default:
		return false
	}
}
