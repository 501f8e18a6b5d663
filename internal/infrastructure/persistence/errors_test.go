package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	cause := errors.New("connection refused")
	validation := shared.NewValidationError("bad")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, shared.CodeConcurrencyConflict},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), shared.CodeConcurrencyConflict},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, shared.CodeConcurrencyConflict},
		{"unique violation", &pgconn.PgError{Code: "23505"}, shared.CodeInfrastructure},
		{"record not found", gorm.ErrRecordNotFound, shared.CodeNotFound},
		{"plain error", cause, shared.CodeInfrastructure},
		{"domain error", validation, shared.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError("create sale", tt.err)
			assert.True(t, shared.IsCode(got, tt.wantCode), "got %v", got)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, TranslateError("op", nil))
	})

	t.Run("domain errors are returned as is", func(t *testing.T) {
		assert.Same(t, validation, TranslateError("op", validation))
	})

	t.Run("infrastructure error keeps its cause but hides it", func(t *testing.T) {
		got := TranslateError("record payment", cause)
		assert.ErrorIs(t, got, cause)
		de, ok := shared.AsDomainError(got)
		assert.True(t, ok)
		assert.NotContains(t, de.Message, "connection refused")
	})
}
