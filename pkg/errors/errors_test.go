package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeRateLimit:    http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
		CodeDependency:   http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		assert.Equal(t, status, MetadataFor(code).HTTPStatus, "code %s", code)
	}
	assert.Equal(t, http.StatusInternalServerError, MetadataFor("SOMETHING_UNKNOWN").HTTPStatus)
}

func TestPublicMessageHidesInternalText(t *testing.T) {
	assert.Equal(t, "quantity must be positive", New(CodeValidation, "quantity must be positive").PublicMessage())
	assert.Equal(t, "validation failed", New(CodeValidation, "").PublicMessage())
	assert.Equal(t, "internal server error", New(CodeInternal, "sql: connection reset").PublicMessage())
	assert.Equal(t, "dependency unavailable", New(CodeDependency, "redis timeout").PublicMessage())

	var nilErr *Error
	assert.Equal(t, "internal server error", nilErr.PublicMessage())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	wrapped := Wrap(CodeDependency, cause, "load weight rate bands")

	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, CodeDependency, wrapped.Code())
	assert.Equal(t, "[DEPENDENCY_ERROR] load weight rate bands: connection refused", wrapped.Error())
	assert.Equal(t, "[NOT_FOUND] product not found", New(CodeNotFound, "product not found").Error())
}

func TestIsCodeAndRetryable(t *testing.T) {
	err := fmt.Errorf("quote: %w", New(CodeNotFound, "order not found"))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeValidation))
	assert.False(t, IsCode(nil, CodeNotFound))

	assert.False(t, Retryable(err))
	assert.True(t, Retryable(Wrap(CodeDependency, stdErrors.New("redis"), "cache")))
	assert.True(t, Retryable(stdErrors.New("untyped")))
	assert.False(t, Retryable(nil))
}

func TestDumpCollectsChainAndPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_vendor_shipping_rules_vendor_min_qty", TableName: "vendor_shipping_rules"}
	d := DumpOf(Wrap(CodeConflict, fmt.Errorf("insert rule: %w", pgErr), "duplicate rule"))

	assert.Equal(t, CodeConflict, d.Code)
	assert.Len(t, d.Chain, 3)
	assert.Equal(t, "23505", d.PGCode)

	fields := d.LogFields()
	assert.Equal(t, "vendor_shipping_rules", fields["pg_table"])
	assert.NotContains(t, fields, "pg_column")
	assert.Equal(t, "CONFLICT", fields["error_code"])
}

func TestDumpReadsLibPQErrors(t *testing.T) {
	d := DumpOf(fmt.Errorf("migrate: %w", &pq.Error{Code: "42P01", Message: "relation does not exist"}))
	assert.Equal(t, "42P01", d.PGCode)
	assert.Equal(t, "relation does not exist", d.PGMessage)
}

func TestDumpListsCombinedCauses(t *testing.T) {
	err := multierr.Combine(stdErrors.New("band 0: cost must be >= 0"), stdErrors.New("band 1: max_weight must be greater than min_weight"))
	d := DumpOf(err)
	assert.Len(t, d.Causes, 2)
	assert.Contains(t, d.LogFields(), "error_causes")

	assert.Equal(t, Dump{}, DumpOf(nil))
}
