package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
)

func TestReadError_UUIDMalFormadoEsEntradaInvalida(t *testing.T) {
	// pgx devuelve el error del servidor desde rows.Err, envuelto o no.
	err := fmt.Errorf("iterar: %w", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	got := readError("list reviews", err)
	assert.ErrorIs(t, got, domain.ErrInvalidInput)
}

func TestReadError_SinErrorDevuelveNil(t *testing.T) {
	assert.NoError(t, readError("list batches", nil))
}

func TestReadError_OtrosErroresSeEnvuelven(t *testing.T) {
	base := errors.New("conexión cerrada")

	got := readError("list products", base)
	assert.ErrorIs(t, got, base)
	assert.NotErrorIs(t, got, domain.ErrInvalidInput)
	assert.Contains(t, got.Error(), "list products")
}
