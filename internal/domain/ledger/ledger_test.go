package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/railparts-api/internal/domain"
)

// La fórmula debe cumplirse tras cada operación: current = closing + in - out.
func TestCurrent_Formula(t *testing.T) {
	c := Counters{Closing: 100, StockIn: 30, StockOut: 20}
	assert.Equal(t, int64(110), Current(c))
}

// Escenario de referencia: 100 → IN 50 → OUT 30 → OUT 200 rechazado → cierre.
func TestApply_EscenarioCompleto(t *testing.T) {
	c := Counters{Closing: 100}

	c, err := Apply(c, MovementTypeIN, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), Current(c))

	c, err = Apply(c, MovementTypeOUT, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(120), Current(c))

	// Salida mayor al disponible: rechazada y contadores intactos
	out, err := Apply(c, MovementTypeOUT, 200)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, c, out, "los contadores no deben cambiar en un rechazo")
	assert.Equal(t, int64(120), Current(out))

	// Cierre: la cantidad actual pasa a ser la nueva base
	closed := Close(c)
	assert.Equal(t, Counters{Closing: 120}, closed)
	assert.Equal(t, Current(c), Current(closed), "el cierre no altera la cantidad actual")
}

func TestApply_CantidadInvalida(t *testing.T) {
	c := Counters{Closing: 10}
	for _, movType := range []string{MovementTypeIN, MovementTypeOUT, MovementTypeDISPOSAL} {
		_, err := Apply(c, movType, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, movType)
		_, err = Apply(c, movType, -5)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, movType)
	}
	_, err := Apply(c, MovementTypeADJUSTMENT, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApply_TipoDesconocido(t *testing.T) {
	_, err := Apply(Counters{}, "TRANSFER", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, ValidType("TRANSFER"))
	assert.True(t, ValidType(MovementTypeDISPOSAL))
}

func TestApply_DisposalConsumeStock(t *testing.T) {
	c := Counters{Closing: 5}
	c, err := Apply(c, MovementTypeDISPOSAL, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), Current(c))

	_, err = Apply(c, MovementTypeDISPOSAL, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_AjusteConSigno(t *testing.T) {
	c := Counters{Closing: 10}

	c, err := Apply(c, MovementTypeADJUSTMENT, 4)
	require.NoError(t, err)
	assert.Equal(t, Counters{Closing: 10, StockIn: 4}, c)

	c, err = Apply(c, MovementTypeADJUSTMENT, -3)
	require.NoError(t, err)
	assert.Equal(t, Counters{Closing: 10, StockIn: 4, StockOut: 3}, c)
	assert.Equal(t, int64(11), Current(c))

	// Ajuste negativo mayor al disponible: mismo tope que una salida
	_, err = Apply(c, MovementTypeADJUSTMENT, -12)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Ley de ida y vuelta: Apply seguido de Reverse deja los contadores intactos.
func TestReverse_RoundTrip(t *testing.T) {
	base := Counters{Closing: 100, StockIn: 7, StockOut: 3}
	cases := []struct {
		movType string
		qty     int64
	}{
		{MovementTypeIN, 50},
		{MovementTypeOUT, 40},
		{MovementTypeDISPOSAL, 10},
		{MovementTypeADJUSTMENT, 25},
		{MovementTypeADJUSTMENT, -25},
	}
	for _, tc := range cases {
		applied, err := Apply(base, tc.movType, tc.qty)
		require.NoError(t, err, tc.movType)
		reversed, err := Reverse(applied, tc.movType, tc.qty)
		require.NoError(t, err, tc.movType)
		assert.Equal(t, base, reversed, "round-trip %s %d", tc.movType, tc.qty)
	}
}

func TestReverse_RechazaSaldoNegativo(t *testing.T) {
	// Revertir un IN cuyo stock ya salió dejaría la cantidad actual negativa
	c := Counters{Closing: 0, StockIn: 50, StockOut: 30}
	_, err := Reverse(c, MovementTypeIN, 50)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Revertir una salida que no está registrada en los contadores
	_, err = Reverse(Counters{Closing: 10}, MovementTypeOUT, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusOutOfStock, StatusFor(0, 5))
	assert.Equal(t, StatusLowStock, StatusFor(5, 5))
	assert.Equal(t, StatusNormal, StatusFor(6, 5))
	assert.Equal(t, StatusNormal, StatusFor(1, 0), "min_stock 0 desactiva la alerta")
}
