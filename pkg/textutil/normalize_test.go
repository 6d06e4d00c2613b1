package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch_ComposicionNFC(t *testing.T) {
	// jamo descompuesto (NFD) debe igualar a la sílaba compuesta (NFC)
	decomposed := "한"
	composed := "\ud55c"
	assert.Equal(t, composed, NormalizeSearch(decomposed))
}

func TestNormalizeSearch_MinusculasYEspacios(t *testing.T) {
	assert.Equal(t, "relé 24v", NormalizeSearch("  Relé 24V  "))
}

func TestNormalizeStored_ConservaMayusculas(t *testing.T) {
	assert.Equal(t, "Relé 24V", NormalizeStored(" Relé 24V "))
}
