package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch prepara un término para búsqueda de artículos: normaliza a NFC
// (los nombres llegan de fuentes mixtas, algunos en jamo descompuesto), recorta
// espacios y pasa a minúsculas.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeStored normaliza un texto antes de persistirlo (NFC, espacios recortados)
// para que las comparaciones por igualdad y los índices funcionen de forma estable.
func NormalizeStored(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
