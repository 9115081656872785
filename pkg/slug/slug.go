// Package slug genera segmentos de URL ASCII para las fichas publicadas en el sitio.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make une las partes y devuelve un slug en minúsculas sin acentos, separado por guiones.
// Ej.: "Apartamento – Consolação, São Paulo" → "apartamento-consolacao-sao-paulo".
func Make(parts ...string) string {
	raw := strings.Join(parts, " ")
	// El transformer tiene estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
