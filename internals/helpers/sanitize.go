// file: internals/helpers/sanitize.go
package helper

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFileName converte um nome de arquivo em algo seguro para chave de
// storage: normaliza Unicode, remove acentos e troca tudo fora de
// [A-Za-z0-9.-] por "_". O resultado é idempotente.
func SanitizeFileName(name string) string {
	clean, _, err := transform.String(stripMarks, name)
	if err != nil {
		clean = name
	}
	out := make([]rune, 0, len(clean))
	for _, r := range clean {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
