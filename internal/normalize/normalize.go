// Package normalize maps raw book-name tokens from the source text to
// canonical lookup keys and display names.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// bookDisplayNames maps canonical keys to the accented display form.
// Several keys can share a display name to absorb spelling and encoding
// variants found in source files ("GNESIS" is Genesis with the E lost).
//
//nolint:gochecknoglobals // Static lookup table for book names
var bookDisplayNames = map[string]string{
	"GNESIS": "Gênesis", "GENESIS": "Gênesis",
	"EXODO": "Êxodo", "LEVITICO": "Levítico", "NUMEROS": "Números",
	"DEUTERONOMIO": "Deuteronômio", "JOSUE": "Josué", "JUIZES": "Juízes",
	"RUTE": "Rute", "1SAMUEL": "1 Samuel", "2SAMUEL": "2 Samuel",
	"1REIS": "1 Reis", "2REIS": "2 Reis",
	"1CRONICAS": "1 Crônicas", "2CRONICAS": "2 Crônicas",
	"ESDRAS": "Esdras", "NEEMIAS": "Neemias", "ESTER": "Ester", "JO": "Jó",
	"SALMOS": "Salmos", "PROVERBIOS": "Provérbios",
	"ECLESIASTES": "Eclesiastes", "CANTICOS": "Cânticos",
	"ISAIAS": "Isaías", "JEREMIAS": "Jeremias",
	"LAMENTACOES": "Lamentações", "EZEQUIEL": "Ezequiel",
	"DANIEL": "Daniel", "OSEIAS": "Oséias", "JOEL": "Joel", "AMOS": "Amós",
	"OBADIAS": "Obadias", "JONAS": "Jonas", "MIQUEIAS": "Miquéias",
	"NAUM": "Naum", "HABACUQUE": "Habacuque", "SOFONIAS": "Sofonias",
	"AGEU": "Ageu", "ZACARIAS": "Zacarias", "MALAQUIAS": "Malaquias",
	"MATEUS": "Mateus", "MARCOS": "Marcos", "LUCAS": "Lucas", "JOAO": "João",
	"ATOS": "Atos", "ROMANOS": "Romanos",
	"1CORINTIOS": "1 Coríntios", "2CORINTIOS": "2 Coríntios",
	"GALATAS": "Gálatas", "EFESIOS": "Efésios", "FILIPENSES": "Filipenses",
	"COLOSSENSES": "Colossenses",
	"1TESSALONICENSES": "1 Tessalonicenses", "2TESSALONICENSES": "2 Tessalonicenses",
	"1TIMOTEO": "1 Timóteo", "2TIMOTEO": "2 Timóteo",
	"TITO": "Tito", "FILEMOM": "Filemom", "HEBREUS": "Hebreus",
	"TIAGO": "Tiago", "1PEDRO": "1 Pedro", "2PEDRO": "2 Pedro",
	"1JOAO": "1 João", "2JOAO": "2 João", "3JOAO": "3 João",
	"JUDAS": "Judas", "APOCALIPSE": "Apocalipse",
}

// BookKey converts a raw book name into its canonical lookup key:
// decomposed, stripped of combining marks, upper-cased, and reduced to
// A-Z and 0-9.
//
//	"Gênesis"  -> "GENESIS"
//	"1 João"   -> "1JOAO"
//	"Cântico!" -> "CANTICO"
func BookKey(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(t, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToUpper(s)

	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}

// BookName returns the display form of a raw book name. Recognized names
// get their properly accented label; anything else falls back to the raw
// name with only its first letter capitalized.
func BookName(raw string) string {
	if name, ok := bookDisplayNames[BookKey(raw)]; ok {
		return name
	}
	return capitalize(raw)
}

// IsKnownBook reports whether raw resolves to a name in the display table.
func IsKnownBook(raw string) bool {
	_, ok := bookDisplayNames[BookKey(raw)]
	return ok
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
