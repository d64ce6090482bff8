// =============================================================================
// Relatório de Visitas - Report Filename
// =============================================================================
//
// The report artifact is saved under a filename derived from the member's
// entity name and the generation date:
//
//   relatorio-visita-<entity-name-slug>-<YYYY-MM-DD>.pdf
//
// The entity name is ASCII-normalized (diacritics stripped, lowercased,
// anything outside [a-z0-9] collapsed to single hyphens). A blank name falls
// back to the "cooperado" label.
//
// =============================================================================

package report

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackLabel names the artifact when the draft has no entity name.
const fallbackLabel = "cooperado"

// asciiFold decomposes accented characters and removes the combining marks,
// turning "Padaria São João" into "Padaria Sao Joao".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Filename derives the artifact filename from the entity name and date.
func Filename(entityName string, date time.Time) string {
	slug := Slug(entityName)
	if slug == "" {
		slug = fallbackLabel
	}
	return "relatorio-visita-" + slug + "-" + date.Format("2006-01-02") + ".pdf"
}

// Slug ASCII-normalizes a name for filesystem use. The empty string is
// returned unchanged; callers pick the fallback.
func Slug(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		// Fold failures only happen on malformed UTF-8; keep the raw name
		// and let the character filter below discard what it must.
		folded = name
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
