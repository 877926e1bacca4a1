package radarr

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TitleSlug builds the slug Radarr expects on a new movie: the lowercased
// title with diacritics removed and spaces replaced by dashes, followed by the
// release year.
func TitleSlug(title string, year int) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(folded))
	return fmt.Sprintf("%s-%d", strings.ReplaceAll(lowered, " ", "-"), year)
}
