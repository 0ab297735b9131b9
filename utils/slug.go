package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a human-readable title into a lowercase URL-safe slug.
// Diacritics are stripped via unicode decomposition ("Ánh" -> "anh"). Input
// that carries no latin characters at all (e.g. a fully CJK title) would strip
// to nothing, so a short random fragment is used instead; the unique index on
// the slug field still guards against collisions.
func GenerateSlug(input string) string {
	ascii := removeDiacritics(input)
	lower := strings.ToLower(ascii)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")
	slug := strings.Trim(normalized, "-")

	if slug == "" {
		slug = strings.Split(uuid.NewString(), "-")[0]
	}
	return slug
}

func removeDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}
