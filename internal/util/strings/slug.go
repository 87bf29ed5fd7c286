package strings

import (
	"fmt"
	"regexp"
	"strings"
)

// transliterations maps accented and punctuation characters to their
// identifier-safe replacements. Anything not listed here that is outside
// [A-Za-z0-9 -] is dropped.
var transliterations = map[rune]string{
	'ã': "a", 'à': "a", 'á': "a", 'ä': "a", 'â': "a",
	'è': "e", 'é': "e", 'ë': "e", 'ê': "e",
	'ì': "i", 'í': "i", 'ï': "i", 'î': "i",
	'õ': "o", 'ò': "o", 'ó': "o", 'ö': "o", 'ô': "o",
	'ù': "u", 'ú': "u", 'ü': "u", 'û': "u",
	'ñ': "n",
	'ç': "c",
	'·': "-", '/': "-", '_': "-", ',': "-", ':': "-", ';': "-",
}

var (
	invalidChars = regexp.MustCompile(`[^A-Za-z0-9 -]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slugify turns a human label into an identifier-safe string.
// Case is preserved: "Sample Location" becomes "Sample-Location".
func Slugify(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := transliterations[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}

	out := invalidChars.ReplaceAllString(b.String(), "")
	out = spaceRuns.ReplaceAllString(out, "-")
	return dashRuns.ReplaceAllString(out, "-")
}

// UniqueSlug returns Slugify(label), or the first Slugify(label + " N") for
// N = 1, 2, ... that exists reports as free.
func UniqueSlug(label string, exists func(string) bool) string {
	return UniqueSlugFrom(Slugify(label), label, exists)
}

// UniqueSlugFrom starts from an already chosen candidate and falls back to
// numbered variants of label on collision.
func UniqueSlugFrom(candidate, label string, exists func(string) bool) string {
	slug := candidate
	for n := 1; exists(slug); n++ {
		slug = Slugify(fmt.Sprintf("%s %d", label, n))
	}
	return slug
}
