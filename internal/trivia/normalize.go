package trivia

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

func foldArabic(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ':
		return 'ا'
	case 'ة':
		return 'ه'
	case 'ى':
		return 'ي'
	}
	return r
}

// isNoise matches everything outside word characters, whitespace, and the
// base Arabic letter block, which removes punctuation and diacritics.
func isNoise(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return false
	case r == ' ', r == '\t', r == '\n', r == '\r':
		return false
	case r >= 0x0621 && r <= 0x064A:
		return false
	}
	return true
}

// NormalizeArabic folds common Arabic spelling variants (hamza-seated alefs
// to bare alef, ta marbuta to ha, alef maksura to ya) and strips punctuation
// so player answers compare loosely: "مكة" matches "مكه".
func NormalizeArabic(s string) string {
	t := transform.Chain(
		runes.Map(foldArabic),
		runes.Remove(runes.Predicate(isNoise)),
	)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	// Stripping punctuation can leave edge whitespace behind.
	return strings.TrimSpace(out)
}
