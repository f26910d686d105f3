package util

import (
	"strings"
	"unicode"
)

// Unkify maps an out-of-vocabulary word to a signature token in the style
// of the Berkeley parser: the signature encodes capitalization, digits,
// dashes and a handful of suffixes, so that unknown words still carry some
// morphological signal. known reports vocabulary membership and is used to
// decide whether the lowercased form can be mentioned in the signature.
func Unkify(word string, known func(string) bool) string {
	if len(word) == 0 {
		return "UNK"
	}
	var (
		sb        strings.Builder
		runes     = []rune(word)
		hasDigit  bool
		hasDash   bool
		hasLower  bool
		numCaps   int
	)
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '-':
			hasDash = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			numCaps++
		}
	}
	sb.WriteString("UNK")
	lower := strings.ToLower(word)
	switch {
	case unicode.IsUpper(runes[0]):
		if numCaps == 1 && known(lower) {
			sb.WriteString("-KNOWNLC")
		} else {
			sb.WriteString("-CAPS")
		}
	case !unicode.IsLetter(runes[0]) && numCaps > 0:
		sb.WriteString("-CAPS")
	case hasLower:
		sb.WriteString("-LC")
	}
	if hasDigit {
		sb.WriteString("-NUM")
	}
	if hasDash {
		sb.WriteString("-DASH")
	}
	if len(runes) >= 3 && strings.HasSuffix(lower, "s") &&
		!strings.HasSuffix(lower, "ss") && !strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is") {
		sb.WriteString("-s")
	} else if len(runes) >= 5 && !hasDash && !(hasDigit && numCaps > 0) {
		for _, suffix := range unkSuffixes {
			if strings.HasSuffix(lower, suffix) {
				sb.WriteString("-")
				sb.WriteString(suffix)
				break
			}
		}
	}
	return sb.String()
}

var unkSuffixes = []string{
	"ed", "ing", "ion", "er", "est", "ly", "ity", "y", "al",
}
