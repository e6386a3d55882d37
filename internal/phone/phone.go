// Package phone holds the Ghana mobile-number routines used by the purchase
// flow and the AFA registration gate.
//
// The two routines are intentionally separate. The purchase flow and checkout
// forms use the strict predicate; only the AFA endpoints use the lenient
// normalizer, which additionally accepts 9-digit local numbers and derives the
// leading zero. Unifying them would change observable behavior at one of the
// call sites, so both are kept.
package phone

import "strings"

// digitsOnly strips every non-digit character from s.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StrictGhanaNumber reports whether s is a valid Ghana mobile number:
// exactly 10 digits starting with 05, after stripping non-digit characters.
func StrictGhanaNumber(s string) bool {
	d := digitsOnly(s)
	return len(d) == 10 && strings.HasPrefix(d, "05")
}

// LenientGhanaNumberNormalize normalizes s to the 10-digit 05xxxxxxxx form.
// It accepts 9-digit local numbers starting with 5 and derives the leading
// zero; for anything longer it keeps the last 10 digits, again prefixing a
// zero when only 9 remain. ok is true when the result is a valid number.
func LenientGhanaNumberNormalize(s string) (normalized string, ok bool) {
	d := digitsOnly(strings.TrimSpace(s))
	switch {
	case len(d) == 10 && strings.HasPrefix(d, "05"):
		normalized = d
	case len(d) == 9 && strings.HasPrefix(d, "5"):
		normalized = "0" + d
	default:
		if len(d) > 10 {
			d = d[len(d)-10:]
		}
		if len(d) == 9 {
			d = "0" + d
		}
		normalized = d
	}
	ok = len(normalized) == 10 && strings.HasPrefix(normalized, "05")
	return normalized, ok
}
