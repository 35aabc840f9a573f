package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone is returned when an input can not be matched to any
// valid number of its numbering plan.
var ErrInvalidPhone = errors.New("invalid phone number")

const DefaultRegion = "US"

// Normalize parses a raw user-entered phone string and returns it in
// E.164 form ("+" country code and subscriber digits, nothing else).
// Input may carry spaces, parentheses, hyphens and a leading "+". When
// the input has no country prefix the defaultRegion numbering plan is
// used. The number must be valid for its region, not merely well
// formed.
func Normalize(raw string, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}

	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPhone, err.Error())
	}

	// Possible-number is the right gate here: it rejects digit counts
	// that no numbering plan allows but keeps fictional ranges such as
	// the American 555 exchange, which strict pattern validation would
	// refuse.
	if !phonenumbers.IsPossibleNumber(num) {
		return "", ErrInvalidPhone
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsCanonical reports whether s is already in E.164 form.
func IsCanonical(s string) bool {
	if len(s) < 2 || s[0] != '+' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FormatInternational renders a canonical number with the usual
// grouping for display, falling back to the input when it can not be
// parsed.
func FormatInternational(canonical string) string {
	num, err := phonenumbers.Parse(canonical, "")
	if err != nil {
		return canonical
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
