package contacts

import (
	"strings"

	"mutuals/phone"
)

// phoneSegmentChars are the characters a pasted phone number may
// contain; the phone part of a line is its longest suffix drawn from
// this set.
const phoneSegmentChars = "+0123456789 ()-"

// ParseContacts turns pasted or uploaded free text into contact
// records, one candidate per non-blank line. Accepted separator styles
// are "Name: Phone", "Name, Phone" and "Name Phone"; the split rule is
// the same for all of them. Lines with an empty name or a phone that
// fails normalization are dropped without error. Duplicates are kept,
// the store's unique index deals with them on insert. Re-parsing the
// same text always yields the same records in the same order.
func ParseContacts(text string, defaultRegion string) []*ParsedContact {
	var parsed []*ParsedContact

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, rawPhone := splitNamePhone(line)
		if name == "" {
			continue
		}

		canonical, hash, err := phone.NormalizeAndHash(rawPhone, defaultRegion)
		if err != nil {
			continue
		}

		parsed = append(parsed, &ParsedContact{
			Name:      name,
			Phone:     canonical,
			PhoneHash: hash,
		})
	}

	return parsed
}

// splitNamePhone cuts a line into its name and phone segments. The
// phone segment is the longest suffix of phone characters; the name is
// what precedes it, with at most one trailing ':', ',' or '-'
// separator removed.
func splitNamePhone(line string) (name string, rawPhone string) {
	cut := len(line)
	for cut > 0 && strings.ContainsRune(phoneSegmentChars, rune(line[cut-1])) {
		cut--
	}

	name = strings.TrimSpace(line[:cut])
	rawPhone = strings.TrimSpace(line[cut:])

	if name != "" {
		last := name[len(name)-1]
		if last == ':' || last == ',' || last == '-' {
			name = strings.TrimSpace(name[:len(name)-1])
		}
	}

	return name, rawPhone
}
