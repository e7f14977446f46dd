package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTermLength bounds search terms accepted from users, in characters
// (runes), matching the search field's limit. The longest name
// in any realistic genealogy is far shorter.
const MaxTermLength = 128

// ValidateSearchTerm rejects terms that cannot match a name: overly long
// input and control characters. The empty term is valid and means "show
// everything".
func ValidateSearchTerm(term string) error {
	if utf8.RuneCountInString(term) > MaxTermLength {
		return New(ErrCodeInvalidTerm, "search term too long (max %d characters)", MaxTermLength)
	}
	for _, r := range term {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTerm, "search term contains control characters")
		}
	}
	return nil
}

var nodeIDRe = regexp.MustCompile(`^root(-[0-9]+)*$`)

// ValidateNodeID checks that id has the shape of a path identifier
// ("root", "root-0", "root-0-2"). It does not check that the node exists.
func ValidateNodeID(id string) error {
	if !nodeIDRe.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id %q", id)
	}
	return nil
}

// ValidateFormat checks format against the allowed list, case-insensitively,
// and returns it lowercased.
func ValidateFormat(format string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(allowed, f) {
		return "", New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return f, nil
}
