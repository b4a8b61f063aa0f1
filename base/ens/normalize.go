package ens

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/domain"
)

// profile follows the ens name syntax: UTS-46 with transitional=false and
// useSTD3AsciiRules=true.
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(true),
)

// Normalize converts a user supplied name to its lowercase ascii compatible
// form (punycode labels where needed). Invalid utf-8 and any rejection by
// the idna profile are reported as domain.ErrInvalidName.
func Normalize(name string) (string, error) {
	// idna maps invalid utf-8 to punycode instead of failing
	if !utf8.ValidString(name) {
		return "", xerrors.Errorf("normalize %q: invalid utf-8: %w", name, domain.ErrInvalidName)
	}
	ascii, err := profile.ToASCII(name)
	if err != nil {
		return "", xerrors.Errorf("normalize %q: %v: %w", name, err, domain.ErrInvalidName)
	}
	return strings.ToLower(ascii), nil
}

// labels splits a normalized name and drops everything from the first empty
// label onwards, so "", "." and "eth." behave like the root and "eth".
func labels(normalized string) []string {
	parts := strings.Split(normalized, ".")
	for i, p := range parts {
		if p == "" {
			return parts[:i]
		}
	}
	return parts
}

// Parent returns name without its leftmost label.
func Parent(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "." || !strings.Contains(name, ".") {
		return "", false
	}
	return name[strings.Index(name, ".")+1:], true
}
