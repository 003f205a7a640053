package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPrincipal = errors.New("invalid principal")

// Principal is a caller identity in its textual form: dash separated groups
// of lowercase base32, e.g. "aaaaa-aa".
type Principal string

// AnonymousPrincipal is the identity of an unauthenticated caller.
const AnonymousPrincipal Principal = "2vxsx-fae"

func ParsePrincipal(s string) (Principal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPrincipal)
	}

	for _, group := range strings.Split(s, "-") {
		if len(group) == 0 || len(group) > 5 {
			return "", fmt.Errorf("%w: %q", ErrInvalidPrincipal, s)
		}
		for _, r := range group {
			if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
				return "", fmt.Errorf("%w: %q", ErrInvalidPrincipal, s)
			}
		}
	}

	return Principal(s), nil
}

func (p Principal) String() string {
	return string(p)
}

func (p Principal) IsAnonymous() bool {
	return p == "" || p == AnonymousPrincipal
}
