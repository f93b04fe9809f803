package reference

import (
	"net/mail"
	"strings"

	"git.home.luguber.info/inful/refcheck/internal/util/sets"
)

// DefaultRemoteSchemes are the URI schemes treated as remote unless configured otherwise.
var DefaultRemoteSchemes = []string{"http", "https", "mailto"}

// Classifier decides whether a target is remote.
type Classifier struct {
	schemes sets.Set[string]
}

// NewClassifier returns a Classifier for the given schemes, compared case-insensitively.
// With no schemes it falls back to DefaultRemoteSchemes.
func NewClassifier(schemes ...string) Classifier {
	if len(schemes) == 0 {
		schemes = DefaultRemoteSchemes
	}
	s := sets.New[string]()
	for _, scheme := range schemes {
		scheme = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(scheme), ":"))
		if scheme != "" {
			s.Add(scheme)
		}
	}
	return Classifier{schemes: s}
}

// IsRemote reports whether target starts with a recognised network scheme or is a bare e-mail address.
// Fragments, relative paths and absolute paths are local.
func (c Classifier) IsRemote(target string) bool {
	target = strings.TrimSpace(target)
	if scheme, ok := Scheme(target); ok {
		return c.schemes.Has(scheme)
	}
	return IsBareEmail(target)
}

// IsRemote classifies target with the default scheme set.
func IsRemote(target string) bool {
	return NewClassifier().IsRemote(target)
}

// Scheme returns the lower-cased URI scheme of target, if it has one.
func Scheme(target string) (string, bool) {
	i := strings.IndexByte(target, ':')
	if i < 1 {
		return "", false
	}
	for j, r := range target[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return "", false
		}
	}
	return strings.ToLower(target[:i]), true
}

// IsBareEmail reports whether target is an e-mail address without a mailto: scheme.
func IsBareEmail(target string) bool {
	if target == "" || strings.ContainsAny(target, "/#?<> ") || !strings.Contains(target, "@") {
		return false
	}
	addr, err := mail.ParseAddress(target)
	return err == nil && addr.Address == target
}

// IsMail reports whether target is a mailto: URI or a bare e-mail address.
func IsMail(target string) bool {
	if scheme, ok := Scheme(target); ok {
		return scheme == "mailto"
	}
	return IsBareEmail(target)
}
