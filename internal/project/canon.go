package project

import (
	"strings"
	"unicode"
)

// DisplayName reduces a class reference as written in PHP source to its
// bare class name, preserving the author's casing. It strips quoting,
// a trailing ::class suffix, and any leading namespace path, so
// "\App\Models\Post", "'Post'", and Post::class all display as "Post".
func DisplayName(ref string) string {
	s := strings.TrimSpace(ref)
	s = strings.Trim(s, `'"`)
	s = strings.TrimSuffix(s, "::class")
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, `\`); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// CanonicalKey folds a class reference to the identity used for
// cross-reference resolution: DisplayName, case-folded. Facts extracted
// independently (a relationship target, a route handler, a declared
// class) resolve to the same key whenever they name the same class.
func CanonicalKey(ref string) string {
	return strings.ToLower(DisplayName(ref))
}

// Snake converts a CamelCase class name to snake_case, the convention
// the framework applies when deriving column names: "UserProfile"
// becomes "user_profile". Names without uppercase letters pass through.
func Snake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
