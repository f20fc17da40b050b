package reachability

import "strings"

var memberModifiers = []string{
	"public", "private", "protected", "static", "async", "override", "readonly", "get", "set",
}

// NormalizeName reduces a method header name to the key calls refer to it
// by: member modifiers and a generic parameter suffix are removed.
//
//	"private __apply_typed<T>" -> "__apply_typed"
//	"apply<T>"                 -> "apply"
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)

	for stripped := true; stripped; {
		stripped = false
		for _, m := range memberModifiers {
			if rest, ok := strings.CutPrefix(name, m+" "); ok && strings.TrimSpace(rest) != "" {
				name = strings.TrimSpace(rest)
				stripped = true
			}
		}
	}

	if i := strings.IndexByte(name, '<'); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	return name
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// identPrefix returns the leading identifier of s.
func identPrefix(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

// DeduplicateSlice removes duplicate strings while preserving order
func DeduplicateSlice(slice []string) []string {
	keys := make(map[string]bool)
	var result []string

	for _, item := range slice {
		if !keys[item] {
			keys[item] = true
			result = append(result, item)
		}
	}

	return result
}
