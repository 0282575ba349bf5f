package common

import (
	"path"
	"strings"
	"unicode"
)

// UnknownStr is the fallback label for unrecognized enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// ExportName returns name with its first rune upper-cased, used to derive
// generated member suffixes from field names.
func ExportName(name string) string {
	if name == "" {
		return ""
	}

	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// SnakeCase converts a Go identifier to snake_case for output file names
// (e.g., "OrderItem" -> "order_item", "HTTPServer" -> "http_server").
func SnakeCase(name string) string {
	var b strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
