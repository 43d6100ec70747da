// Package photo attaches user supplied pictures to words by file name.
package photo

import (
	"path/filepath"
	"strings"
)

// Normalize lowercases s and drops every character outside [a-z0-9].
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// BaseName strips directories and the final extension from a file name.
func BaseName(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Tokens splits the base name on whitespace, hyphens and underscores and
// normalizes each part. Parts that normalize to nothing are dropped.
func Tokens(filename string) []string {
	parts := strings.FieldsFunc(BaseName(filename), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Match reports whether filename refers to word: either the whole
// normalized base name equals the normalized word, or one whole token does.
func Match(filename, word string) bool {
	target := Normalize(word)
	if target == "" {
		return false
	}
	if Normalize(BaseName(filename)) == target {
		return true
	}
	for _, tok := range Tokens(filename) {
		if tok == target {
			return true
		}
	}
	return false
}
