package core

import (
	"strings"
)

// Paths of the merged tree are JSON Pointers (RFC 6901) built from the
// identification names of the nodes below the root, e.g. "/users/email".

// ParsePath parses a JSON Pointer path into its unescaped tokens.
// A path without a leading "/" is treated as relative and parsed the same
// way. The empty path and "/" both denote the root.
func ParsePath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}

	var tokens []string
	if strings.HasPrefix(path, "/") {
		tokens = strings.Split(path, "/")[1:]
	} else {
		tokens = strings.Split(path, "/")
	}

	for i, token := range tokens {
		tokens[i] = UnescapeKey(token)
	}
	return tokens
}

// NormalizePath converts a relative or absolute path to a standard JSON
// Pointer.
func NormalizePath(path string) string {
	tokens := ParsePath(path)
	if len(tokens) == 0 {
		return "/"
	}
	return BuildPath(tokens)
}

// BuildPath escapes and joins tokens into a JSON Pointer.
func BuildPath(tokens []string) string {
	if len(tokens) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, token := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeKey(token))
	}
	return b.String()
}

// EscapeKey escapes a single token for use in a JSON Pointer.
func EscapeKey(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

// UnescapeKey reverses EscapeKey.
func UnescapeKey(key string) string {
	key = strings.ReplaceAll(key, "~1", "/")
	key = strings.ReplaceAll(key, "~0", "~")
	return key
}

// JoinPath joins two JSON Pointer paths with a slash.
func JoinPath(parent, child string) string {
	if parent == "" || parent == "/" {
		if child == "" || child == "/" {
			return "/"
		}
		if child[0] == '/' {
			return child
		}
		return "/" + child
	}
	if child == "" || child == "/" {
		return parent
	}
	res := parent
	if !strings.HasSuffix(res, "/") {
		res += "/"
	}
	if child[0] == '/' {
		res += child[1:]
	} else {
		res += child
	}
	return res
}
