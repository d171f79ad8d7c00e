// Package strings holds the small string helpers shared by handlers, the CLI and modules
package strings

import std "strings"

// MustString returns s when it has non-space content, otherwise panics naming what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like /customers or /meta to one leading
// slash and no trailing slash. The bare root panics.
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Ptr returns &s, or nil for an empty s. Record fields use nil for absent.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
