// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /babies or /meta
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// TrimPtr trims *ps and returns nil when ps is nil or blank
func TrimPtr(ps *string) *string {
	if ps == nil {
		return nil
	}
	s := std.TrimSpace(*ps)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" if ps is nil, else *ps
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// SplitCSV splits a comma list, trimming items and dropping blanks
func SplitCSV(s string) []string {
	var out []string
	for _, p := range std.Split(s, ",") {
		if v := std.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
