// Package util holds small helpers shared by the samplers.
package util

import "strings"

// ShellQuote returns s as a single POSIX shell word. Embedded single quotes
// are closed, escaped and reopened, so nothing inside s is expanded.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
