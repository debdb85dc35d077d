package ui

import (
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/statusboard/internal/errors"
)

// Semantic colors for CLI output, as ANSI codes so they follow the user's
// terminal theme.
const (
	ColorSuccess lipgloss.Color = "2"
	ColorError   lipgloss.Color = "1"
	ColorWarning lipgloss.Color = "3"
	ColorInfo    lipgloss.Color = "6"
	ColorMuted   lipgloss.Color = "8"
)

// FormatError renders err for the terminal:
//
//	✗ <message>
//
//	  <cause>
//
//	  <suggestion>
//
// Errors that are not structured print as a single failure line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	fail := lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	muted := lipgloss.NewStyle().Foreground(ColorMuted)

	var sbErr *errors.Error
	if !stderrors.As(err, &sbErr) {
		return fail.Render(SymbolFail+" "+err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(fail.Render(SymbolFail + " " + sbErr.Message))
	b.WriteString("\n")
	if sbErr.Cause != nil {
		b.WriteString("\n  " + firstLine(sbErr.Cause) + "\n")
	}
	if sbErr.Suggestion != "" {
		b.WriteString("\n  " + muted.Render(sbErr.Suggestion) + "\n")
	}
	return b.String()
}

// firstLine keeps nested structured errors to their headline.
func firstLine(err error) string {
	var sbErr *errors.Error
	if stderrors.As(err, &sbErr) && sbErr.Message != "" {
		return sbErr.Message
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
