package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or fallback when it is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Status prints colored one-line outcomes.
type Status struct {
	w       io.Writer
	profile termenv.Profile
}

// NewStatus colors output only when w is a terminal.
func NewStatus(w io.Writer) *Status {
	profile := termenv.Ascii
	if IsTerminal(w) {
		profile = termenv.ColorProfile()
	}
	return &Status{w: w, profile: profile}
}

// Success prints a green check line.
func (s *Status) Success(format string, args ...any) {
	s.print("✔", "#22c55e", format, args...)
}

// Info prints a neutral line.
func (s *Status) Info(format string, args ...any) {
	s.print("•", "#60a5fa", format, args...)
}

// Failure prints a red cross line.
func (s *Status) Failure(format string, args ...any) {
	s.print("✘", "#ef4444", format, args...)
}

func (s *Status) print(mark, color, format string, args ...any) {
	prefix := s.profile.String(mark).Foreground(s.profile.Color(color)).Bold()
	fmt.Fprintf(s.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
