package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the semtoken banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ___  ___ _ __ ___ | |_ ___ | | _____ _ __  `, "#34d399"},
		{` / __|/ _ \ '_ ' _ \| __/ _ \| |/ / _ \ '_ \ `, "#2dd4bf"},
		{` \__ \  __/ | | | | | || (_) |   <  __/ | | |`, "#22d3ee"},
		{` |___/\___|_| |_| |_|\__\___/|_|\_\___|_| |_|`, "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
