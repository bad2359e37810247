package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct{ text, color string }{
		{" _            _                      _       ", "#818cf8"},
		{"| |_ __ _ ___| | ___ __ ___  _   _| |_ ___ ", "#a78bfa"},
		{"| __/ _` / __| |/ / '__/ _ \\| | | | __/ _ \\", "#c084fc"},
		{"| || (_| \\__ \\   <| | | (_) | |_| | ||  __/", "#e879f9"},
		{" \\__\\__,_|___/_|\\_\\_|  \\___/ \\__,_|\\__\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
