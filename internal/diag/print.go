package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.Faint)
)

// Print renders diagnostics one per line, in bag order. When colorize is
// false all styling is suppressed.
func Print(w io.Writer, diags []Diagnostic, colorize bool) {
	old := color.NoColor
	if !colorize {
		color.NoColor = true
		defer func() { color.NoColor = old }()
	}

	for _, d := range diags {
		var label string
		switch d.Severity {
		case SevError:
			label = errColor.Sprint("error")
		case SevWarning:
			label = warnColor.Sprint("warning")
		default:
			label = infoColor.Sprint("info")
		}
		fmt.Fprintf(w, "%s%s: %s", label, codeColor.Sprintf("[%s]", d.Code), d.Message)
		if d.Export != "" {
			fmt.Fprintf(w, " (export `%s`)", d.Export)
		}
		fmt.Fprintln(w)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}
