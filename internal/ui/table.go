// Package ui renders the human-facing descriptor listing for the
// inspect command.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bindgen/internal/descriptor"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	thunkStyle  = lipgloss.NewStyle().Faint(true)
)

type row struct {
	kind      string
	name      string
	signature string
	thunk     string
}

func exportRow(e descriptor.Export) row {
	switch e.Kind {
	case descriptor.ExportFunction:
		parts := make([]string, 0, len(e.Fn.Args))
		for _, a := range e.Fn.Args {
			parts = append(parts, a.Name+": "+a.Type.String())
		}
		return row{
			kind:      "fn",
			name:      e.Fn.RealName,
			signature: "(" + strings.Join(parts, ", ") + ") -> " + e.Fn.Return.String(),
			thunk:     e.Fn.ThunkName,
		}
	case descriptor.ExportStruct:
		parts := make([]string, 0, len(e.St.Fields))
		for _, f := range e.St.Fields {
			parts = append(parts, f.Name+": "+f.Type.String())
		}
		return row{
			kind:      "struct",
			name:      e.St.Name,
			signature: "{" + strings.Join(parts, ", ") + "}",
		}
	}
	return row{kind: "?"}
}

// pad right-pads to the display width, so wide runes keep columns aligned.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// DescriptorTable renders the export descriptors as an aligned table.
// Styling is suppressed when colored is false.
func DescriptorTable(exports []descriptor.Export, colored bool) string {
	headers := [4]string{"KIND", "NAME", "SIGNATURE", "THUNK"}
	widths := [4]int{}
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	rows := make([]row, len(exports))
	for i, e := range exports {
		rows[i] = exportRow(e)
		for j, cell := range [4]string{rows[i].kind, rows[i].name, rows[i].signature, rows[i].thunk} {
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	style := func(st lipgloss.Style, s string) string {
		if !colored {
			return s
		}
		return st.Render(s)
	}

	var b strings.Builder
	for i, h := range headers {
		cell := pad(h, widths[i])
		b.WriteString(style(headerStyle, cell))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, r := range rows {
		b.WriteString(style(kindStyle, pad(r.kind, widths[0])))
		b.WriteString("  ")
		b.WriteString(pad(r.name, widths[1]))
		b.WriteString("  ")
		b.WriteString(pad(r.signature, widths[2]))
		b.WriteString("  ")
		b.WriteString(style(thunkStyle, pad(r.thunk, widths[3])))
		b.WriteString("\n")
	}
	return b.String()
}
