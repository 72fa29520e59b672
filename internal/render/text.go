package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	h1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	h2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69"))

	h3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75"))

	boldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	italicStyle = lipgloss.NewStyle().
			Italic(true)

	codeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// Text renders a document as styled terminal text wrapped to the given
// width. Rendering is pure: the same document and width always produce the
// same string, and the whole document is materialized before anything is
// displayed.
func Text(doc *Document, width int) string {
	if width < 20 {
		width = 20
	}

	var parts []string
	for _, b := range doc.Blocks {
		if s := renderBlock(b, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b Block, width int) string {
	switch block := b.(type) {
	case Heading:
		return renderHeading(block, width)
	case Paragraph:
		return bodyStyle.Width(width).Render(renderSpans(block.Spans))
	case CodeBlock:
		return codeStyle.Render(block.Text)
	case List:
		return renderList(block, width, 0)
	case Table:
		return renderTable(block, width)
	case Divider:
		return dividerStyle.Render(strings.Repeat("─", width))
	}
	return ""
}

func renderHeading(h Heading, width int) string {
	text := SpanText(h.Spans)
	switch h.Level {
	case 1:
		line := dividerStyle.Render(strings.Repeat("─", width))
		return h1Style.Render(text) + "\n" + line
	case 2:
		return h2Style.Render(text)
	default:
		return h3Style.Render(text)
	}
}

func renderSpans(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch {
		case s.Code:
			sb.WriteString(codeStyle.Render(s.Text))
		case s.Bold:
			sb.WriteString(boldStyle.Render(s.Text))
		case s.Italic:
			sb.WriteString(italicStyle.Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func renderList(list List, width, depth int) string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	for i, item := range list.Items {
		marker := bulletStyle.Render("•")
		if list.Ordered {
			marker = bulletStyle.Render(fmt.Sprintf("%d.", list.Start+i))
		}

		first := true
		for _, b := range item.Blocks {
			switch inner := b.(type) {
			case List:
				lines = append(lines, renderList(inner, width, depth+1))
			default:
				body := renderBlock(b, width-len(indent)-3)
				for _, line := range strings.Split(body, "\n") {
					if first {
						lines = append(lines, indent+marker+" "+line)
						first = false
					} else {
						lines = append(lines, indent+"  "+line)
					}
				}
			}
		}
		if first {
			lines = append(lines, indent+marker)
		}
	}
	return strings.Join(lines, "\n")
}

// renderTable lays the table out with fixed-width columns sized to the
// longest cell, header row separated from the body.
func renderTable(t Table, width int) string {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row TableRow) {
		for i, cell := range row {
			if w := lipgloss.Width(SpanText(cell.Spans)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	renderRow := func(row TableRow, header bool) string {
		cells := make([]string, cols)
		for i := 0; i < cols; i++ {
			var text string
			if i < len(row) {
				if header {
					text = tableHeaderStyle.Render(SpanText(row[i].Spans))
				} else {
					text = renderSpans(row[i].Spans)
				}
			}
			pad := widths[i] - lipgloss.Width(text)
			if pad < 0 {
				pad = 0
			}
			cells[i] = " " + text + strings.Repeat(" ", pad) + " "
		}
		sep := tableBorderStyle.Render("│")
		return sep + strings.Join(cells, sep) + sep
	}

	divider := func() string {
		segs := make([]string, cols)
		for i, w := range widths {
			segs[i] = strings.Repeat("─", w+2)
		}
		return tableBorderStyle.Render("├" + strings.Join(segs, "┼") + "┤")
	}

	var lines []string
	if len(t.Header) > 0 {
		lines = append(lines, renderRow(t.Header, true), divider())
	}
	for _, row := range t.Rows {
		lines = append(lines, renderRow(row, false))
	}
	return strings.Join(lines, "\n")
}
