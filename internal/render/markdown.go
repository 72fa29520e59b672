// Package render converts a markdown diagnostic narrative into a structured
// block document and renders that document as styled terminal text. Parsing
// and rendering are pure: the same narrative always yields the same output,
// and a narrative the parser cannot handle degrades to raw text instead of
// an empty panel.
package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Span is a run of inline text with emphasis flags.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Block is one structural element of a document.
type Block interface{ isBlock() }

// Heading is a section heading, level 1 through 6.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Spans []Span
}

// CodeBlock is a fenced or indented code block, verbatim.
type CodeBlock struct {
	Text string
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem holds the blocks of a single list entry, including nested lists.
type ListItem struct {
	Blocks []Block
}

// TableCell holds the inline content of one table cell.
type TableCell struct {
	Spans []Span
}

// TableRow is one row of cells.
type TableRow []TableCell

// Table preserves the header/body split of a markdown table.
type Table struct {
	Header TableRow
	Rows   []TableRow
}

// Divider is a horizontal rule.
type Divider struct{}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (CodeBlock) isBlock() {}
func (List) isBlock()      {}
func (Table) isBlock()     {}
func (Divider) isBlock()   {}

// Document is the structured form of a narrative.
type Document struct {
	Blocks []Block
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse converts a markdown narrative into a Document. It never fails: input
// that cannot be parsed as markdown comes back as a single raw-text
// paragraph, so the report panel is never blank.
func Parse(narrative string) (doc *Document) {
	defer func() {
		if recover() != nil {
			doc = rawDocument(narrative)
		}
	}()

	source := []byte(narrative)
	root := markdown.Parser().Parse(text.NewReader(source))

	doc = &Document{}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if b := parseBlock(child, source); b != nil {
			doc.Blocks = append(doc.Blocks, b)
		}
	}

	if len(doc.Blocks) == 0 && strings.TrimSpace(narrative) != "" {
		return rawDocument(narrative)
	}
	return doc
}

func rawDocument(narrative string) *Document {
	return &Document{Blocks: []Block{
		Paragraph{Spans: []Span{{Text: strings.TrimSpace(narrative)}}},
	}}
}

func parseBlock(n ast.Node, source []byte) Block {
	switch node := n.(type) {
	case *ast.Heading:
		return Heading{Level: node.Level, Spans: parseSpans(node, source)}

	case *ast.Paragraph, *ast.TextBlock:
		spans := parseSpans(n, source)
		if len(spans) == 0 {
			return nil
		}
		return Paragraph{Spans: spans}

	case *ast.ThematicBreak:
		return Divider{}

	case *ast.FencedCodeBlock:
		return CodeBlock{Text: blockLines(node.BaseBlock, source)}

	case *ast.CodeBlock:
		return CodeBlock{Text: blockLines(node.BaseBlock, source)}

	case *ast.List:
		list := List{Ordered: node.IsOrdered(), Start: node.Start}
		if list.Ordered && list.Start == 0 {
			list.Start = 1
		}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			var li ListItem
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if b := parseBlock(c, source); b != nil {
					li.Blocks = append(li.Blocks, b)
				}
			}
			list.Items = append(list.Items, li)
		}
		return list

	case *ast.Blockquote:
		// Flatten quotes into their inner blocks; the narratives only use
		// them for footnote-style asides.
		var spans []Span
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			spans = append(spans, parseSpans(c, source)...)
		}
		if len(spans) == 0 {
			return nil
		}
		return Paragraph{Spans: spans}

	case *extast.Table:
		return parseTable(node, source)
	}

	// Unknown block kinds degrade to their plain text.
	if txt := nodeText(n, source); txt != "" {
		return Paragraph{Spans: []Span{{Text: txt}}}
	}
	return nil
}

func parseTable(node *extast.Table, source []byte) Block {
	var table Table
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells TableRow
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, TableCell{Spans: parseSpans(cell, source)})
		}
		if _, ok := row.(*extast.TableHeader); ok {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
	}
	return table
}

// parseSpans flattens the inline children of a node into styled spans.
func parseSpans(n ast.Node, source []byte) []Span {
	var spans []Span
	appendInline(&spans, n, source, Span{})
	return mergeSpans(spans)
}

func appendInline(spans *[]Span, n ast.Node, source []byte, style Span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			s := style
			s.Text = string(node.Segment.Value(source))
			*spans = append(*spans, s)
			if node.SoftLineBreak() || node.HardLineBreak() {
				sp := style
				sp.Text = " "
				*spans = append(*spans, sp)
			}

		case *ast.String:
			s := style
			s.Text = string(node.Value)
			*spans = append(*spans, s)

		case *ast.CodeSpan:
			s := style
			s.Code = true
			s.Text = string(node.Text(source))
			*spans = append(*spans, s)

		case *ast.Emphasis:
			inner := style
			if node.Level >= 2 {
				inner.Bold = true
			} else {
				inner.Italic = true
			}
			appendInline(spans, c, source, inner)

		case *ast.Link:
			appendInline(spans, c, source, style)

		case *ast.AutoLink:
			s := style
			s.Text = string(node.URL(source))
			*spans = append(*spans, s)

		case *ast.Image:
			appendInline(spans, c, source, style)

		default:
			appendInline(spans, c, source, style)
		}
	}
}

// mergeSpans joins adjacent spans with identical styling and drops empties.
func mergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Bold == s.Bold && last.Italic == s.Italic && last.Code == s.Code {
				last.Text += s.Text
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func blockLines(b ast.BaseBlock, source []byte) string {
	var sb strings.Builder
	lines := b.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func nodeText(n ast.Node, source []byte) string {
	var spans []Span
	appendInline(&spans, n, source, Span{})
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return strings.TrimSpace(sb.String())
}

// SpanText joins spans into their plain text, discarding styling.
func SpanText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
