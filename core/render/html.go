// Package render: HTML renderer.
// Builds an HTML fragment for the guide as a golang.org/x/net/html node
// tree, so escaping is handled by the serializer.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/selffix-ai/repairguide/core"
)

var headingAtoms = [core.MaxHeadingLevel]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTMLRenderer renders a guide as an HTML fragment.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render serializes the guide inside a <div class="repair-guide">.
func (r *HTMLRenderer) Render(guide core.Guide) ([]byte, error) {
	root := element(atom.Div, "repair-guide")
	if header := metaHTML(guide.Meta); header != nil {
		root.AppendChild(header)
	}
	for _, b := range guide.Blocks {
		if n := blockHTML(b); n != nil {
			root.AppendChild(n)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func blockHTML(b core.Block) *html.Node {
	switch b := b.(type) {
	case *core.Heading:
		return element(headingAtoms[b.RenderLevel()-1], "", spansHTML(b.Text)...)
	case *core.BoldHeading:
		return element(atom.H3, "", spansHTML(b.Text)...)
	case *core.Step:
		label := strconv.Itoa(b.Number)
		return element(atom.Div, "step",
			element(atom.Div, "step-badge", element(atom.Span, "", text(label))),
			element(atom.Div, "step-body",
				element(atom.Strong, "", text("Step "+label)),
				element(atom.P, "", spansHTML(b.Text)...),
			),
		)
	case *core.BulletList:
		return listHTML(atom.Ul, b.Items)
	case *core.NumberedList:
		return listHTML(atom.Ol, b.Items)
	case *core.Paragraph:
		p := element(atom.P, "")
		for i, line := range b.Lines {
			if i > 0 {
				p.AppendChild(element(atom.Br, ""))
			}
			for _, n := range spansHTML(line) {
				p.AppendChild(n)
			}
		}
		return p
	default:
		return nil
	}
}

func listHTML(tag atom.Atom, items [][]core.Span) *html.Node {
	list := element(tag, "")
	for _, item := range items {
		list.AppendChild(element(atom.Li, "", spansHTML(item)...))
	}
	return list
}

func spansHTML(spans []core.Span) []*html.Node {
	nodes := make([]*html.Node, 0, len(spans))
	for _, s := range spans {
		if s.Strong {
			nodes = append(nodes, element(atom.Strong, "", text(s.Text)))
			continue
		}
		nodes = append(nodes, text(s.Text))
	}
	return nodes
}

// metaHTML renders the diagnosis summary, or nil when there is none.
func metaHTML(meta core.GuideMetadata) *html.Node {
	title := guideTitle(meta)
	fields := summaryFields(meta)
	if title == "" && len(fields) == 0 {
		return nil
	}

	header := element(atom.Header, "guide-summary")
	if title != "" {
		header.AppendChild(element(atom.H2, "", text(title)))
	}
	if len(fields) > 0 {
		dl := element(atom.Dl, "")
		for _, f := range fields {
			dl.AppendChild(element(atom.Dt, "", text(f.label)))
			dl.AppendChild(element(atom.Dd, "", text(f.value)))
		}
		header.AppendChild(dl)
	}
	return header
}

func element(tag atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
