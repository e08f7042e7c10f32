package docx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Document is a loaded DOCX file. The paragraph/run model is backed by the
// parsed word/document.xml tree, so text written through SetText ends up in
// the serialized output. All other container parts are kept verbatim.
type Document struct {
	parts      []part
	dom        *xmlquery.Node
	paragraphs []*Paragraph
}

// part is a single entry of the DOCX ZIP container, in original order.
type part struct {
	name string
	data []byte
}

// Paragraph is an ordered sequence of runs. Its position in the document
// (1-based) is what findings report as the line number.
type Paragraph struct {
	node *xmlquery.Node
	runs []*Run
}

// Run is a contiguous span of text sharing one style.
type Run struct {
	node      *xmlquery.Node
	textNodes []*xmlquery.Node // the w:t elements of this run
	bold      *bool
	font      string
	size      *float64 // points
}

// Paragraphs returns the body paragraphs in document order.
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Runs returns the paragraph's runs in document order.
func (p *Paragraph) Runs() []*Run {
	return p.runs
}

// Text returns the concatenation of the paragraph's run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Text returns the run's text content.
func (r *Run) Text() string {
	if len(r.textNodes) == 1 {
		return elementText(r.textNodes[0])
	}
	var sb strings.Builder
	for _, t := range r.textNodes {
		sb.WriteString(elementText(t))
	}
	return sb.String()
}

// SetText replaces the run's text content in the underlying document tree.
// The full text is written into the run's first w:t element; any further
// w:t elements are emptied so the concatenation stays equal to s.
func (r *Run) SetText(s string) {
	if len(r.textNodes) == 0 {
		return
	}
	setElementText(r.textNodes[0], s)
	if s != "" && s != strings.TrimSpace(s) {
		setAttr(r.textNodes[0], "xml", "space", "preserve")
	}
	for _, t := range r.textNodes[1:] {
		setElementText(t, "")
	}
}

// Bold reports the run's direct bold formatting. Nil means no direct
// formatting (inherited from the style, unknown to the model).
func (r *Run) Bold() *bool {
	return r.bold
}

// Font returns the run's directly formatted font name, or "" when unset.
func (r *Run) Font() string {
	return r.font
}

// Size returns the run's directly formatted font size in points, or nil
// when unset.
func (r *Run) Size() *float64 {
	return r.size
}

// newParagraph builds the paragraph model from a w:p element.
func newParagraph(node *xmlquery.Node) *Paragraph {
	p := &Paragraph{node: node}
	for _, rn := range childElements(node, "r") {
		p.runs = append(p.runs, newRun(rn))
	}
	return p
}

// newRun builds the run model from a w:r element, reading direct run
// properties (w:rPr) only. Style inheritance is deliberately not resolved:
// the checks care about explicit formatting.
func newRun(node *xmlquery.Node) *Run {
	r := &Run{node: node}
	r.textNodes = childElements(node, "t")

	rpr := findChild(node, "rPr")
	if rpr == nil {
		return r
	}

	if b := findChild(rpr, "b"); b != nil {
		v := parseOnOff(attrValue(b, "val"))
		r.bold = &v
	}
	if fonts := findChild(rpr, "rFonts"); fonts != nil {
		r.font = attrValue(fonts, "ascii")
		if r.font == "" {
			r.font = attrValue(fonts, "hAnsi")
		}
	}
	if sz := findChild(rpr, "sz"); sz != nil {
		if hp, err := strconv.ParseFloat(attrValue(sz, "val"), 64); err == nil && hp > 0 {
			pt := hp / 2 // w:sz is expressed in half-points
			r.size = &pt
		}
	}
	return r
}

// parseOnOff interprets an OOXML on/off attribute value. An empty value
// (bare <w:b/>) means on.
func parseOnOff(v string) bool {
	switch strings.ToLower(v) {
	case "0", "false", "off", "none":
		return false
	default:
		return true
	}
}

// childElements returns the direct child elements with the given local name,
// ignoring the namespace prefix. DOCX files in the wild use w: almost
// exclusively, but nothing here depends on it.
func childElements(n *xmlquery.Node, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			out = append(out, c)
		}
	}
	return out
}

// findChild returns the first direct child element with the given local name.
func findChild(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// attrValue returns the value of the named attribute, matching on the local
// attribute name.
func attrValue(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// setAttr sets or replaces an attribute on an element.
func setAttr(n *xmlquery.Node, prefix, local, value string) {
	for i, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == prefix {
			n.Attr[i].Value = value
			return
		}
	}
	n.SetAttr(prefix+":"+local, value)
}

// elementText returns the concatenated text content of an element node.
func elementText(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// setElementText replaces an element's children with a single text node,
// or removes them entirely when s is empty.
func setElementText(n *xmlquery.Node, s string) {
	n.FirstChild = nil
	n.LastChild = nil
	if s == "" {
		return
	}
	text := &xmlquery.Node{
		Type:   xmlquery.TextNode,
		Data:   s,
		Parent: n,
	}
	n.FirstChild = text
	n.LastChild = text
}
