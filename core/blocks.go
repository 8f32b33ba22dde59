package core

// Span is a run of inline text, either plain or strongly emphasized.
type Span struct {
	Text   string `json:"text"`
	Strong bool   `json:"strong,omitempty"`
}

// BlockKind names the shape of a Block.
type BlockKind string

const (
	KindHeading      BlockKind = "heading"
	KindBoldHeading  BlockKind = "bold_heading"
	KindStep         BlockKind = "step"
	KindBulletList   BlockKind = "bullet_list"
	KindNumberedList BlockKind = "numbered_list"
	KindParagraph    BlockKind = "paragraph"
)

// MaxHeadingLevel is the deepest heading level a renderer may emit.
const MaxHeadingLevel = 6

// Block is one classified unit of a repair guide. The set of
// implementations is closed: Heading, BoldHeading, Step, BulletList,
// NumberedList and Paragraph.
type Block interface {
	Kind() BlockKind
	block()
}

// Heading is a "#"-prefixed block.
type Heading struct {
	Level int // number of leading '#', 1..6
	Text  []Span
}

// RenderLevel is the HTML heading level used when the heading sits below
// a page title: two levels deeper than written, never beyond MaxHeadingLevel.
func (h *Heading) RenderLevel() int {
	return max(1, min(h.Level+2, MaxHeadingLevel))
}

// BoldHeading is a block wrapped entirely in "**".
type BoldHeading struct {
	Text []Span
}

// Step is an explicit "Step N:" instruction.
type Step struct {
	Number int
	Text   []Span
}

// BulletList is a block with at least one "*" or "-" item.
type BulletList struct {
	Items [][]Span
}

// NumberedList is a block with at least one "N." item.
type NumberedList struct {
	Items [][]Span
}

// Paragraph is the fallback block. Lines keep their line breaks.
type Paragraph struct {
	Lines [][]Span
}

func (*Heading) Kind() BlockKind      { return KindHeading }
func (*BoldHeading) Kind() BlockKind  { return KindBoldHeading }
func (*Step) Kind() BlockKind         { return KindStep }
func (*BulletList) Kind() BlockKind   { return KindBulletList }
func (*NumberedList) Kind() BlockKind { return KindNumberedList }
func (*Paragraph) Kind() BlockKind    { return KindParagraph }

func (*Heading) block()      {}
func (*BoldHeading) block()  {}
func (*Step) block()         {}
func (*BulletList) block()   {}
func (*NumberedList) block() {}
func (*Paragraph) block()    {}

// PlainText joins the text of spans, dropping emphasis.
func PlainText(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
