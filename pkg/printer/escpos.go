package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
	FontTall   = 0x01
)

// Document accumulates an ESC/POS byte stream for a roll-fed thermal printer.
// The stream has no page concept: it feeds paper as long as there are lines.
type Document struct {
	buf     bytes.Buffer
	columns int
}

// NewDocument starts a document for a printer with the given number of
// character columns at normal font size.
func NewDocument(columns int) *Document {
	if columns <= 0 {
		columns = DefaultColumns
	}
	d := &Document{columns: columns}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Columns returns the character width of the document.
func (d *Document) Columns() int {
	return d.columns
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) FontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s followed by a line feed. Text longer than the paper is left
// for the printer to wrap.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(ASCII(s))
	d.buf.WriteByte(LF)
	return d
}

// Rule prints a full-width separator made of ch.
func (d *Document) Rule(ch rune) *Document {
	return d.Line(strings.Repeat(string(ch), d.columns))
}

// Pair prints left and right on one line, padded to the full width.
// Example at 32 columns: "TOTAL                  Rp 13.000"
func (d *Document) Pair(left, right string) *Document {
	return d.Line(PadBetween(left, right, d.columns))
}

// PartialCut leaves a small uncut tab so the receipt hangs from the roll.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// PadBetween joins left and right with enough spaces to fill width runes.
// At least one space is kept when the two do not fit.
func PadBetween(left, right string, width int) string {
	spaces := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// Center pads s on the left so it sits in the middle of width runes.
func Center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

// Wrap breaks s into lines no longer than width runes, splitting on spaces
// where possible and hard-splitting words that are longer than a line.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = cur[:0]
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			lines = append(lines, string(cur))
			cur = append(cur[:0], w...)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// ASCII replaces runes thermal printer code pages cannot show.
func ASCII(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '•' || r == '·':
			return '-'
		case r == '–' || r == '—':
			return '-'
		case r < 0x80:
			return r
		default:
			return '?'
		}
	}, s)
}
