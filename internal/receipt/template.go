// Package receipt renders a sale receipt. Build produces the one canonical
// layout; the HTML, ESC/POS, PDF and text sinks only draw what it contains.
package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/pkg/currency"
	"github.com/bukusaku/bukusaku-api/pkg/printer"
)

// Mode selects the small differences between outputs.
type Mode int

const (
	ModePreview Mode = iota
	ModePrint
	ModeExport
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModePrint:
		return "print"
	case ModeExport:
		return "export"
	case ModeText:
		return "text"
	default:
		return "preview"
	}
}

// Kind is how a layout line is drawn.
type Kind int

const (
	KindTitle Kind = iota
	KindCenter
	KindText
	KindPair
	KindSeparator
	KindBlank
)

const dateLayout = "02/01/06 15:04"

const poweredBy = "Powered by Buku Saku App"

// Line is one row of the receipt. Text is the left (or only) part; Right is
// only set for KindPair.
type Line struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Right string `json:"right,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// Layout is a receipt laid out for one paper width. Every Text and Right
// already fits in Columns.
type Layout struct {
	WidthMM    int    `json:"width_mm"`
	Columns    int    `json:"columns"`
	Mode       Mode   `json:"-"`
	ShareTitle string `json:"share_title"`
	FileName   string `json:"file_name"`
	Lines      []Line `json:"lines"`
}

// Build lays out doc for widthMM paper. It is a pure function of its inputs.
func Build(doc *entity.Receipt, profile *entity.StoreProfile, widthMM int, mode Mode) (*Layout, error) {
	if doc == nil {
		return nil, fmt.Errorf("receipt: no document")
	}
	if profile == nil {
		profile = &entity.StoreProfile{}
	}
	cols, err := printer.ColumnsFor(widthMM)
	if err != nil {
		return nil, err
	}

	b := &builder{cols: cols}

	name := strings.TrimSpace(profile.Name)
	if mode == ModeText && name != "" {
		name = "*" + name + "*"
	}
	b.wrap(KindTitle, name, true)
	b.wrap(KindCenter, profile.Tagline, false)
	b.separator()

	b.pair("NO: "+doc.Number, doc.Date.Format(dateLayout), false)
	b.separator()

	for _, item := range doc.Items {
		b.wrap(KindText, item.Name, true)
		b.pair(fmt.Sprintf("%d x %s", item.Quantity, currency.Format(item.Price)), currency.Format(item.Subtotal), false)
	}
	b.separator()

	b.pair("TOTAL", currency.Format(doc.Total), true)
	if doc.HasTender() {
		b.pair("TUNAI", currency.Format(*doc.PaymentAmount), false)
		b.pair("KEMBALI", currency.Format(*doc.ChangeAmount), true)
	}
	b.separator()

	b.wrap(KindCenter, profile.ThankYou, true)
	for _, l := range profile.NoticeLines() {
		b.wrap(KindCenter, l, false)
	}
	if services := profile.ServiceLines(); len(services) > 0 {
		b.separator()
		b.wrap(KindCenter, "TERSEDIA LAYANAN:", true)
		for _, l := range services {
			b.wrap(KindCenter, l, false)
		}
		b.separator()
	}
	for _, l := range profile.AddressLines() {
		b.wrap(KindCenter, strings.ToUpper(l), false)
	}

	if mode == ModePrint || mode == ModeExport {
		b.blank()
		b.wrap(KindCenter, strings.ToUpper(poweredBy), false)
	}

	shareTitle := "Struk Belanja"
	if n := strings.TrimSpace(profile.Name); n != "" {
		shareTitle += " " + n
	}
	return &Layout{
		WidthMM:    widthMM,
		Columns:    cols,
		Mode:       mode,
		ShareTitle: shareTitle,
		FileName:   doc.FileName(),
		Lines:      b.lines,
	}, nil
}

type builder struct {
	cols  int
	lines []Line
}

func (b *builder) wrap(kind Kind, s string, bold bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	for _, l := range printer.Wrap(s, b.cols) {
		b.lines = append(b.lines, Line{Kind: kind, Text: l, Bold: bold})
	}
}

// pair puts left and right on one line, or on two when they do not fit.
func (b *builder) pair(left, right string, bold bool) {
	if utf8.RuneCountInString(left)+1+utf8.RuneCountInString(right) > b.cols {
		b.wrap(KindText, left, bold)
		left = ""
	}
	b.lines = append(b.lines, Line{Kind: KindPair, Text: left, Right: right, Bold: bold})
}

func (b *builder) separator() {
	if n := len(b.lines); n > 0 && b.lines[n-1].Kind == KindSeparator {
		return
	}
	b.lines = append(b.lines, Line{Kind: KindSeparator})
}

func (b *builder) blank() {
	b.lines = append(b.lines, Line{Kind: KindBlank})
}

// Rows renders each line as fixed-width text. Separators become dashes and
// centred lines are padded on the left.
func (l *Layout) Rows() []Row {
	rows := make([]Row, 0, len(l.Lines))
	for _, line := range l.Lines {
		var text string
		switch line.Kind {
		case KindTitle, KindCenter:
			text = printer.Center(line.Text, l.Columns)
		case KindPair:
			text = printer.PadBetween(line.Text, line.Right, l.Columns)
		case KindSeparator:
			text = strings.Repeat("-", l.Columns)
		default:
			text = line.Text
		}
		rows = append(rows, Row{Text: text, Bold: line.Bold})
	}
	return rows
}

// Row is a line of fixed-width output.
type Row struct {
	Text string
	Bold bool
}
