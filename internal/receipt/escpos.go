package receipt

import (
	"github.com/bukusaku/bukusaku-api/pkg/printer"
)

// ESCPOS renders the layout as a byte stream for a thermal printer. The roll
// is continuous so the stream ends with a feed and a partial cut instead of
// a page break.
func ESCPOS(l *Layout) []byte {
	doc := printer.NewDocument(l.Columns)

	for _, line := range l.Lines {
		switch line.Kind {
		case KindTitle:
			doc.Align(printer.AlignCenter).
				Bold(true).
				FontSize(printer.FontTall).
				Line(line.Text).
				FontSize(printer.FontNormal).
				Bold(false)
		case KindCenter:
			doc.Align(printer.AlignCenter).Bold(line.Bold).Line(line.Text).Bold(false)
		case KindPair:
			doc.Align(printer.AlignLeft).Bold(line.Bold).Pair(line.Text, line.Right).Bold(false)
		case KindSeparator:
			doc.Align(printer.AlignLeft).Rule('-')
		case KindBlank:
			doc.Feed(1)
		default:
			doc.Align(printer.AlignLeft).Bold(line.Bold).Line(line.Text).Bold(false)
		}
	}

	doc.Align(printer.AlignLeft).
		Feed(3).
		PartialCut()
	return doc.Bytes()
}
