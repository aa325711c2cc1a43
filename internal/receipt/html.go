package receipt

import (
	"bytes"
	"fmt"
	"html/template"
)

// charWidthEm is the advance of one monospace glyph relative to its size.
const charWidthEm = 0.6

// sideMarginMM is left blank on each side of the roll.
const sideMarginMM = 1.5

type htmlView struct {
	*Layout
	Rows   []Row
	FontMM string
	Print  bool
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`{{define "style"}}
.receipt{box-sizing:border-box;width:{{.WidthMM}}mm;padding:2mm {{.Side}}mm;background:#fff;color:#000;font-family:'Courier New',Courier,monospace;font-size:{{.FontMM}}mm;line-height:1.2}
.receipt .row{white-space:pre;overflow:hidden}
.receipt .bold{font-weight:bold}
{{end}}{{define "body"}}<div class="receipt" data-width="{{.WidthMM}}">
{{range .Rows}}<div class="row{{if .Bold}} bold{{end}}">{{.Text}}</div>
{{end}}</div>{{end}}{{define "preview"}}<style>{{template "style" .}}</style>
{{template "body" .}}{{end}}{{define "print"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.FileName}}</title>
<style>
@page{size:{{.WidthMM}}mm auto;margin:0}
html,body{margin:0;padding:0;background:#fff}
{{template "style" .}}</style>
</head>
<body onload="window.print()">
{{template "body" .}}
</body>
</html>
{{end}}`))

func (v htmlView) Side() string {
	return fmt.Sprintf("%.1f", sideMarginMM)
}

func newHTMLView(l *Layout) htmlView {
	usable := float64(l.WidthMM) - 2*sideMarginMM
	font := usable / (float64(l.Columns) * charWidthEm)
	return htmlView{Layout: l, Rows: l.Rows(), FontMM: fmt.Sprintf("%.2f", font)}
}

// PreviewHTML renders an HTML fragment for showing the receipt on screen.
// The same layout always yields the same bytes.
func PreviewHTML(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.ExecuteTemplate(&buf, "preview", newHTMLView(l)); err != nil {
		return nil, fmt.Errorf("receipt: render preview: %w", err)
	}
	return buf.Bytes(), nil
}

// PrintHTML renders a standalone page containing only the receipt. The page
// is as wide as the roll and has no fixed length, and it opens the browser
// print dialog on load.
func PrintHTML(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.ExecuteTemplate(&buf, "print", newHTMLView(l)); err != nil {
		return nil, fmt.Errorf("receipt: render print page: %w", err)
	}
	return buf.Bytes(), nil
}
