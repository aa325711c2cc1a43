package receipt

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/bukusaku/bukusaku-api/pkg/printer"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	rasterPadding    = 12
	rasterLineHeight = 15
)

// Rasterize draws the layout onto a white image, one text row per line, in
// a 7x13 bitmap font.
func Rasterize(l *Layout) *image.Gray {
	face := basicfont.Face7x13
	rows := l.Rows()

	w := l.Columns*face.Advance + 2*rasterPadding
	h := len(rows)*rasterLineHeight + 2*rasterPadding
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: face}
	for i, row := range rows {
		baseline := rasterPadding + i*rasterLineHeight + face.Ascent
		text := printer.ASCII(row.Text)

		d.Dot = fixed.P(rasterPadding, baseline)
		d.DrawString(text)
		if row.Bold {
			d.Dot = fixed.P(rasterPadding+1, baseline)
			d.DrawString(text)
		}
	}
	return img
}

// PDF wraps the rasterized layout in a single-page document. The page is as
// wide as the paper and as tall as the image's aspect ratio requires, so the
// receipt is never split across pages.
func PDF(l *Layout) ([]byte, error) {
	img := Rasterize(l)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("receipt: encode image: %w", err)
	}

	b := img.Bounds()
	widthMM := float64(l.WidthMM)
	heightMM := widthMM * float64(b.Dy()) / float64(b.Dx())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: widthMM, Ht: heightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.FileName, true)
	pdf.SetCreator("bukusaku", true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt", opts, &pngBuf)
	pdf.ImageOptions("receipt", 0, 0, widthMM, heightMM, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("receipt: write pdf: %w", err)
	}
	return out.Bytes(), nil
}
