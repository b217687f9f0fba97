package extract

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	rpdf "rsc.io/pdf"
)

// TextLayerReader returns the embedded text of each PDF page.
type TextLayerReader interface {
	PageTexts(data []byte) ([]string, error)
}

// PDFTextLayer reads the text layer with rsc.io/pdf.
type PDFTextLayer struct{}

// PageTexts implements TextLayerReader. rsc.io/pdf panics on some malformed
// files; the panic is returned as an error.
func (PDFTextLayer) PageTexts(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("read pdf text layer: %v", r)
		}
	}()

	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	n := doc.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(p.Content().Text))
	}
	return pages, nil
}

// pageText joins glyph runs, breaking lines when the baseline moves.
func pageText(runs []rpdf.Text) string {
	var b strings.Builder
	lastY := math.NaN()
	lastEnd := math.NaN()
	for _, t := range runs {
		switch {
		case math.IsNaN(lastY):
		case math.Abs(t.Y-lastY) > t.FontSize/2:
			b.WriteByte('\n')
		case t.X-lastEnd > t.FontSize/4:
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
	}
	return b.String()
}
