package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclens/internal/ocr"
	"doclens/pkg/models"
)

// fakeRecognizer answers by the red channel of the image's first pixel.
type fakeRecognizer struct {
	mu      sync.Mutex
	answers map[uint8]string
	failing map[uint8]bool
	langs   []string
	calls   int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, data []byte, langCode string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.langs = append(f.langs, langCode)

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("fake recognizer got non-PNG input: %w", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	key := uint8(r >> 8)
	if f.failing[key] {
		return "", ocr.NewOCRError("Recognize", "fake", fmt.Errorf("%w: page %d", ocr.ErrEngineFailed, key), "")
	}
	return f.answers[key], nil
}

type fakeTextLayer struct {
	pages []string
	err   error
}

func (f fakeTextLayer) PageTexts([]byte) ([]string, error) { return f.pages, f.err }

type fakeRasterizer struct {
	name   string
	images [][]byte
	err    error
	calls  int
}

func (f *fakeRasterizer) Name() string { return f.name }

func (f *fakeRasterizer) Rasterize(context.Context, []byte) ([][]byte, error) {
	f.calls++
	return f.images, f.err
}

// pagePNG returns a 4x4 opaque PNG whose red channel identifies the page.
func pagePNG(t *testing.T, id uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: id, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestExtractor(rec ocr.Recognizer, layer TextLayerReader, primary, alternate Rasterizer) *Extractor {
	return New(rec, WithTextLayer(layer), WithRasterizers(primary, alternate))
}

func TestExtractPlainTextDropsInvalidBytes(t *testing.T) {
	e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)

	res, err := e.Extract(context.Background(), "notes.TXT", []byte("caf\xc3\xa9 \xff\xfeterms"), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "café terms", res.Text)
	assert.Equal(t, MethodPlainText, res.Method)
}

func TestExtractUnsupportedType(t *testing.T) {
	rec := &fakeRecognizer{}
	e := newTestExtractor(rec, nil, nil, nil)

	_, err := e.Extract(context.Background(), "slides.pptx", []byte("data"), models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, rec.calls)
	assert.False(t, Supported("slides.pptx"))
	assert.True(t, Supported("Scan.JPEG"))
}

func TestExtractEmptyFile(t *testing.T) {
	e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)
	_, err := e.Extract(context.Background(), "empty.pdf", nil, models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestExtractDOCXParagraphsInOrder(t *testing.T) {
	body := `<w:p><w:r><w:t>Lease</w:t></w:r><w:r><w:t xml:space="preserve"> Agreement</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Rent</w:t><w:tab/><w:t>500</w:t></w:r></w:p>`
	e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)

	res, err := e.Extract(context.Background(), "lease.docx", buildDOCX(t, body), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Lease Agreement\nRent\t500", res.Text)
	assert.Equal(t, MethodDOCX, res.Method)
}

func TestExtractDOCXKeepsParagraphAroundTextBox(t *testing.T) {
	body := `<w:p><w:r><w:t>Before box.</w:t></w:r>` +
		`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Inside</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>` +
		`<w:r><w:t>After box.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second para.</w:t></w:r></w:p>`

	paragraphs, err := docxParagraphs(bytes.NewReader([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Before box.After box.", "Second para."}, paragraphs)

	e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)
	res, err := e.Extract(context.Background(), "notice.docx", buildDOCX(t, body), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Before box.After box.\nSecond para.", res.Text)
}

func TestExtractDOCXCorrupt(t *testing.T) {
	e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)
	_, err := e.Extract(context.Background(), "broken.docx", []byte("not a zip"), models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestExtractPDFUsesTextLayer(t *testing.T) {
	rec := &fakeRecognizer{}
	primary := &fakeRasterizer{name: "primary"}
	alternate := &fakeRasterizer{name: "alternate"}
	layer := fakeTextLayer{pages: []string{"This agreement is made", "between the parties."}}
	e := newTestExtractor(rec, layer, primary, alternate)

	res, err := e.Extract(context.Background(), "contract.pdf", []byte("%PDF"), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "This agreement is made\nbetween the parties.", res.Text)
	assert.Equal(t, MethodPDFTextLayer, res.Method)
	assert.Zero(t, primary.calls)
	assert.Zero(t, alternate.calls)
	assert.Zero(t, rec.calls)
}

func TestExtractPDFShortTextLayerFallsBackToOCR(t *testing.T) {
	rec := &fakeRecognizer{answers: map[uint8]string{1: "scanned page text"}}
	primary := &fakeRasterizer{name: "primary", images: [][]byte{pagePNG(t, 1)}}
	// exactly 20 runes is not enough
	layer := fakeTextLayer{pages: []string{"12345678901234567890"}}
	e := newTestExtractor(rec, layer, primary, nil)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"), models.LanguageHindi)
	require.NoError(t, err)
	assert.Equal(t, "scanned page text", res.Text)
	assert.Equal(t, MethodPDFPoppler, res.Method)
	assert.Equal(t, []string{"hin"}, rec.langs)
}

func TestExtractPDFSkipsFailedPages(t *testing.T) {
	rec := &fakeRecognizer{
		answers: map[uint8]string{1: "page one", 3: "page three"},
		failing: map[uint8]bool{2: true},
	}
	primary := &fakeRasterizer{name: "primary", images: [][]byte{pagePNG(t, 1), pagePNG(t, 2), pagePNG(t, 3)}}
	alternate := &fakeRasterizer{name: "alternate"}
	e := newTestExtractor(rec, fakeTextLayer{}, primary, alternate)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "page one\npage three", res.Text)
	assert.Equal(t, MethodPDFPoppler, res.Method)
	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Warnings, 1)
	assert.Zero(t, alternate.calls)
}

func TestExtractPDFAlternateRasterizer(t *testing.T) {
	rec := &fakeRecognizer{answers: map[uint8]string{7: "rendered by mutool"}}
	primary := &fakeRasterizer{name: "primary", err: errors.New("pdftoppm not available")}
	alternate := &fakeRasterizer{name: "alternate", images: [][]byte{pagePNG(t, 7)}}
	layer := fakeTextLayer{err: errors.New("malformed xref")}
	e := newTestExtractor(rec, layer, primary, alternate)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"), models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "rendered by mutool", res.Text)
	assert.Equal(t, MethodPDFMuPDF, res.Method)
	assert.Len(t, res.Warnings, 2)
}

func TestExtractPDFNoReadableText(t *testing.T) {
	rec := &fakeRecognizer{
		answers: map[uint8]string{1: "   "},
		failing: map[uint8]bool{2: true},
	}
	primary := &fakeRasterizer{name: "primary", images: [][]byte{pagePNG(t, 1), pagePNG(t, 2)}}
	alternate := &fakeRasterizer{name: "alternate", images: [][]byte{pagePNG(t, 2)}}
	e := newTestExtractor(rec, fakeTextLayer{pages: []string{""}}, primary, alternate)

	res, err := e.Extract(context.Background(), "blank.pdf", []byte("%PDF"), models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrNoReadableText)
	assert.Nil(t, res)
	assert.Equal(t, 1, alternate.calls)
}

func TestExtractPDFReportsEngineFailure(t *testing.T) {
	rec := &fakeRecognizer{failing: map[uint8]bool{1: true, 2: true}}
	primary := &fakeRasterizer{name: "primary", images: [][]byte{pagePNG(t, 1), pagePNG(t, 2)}}
	alternate := &fakeRasterizer{name: "alternate", images: [][]byte{pagePNG(t, 1)}}
	e := newTestExtractor(rec, fakeTextLayer{pages: []string{""}}, primary, alternate)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"), models.LanguageEnglish)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ocr.ErrEngineFailed)
	assert.NotErrorIs(t, err, ErrNoReadableText)
	assert.Contains(t, err.Error(), "3 warnings")
	assert.Equal(t, 3, rec.calls)
}

func TestExtractImage(t *testing.T) {
	rec := &fakeRecognizer{answers: map[uint8]string{9: "Take two tablets daily"}}
	e := newTestExtractor(rec, nil, nil, nil)

	res, err := e.Extract(context.Background(), "rx.png", pagePNG(t, 9), models.LanguageTelugu)
	require.NoError(t, err)
	assert.Equal(t, "Take two tablets daily", res.Text)
	assert.Equal(t, MethodImageOCR, res.Method)
	assert.Equal(t, []string{"tel"}, rec.langs)
}

func TestExtractImageErrors(t *testing.T) {
	t.Run("engine failure", func(t *testing.T) {
		rec := &fakeRecognizer{failing: map[uint8]bool{9: true}}
		e := newTestExtractor(rec, nil, nil, nil)
		_, err := e.Extract(context.Background(), "rx.png", pagePNG(t, 9), models.LanguageEnglish)
		assert.ErrorIs(t, err, ocr.ErrEngineFailed)
	})

	t.Run("no text", func(t *testing.T) {
		e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)
		_, err := e.Extract(context.Background(), "blank.jpg", pagePNG(t, 9), models.LanguageEnglish)
		assert.ErrorIs(t, err, ErrNoReadableText)
	})

	t.Run("undecodable", func(t *testing.T) {
		e := newTestExtractor(&fakeRecognizer{}, nil, nil, nil)
		_, err := e.Extract(context.Background(), "photo.jpg", []byte("not an image"), models.LanguageEnglish)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestNormalizeImageFlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	src.Set(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := normalizeImage(in.Bytes())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
	_, _, b, a = img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestPDFTextLayerRejectsGarbage(t *testing.T) {
	_, err := PDFTextLayer{}.PageTexts([]byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestReadPagesOrdersNumerically(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{10, 2, 1} {
		name := fmt.Sprintf("%s/page-%d.png", dir, n)
		require.NoError(t, writeFile(name, []byte{byte(n)}))
	}
	pages, err := readPages(dir)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []byte{1}, pages[0])
	assert.Equal(t, []byte{2}, pages[1])
	assert.Equal(t, []byte{10}, pages[2])
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}
