package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// maxOCRPixels bounds the size of an image sent to OCR. Larger photos are
// scaled down, keeping the aspect ratio.
const maxOCRPixels = 40_000_000

// normalizeImage decodes a PNG or JPEG, flattens it onto an opaque white
// RGB canvas and re-encodes it as PNG.
func normalizeImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrInvalidDocument, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidDocument)
	}

	dstW, dstH := w, h
	if pixels := w * h; pixels > maxOCRPixels {
		scale := math.Sqrt(float64(maxOCRPixels) / float64(pixels))
		dstW = max(1, int(float64(w)*scale))
		dstH = max(1, int(float64(h)*scale))
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if dstW == w && dstH == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, langCode string) (*Result, error) {
	normalized, err := normalizeImage(data)
	if err != nil {
		return nil, err
	}

	text, err := e.ocr.Recognize(ctx, normalized, langCode)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Method: MethodImageOCR, Pages: 1}, nil
}
