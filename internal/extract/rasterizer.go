package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Rasterizer renders PDF pages to PNG images.
type Rasterizer interface {
	// Name identifies the rasteriser in logs and warnings.
	Name() string

	// Rasterize returns one PNG per rendered page, in page order.
	Rasterize(ctx context.Context, pdf []byte) ([][]byte, error)
}

// PopplerRasterizer renders pages 1-10 at 300 DPI with pdftoppm.
type PopplerRasterizer struct {
	Path      string
	DPI       int
	FirstPage int
	LastPage  int
}

// NewPopplerRasterizer returns a pdftoppm rasteriser with the default page window.
func NewPopplerRasterizer(path string) *PopplerRasterizer {
	if path == "" {
		path = "pdftoppm"
	}
	return &PopplerRasterizer{Path: path, DPI: 300, FirstPage: 1, LastPage: 10}
}

// Name implements Rasterizer.
func (p *PopplerRasterizer) Name() string { return "pdftoppm" }

// Rasterize implements Rasterizer.
func (p *PopplerRasterizer) Rasterize(ctx context.Context, pdf []byte) ([][]byte, error) {
	if _, err := exec.LookPath(p.Path); err != nil {
		return nil, fmt.Errorf("pdftoppm not available: %w", err)
	}

	dir, pdfPath, cleanup, err := stagePDF(pdf)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{"-r", strconv.Itoa(p.DPI), "-png"}
	if p.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(p.FirstPage))
	}
	if p.LastPage > 0 {
		args = append(args, "-l", strconv.Itoa(p.LastPage))
	}
	args = append(args, pdfPath, filepath.Join(dir, "page"))

	cmd := exec.CommandContext(ctx, p.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w; out=%s", err, strings.TrimSpace(string(out)))
	}
	return readPages(dir)
}

// MuPDFRasterizer renders pages 1-5 at 2x scale (144 DPI) with mutool draw.
type MuPDFRasterizer struct {
	Path     string
	DPI      int
	LastPage int
}

// NewMuPDFRasterizer returns a mutool rasteriser with the default page window.
func NewMuPDFRasterizer(path string) *MuPDFRasterizer {
	if path == "" {
		path = "mutool"
	}
	return &MuPDFRasterizer{Path: path, DPI: 144, LastPage: 5}
}

// Name implements Rasterizer.
func (m *MuPDFRasterizer) Name() string { return "mutool" }

// Rasterize implements Rasterizer.
func (m *MuPDFRasterizer) Rasterize(ctx context.Context, pdf []byte) ([][]byte, error) {
	if _, err := exec.LookPath(m.Path); err != nil {
		return nil, fmt.Errorf("mutool not available: %w", err)
	}

	dir, pdfPath, cleanup, err := stagePDF(pdf)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{
		"draw", "-q",
		"-r", strconv.Itoa(m.DPI),
		"-F", "png",
		"-o", filepath.Join(dir, "page-%d.png"),
		pdfPath,
	}
	if m.LastPage > 0 {
		args = append(args, fmt.Sprintf("1-%d", m.LastPage))
	}

	cmd := exec.CommandContext(ctx, m.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// mutool exits non-zero when the requested range exceeds the page
		// count but still renders the pages that exist.
		pages, readErr := readPages(dir)
		if readErr == nil && len(pages) > 0 {
			return pages, nil
		}
		return nil, fmt.Errorf("mutool draw failed: %w; out=%s", err, strings.TrimSpace(string(out)))
	}
	return readPages(dir)
}

// stagePDF writes pdf into a fresh temporary directory.
func stagePDF(pdf []byte) (dir, path string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "doclens-pdf-*")
	if err != nil {
		return "", "", func() {}, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	path = filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		cleanup()
		return "", "", func() {}, fmt.Errorf("write temp pdf: %w", err)
	}
	return dir, path, cleanup, nil
}

var pageFile = regexp.MustCompile(`^page-(\d+)\.png$`)

// readPages loads page-N.png files from dir ordered by N.
func readPages(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type page struct {
		num  int
		path string
	}
	var found []page
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageFile.FindStringSubmatch(strings.ToLower(e.Name()))
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, page{num: n, path: filepath.Join(dir, e.Name())})
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no page images produced")
	}
	sort.Slice(found, func(i, j int) bool { return found[i].num < found[j].num })

	images := make([][]byte, 0, len(found))
	for _, p := range found {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", p.num, err)
		}
		images = append(images, data)
	}
	return images, nil
}
