package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gocv.io/x/gocv"
)

// Rasterizer exports every slide of a deck as an image file.
type Rasterizer interface {
	// Rasterize writes one image per slide into outDir and returns their paths in slide order.
	Rasterize(ctx context.Context, deckPath, outDir string) ([]string, error)
}

// Default binaries of the office-suite pipeline.
const (
	DefaultSoffice  = "soffice"
	DefaultPdftoppm = "pdftoppm"
)

// OfficeRasterizer converts a deck with LibreOffice (deck to PDF) and Poppler (PDF pages to JPEG).
type OfficeRasterizer struct {
	Soffice  string
	Pdftoppm string
	Width    int
	Height   int
	exec     *Executor
}

// NewOfficeRasterizer creates a rasterizer that exports slides at width x height.
func NewOfficeRasterizer(width, height int, timeout time.Duration) *OfficeRasterizer {
	return &OfficeRasterizer{
		Soffice:  DefaultSoffice,
		Pdftoppm: DefaultPdftoppm,
		Width:    width,
		Height:   height,
		exec:     NewExecutor(timeout),
	}
}

// Rasterize implements Rasterizer.
func (r *OfficeRasterizer) Rasterize(ctx context.Context, deckPath, outDir string) ([]string, error) {
	absDeck, err := filepath.Abs(deckPath)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	// A private profile keeps a running LibreOffice from swallowing the conversion.
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(outDir, "profile"))

	if _, err := r.exec.Run(ctx, outDir, r.Soffice,
		profile, "--headless", "--convert-to", "pdf", "--outdir", outDir, absDeck); err != nil {
		return nil, fmt.Errorf("convert deck to pdf: %w", err)
	}

	pdf := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(absDeck), filepath.Ext(absDeck))+".pdf")
	if _, err := os.Stat(pdf); err != nil {
		return nil, fmt.Errorf("%w: office suite produced no pdf", ErrCorruptDeck)
	}

	if _, err := r.exec.Run(ctx, outDir, r.Pdftoppm,
		"-jpeg",
		"-scale-to-x", strconv.Itoa(r.Width),
		"-scale-to-y", strconv.Itoa(r.Height),
		pdf, filepath.Join(outDir, "slide")); err != nil {
		return nil, fmt.Errorf("export slides: %w", err)
	}

	return slideImages(outDir)
}

// slideImages lists slide-N.jpg files in page order. pdftoppm zero-pads N
// to the width of the page count, so the number is parsed rather than sorted as text.
func slideImages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "slide-*.jpg"))
	if err != nil {
		return nil, err
	}

	type page struct {
		n    int
		path string
	}
	pages := make([]page, 0, len(matches))
	for _, m := range matches {
		num := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "slide-"), ".jpg")
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		pages = append(pages, page{n: n, path: m})
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].n < pages[j].n
	})

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}

// MockRasterizer writes solid-colored slides for tests and demos.
type MockRasterizer struct {
	Slides int
	Width  int
	Height int
	Err    error
}

// Rasterize implements Rasterizer. Slide i is filled with a gray level derived from i
// so tests can tell slides apart.
func (m *MockRasterizer) Rasterize(ctx context.Context, deckPath, outDir string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	paths := make([]string, 0, m.Slides)
	for i := 0; i < m.Slides; i++ {
		level := float64(SlideShade(i))
		img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(level, level, level, 0), m.Height, m.Width, gocv.MatTypeCV8UC3)
		path := filepath.Join(outDir, fmt.Sprintf("slide-%d.jpg", i+1))
		ok := gocv.IMWrite(path, img)
		img.Close()
		if !ok {
			return nil, fmt.Errorf("write mock slide %d", i+1)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SlideShade is the gray level MockRasterizer paints slide i with.
func SlideShade(i int) uint8 {
	return uint8(40 + (i*50)%200)
}
