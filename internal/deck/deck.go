// Package deck loads a .pptx presentation as an ordered set of slide images.
package deck

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gocv.io/x/gocv"
)

// Extension is the only deck format accepted.
const Extension = ".pptx"

// Setup errors returned before a session starts.
var (
	ErrUnsupportedFormat     = errors.New("selected file is not a PowerPoint (.pptx) file")
	ErrRasterizerUnavailable = errors.New("office suite is not available")
	ErrCorruptDeck           = errors.New("deck cannot be read")
	ErrEmptyDeck             = errors.New("deck has no slides")
)

var slideEntry = regexp.MustCompile(`^ppt/slides/slide[0-9]+\.xml$`)

// Inspect checks that path names a readable .pptx archive and returns its slide count.
func Inspect(path string) (int, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("open deck: %w", err)
		}
		return 0, fmt.Errorf("%w: %v", ErrCorruptDeck, err)
	}
	defer zr.Close()

	count := 0
	for _, f := range zr.File {
		if slideEntry.MatchString(f.Name) {
			count++
		}
	}
	if count == 0 {
		return 0, ErrEmptyDeck
	}
	return count, nil
}

// Deck is the ordered, immutable set of slide images of one presentation.
// The current position lives in the session state, not here.
type Deck struct {
	Path   string
	slides []gocv.Mat
}

// Load validates path, rasterizes it into a temporary directory and reads every slide
// resized to width x height. The deck keeps the absolute path. The temporary files are
// removed before returning, and on failure no partially loaded slides are kept.
func Load(ctx context.Context, path string, r Rasterizer, width, height int) (*Deck, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	parts, err := Inspect(path)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "mudra-slides-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	log.Printf("Converting %s to slide images...", filepath.Base(path))
	files, err := r.Rasterize(ctx, path, tmpDir)
	if err != nil {
		return nil, err
	}

	d := &Deck{Path: path}
	for _, file := range files {
		img := gocv.IMRead(file, gocv.IMReadColor)
		if img.Empty() {
			img.Close()
			log.Printf("Skipping unreadable slide image %s", filepath.Base(file))
			continue
		}
		if img.Cols() != width || img.Rows() != height {
			resized := gocv.NewMat()
			gocv.Resize(img, &resized, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationLinear)
			img.Close()
			img = resized
		}
		d.slides = append(d.slides, img)
	}

	if len(d.slides) == 0 {
		return nil, ErrEmptyDeck
	}

	if len(d.slides) != parts {
		// Hidden slides are not exported by the office suite.
		log.Printf("Deck has %d slide parts, %d were exported", parts, len(d.slides))
	}
	log.Printf("Loaded %d slides", len(d.slides))
	return d, nil
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Slide returns slide i. The caller must not modify or close it.
func (d *Deck) Slide(i int) *gocv.Mat {
	return &d.slides[i]
}

// Close releases every slide image.
func (d *Deck) Close() error {
	for i := range d.slides {
		d.slides[i].Close()
	}
	d.slides = nil
	return nil
}
