// Package testutil builds the decks and frames shared by tests.
package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// WriteDeck writes a minimal .pptx archive with the given number of slide parts
// into dir and returns its path. The slides carry no content; only the package
// layout a deck inspector looks at is present.
func WriteDeck(dir, name string, slides int) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create deck: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := []string{"[Content_Types].xml", "ppt/presentation.xml"}
	for i := 1; i <= slides; i++ {
		parts = append(parts, fmt.Sprintf("ppt/slides/slide%d.xml", i))
		parts = append(parts, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i))
	}

	for _, part := range parts {
		w, err := zw.Create(part)
		if err != nil {
			return "", fmt.Errorf("add %s: %w", part, err)
		}
		if _, err := w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>`)); err != nil {
			return "", fmt.Errorf("write %s: %w", part, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finish deck: %w", err)
	}
	return path, nil
}

// SolidFrame returns a width x height BGR frame filled with one gray level.
// The caller owns the returned Mat.
func SolidFrame(width, height int, level uint8) gocv.Mat {
	v := float64(level)
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), height, width, gocv.MatTypeCV8UC3)
}

// Frames returns n solid frames for camera playback. The caller closes them.
func Frames(n, width, height int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := SolidFrame(width, height, 90)
		frames[i] = &m
	}
	return frames
}
