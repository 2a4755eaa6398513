package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

var background = image.NewUniform(color.White)

// Resolve returns the first existing source for basename, trying the brand
// directory before the flat source root.
func Resolve(sourceRoot, brandDir, basename string) (string, bool) {
	if basename == "" {
		return "", false
	}
	candidates := []string{
		filepath.Join(sourceRoot, brandDir, basename),
		filepath.Join(sourceRoot, basename),
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

// Load decodes the image file at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// TargetSize returns the derivative size for a w x h source capped at
// maxWidth. Sources at or under maxWidth keep their size.
func TargetSize(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	nh := maxWidth * h / w
	if nh < 1 {
		nh = 1
	}
	return maxWidth, nh
}

// Resize scales img down to maxWidth preserving aspect ratio, never up.
// Transparent areas are flattened onto white.
func Resize(img image.Image, maxWidth int) *image.RGBA {
	bounds := img.Bounds()
	w, h := TargetSize(bounds.Dx(), bounds.Dy(), maxWidth)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), background, image.Point{}, draw.Src)

	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
		return dst
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// EncodeWebP encodes img as lossy WebP at the given quality.
func EncodeWebP(img image.Image, quality float32) ([]byte, error) {
	var buf bytes.Buffer
	opt := &webp.Options{Lossless: false, Quality: quality}
	if err := webp.Encode(&buf, img, opt); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}
