// SPDX-License-Identifier: MIT

package rasterio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/difftrace/field"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// MaskLevel is the luminance above which a mask pixel is inside the region.
const MaskLevel = 128

// ImageCodec reads and writes raster images.
type ImageCodec interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

// PNG decodes any registered format and encodes PNG.
type PNG struct{}

var _ ImageCodec = PNG{}

// Decode sniffs the format of r.
func (PNG) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Encode writes img as PNG.
func (PNG) Encode(w io.Writer, img image.Image) error { return png.Encode(w, img) }

// MaskFromImage thresholds img by luminance: Y > MaskLevel is inside.
func MaskFromImage(img image.Image) (*field.Mask, error) {
	b := img.Bounds()
	m, err := field.NewMask(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	bits := m.Bits()
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			bits[(y-b.Min.Y)*w+x-b.Min.X] = g.Y > MaskLevel
		}
	}

	return m, nil
}

// LoadMask decodes the image at path with codec and thresholds it.
func LoadMask(path string, codec ImageCodec) (*field.Mask, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	img, err := codec.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("mask %q: %w", path, err)
	}
	m, err := MaskFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("mask %q: %w", path, err)
	}

	return m, nil
}

// Gray renders f as an 8-bit grayscale image, mapping [lo, hi] onto
// [0, 255] and clamping outside values. hi <= lo renders black.
func Gray(f *field.Field, lo, hi float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Cols(), f.Rows()))
	span := hi - lo
	for i, v := range f.Data() {
		if span <= 0 {
			break
		}
		t := (v - lo) / span
		t = math.Max(0, math.Min(1, t))
		img.Pix[i] = uint8(math.Round(t * 255))
	}

	return img
}

// WriteImage encodes img with codec at path.
func WriteImage(path string, img image.Image, codec ImageCodec) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err = codec.Encode(fh, img); err != nil {
		return fmt.Errorf("image %q: %w", path, err)
	}

	return nil
}

// WriteSnapshot stores f as a grayscale PNG of its [0, 1] range.
func WriteSnapshot(path string, f *field.Field) error {
	return WriteImage(path, Gray(f, 0, 1), PNG{})
}

// WriteNormalized stores f as a grayscale PNG stretched over [min, max].
func WriteNormalized(path string, f *field.Field) error {
	return WriteImage(path, Gray(f, f.Min(), f.Max()), PNG{})
}
