package merge

import(
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/tiff"

	"github.com/junckerlab/channel-merge/pkg/igrid"
)

// ReadGray decodes a single-channel scan file into a Grid of [0,1]
// intensities. Whatever the on-disk pixel format, values go through
// the 16-bit gray model; microscopy exports are single-plane so this
// is lossless for them.
func ReadGray(filename string) (igrid.Grid, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return igrid.Grid{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return igrid.Grid{}, fmt.Errorf("tiff decode '%s': %v", filename, err)
	}

	bounds := img.Bounds()
	g := igrid.New(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			g.Set(x-bounds.Min.X, y-bounds.Min.Y, float64(gray.Y)/65535.0)
		}
	}

	return g, nil
}

// Stack builds the 3-plane composite from corrected channel grids, in
// (R,G,B) plane order. The grids must share shape; the caller checks
// that before stacking.
func Stack(r, g, b igrid.Grid) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			img.SetRGBA64(x, y, color.RGBA64{
				R: quantize(r.Get(x, y)),
				G: quantize(g.Get(x, y)),
				B: quantize(b.Get(x, y)),
				A: 0xFFFF,
			})
		}
	}
	return img
}

// quantize maps a corrected intensity back to 16 bits, saturating at
// both ends (divide mode can push values past 1).
func quantize(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFFFF
	}
	return uint16(v * 65535.0)
}

// WriteTIFF encodes the composite under the given filename.
func WriteTIFF(img image.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	if err := tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("tiff encode '%s': %v", filename, err)
	}
	return nil
}
