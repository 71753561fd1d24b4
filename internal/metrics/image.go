package metrics

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	// Raster decoders register themselves with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"trafficpulse/internal/dataset"
	"trafficpulse/pkg/contracts/domain"
)

// ImageExtensions lists the decodable image file extensions (lowercase).
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ExtractImageFile decodes one image under root and computes its quality
// metrics over a grayscale conversion. The capture date comes from the first
// component of relPath.
func ExtractImageFile(root, relPath string) (domain.ImageFileRecord, error) {
	var rec domain.ImageFileRecord

	date, ok := dataset.InferDate(firstPathComponent(relPath))
	if !ok {
		return rec, fmt.Errorf("no capture date in path %q", relPath)
	}

	fullPath := filepath.Join(root, relPath)
	info, err := os.Stat(fullPath)
	if err != nil {
		return rec, fmt.Errorf("stat: %w", err)
	}

	gray, width, height, err := decodeGrayscale(fullPath)
	if err != nil {
		return rec, err
	}

	brightness, contrast := meanAndStd(gray)

	return domain.ImageFileRecord{
		Date:           date,
		RelativePath:   filepath.ToSlash(relPath),
		BlurVariance:   laplacianVariance(gray, width, height),
		BrightnessMean: brightness,
		ContrastStd:    contrast,
		FileSizeBytes:  info.Size(),
	}, nil
}

// decodeGrayscale decodes an image file and converts it to a flat row-major
// grayscale grid with intensities in [0, 255].
func decodeGrayscale(path string) ([]float64, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, 0, 0, fmt.Errorf("decode image: zero-sized image")
	}

	gray := make([]float64, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma on 16-bit channel values, scaled to [0, 255]
			luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257
			gray = append(gray, luma)
		}
	}
	return gray, width, height, nil
}

// laplacianVariance applies the 3x3 Laplacian kernel over interior pixels and
// returns the variance of the response. Sharper edges produce higher values.
func laplacianVariance(gray []float64, width, height int) float64 {
	if width < 3 || height < 3 {
		return 0
	}

	responses := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := gray[y*width+x]
			up := gray[(y-1)*width+x]
			down := gray[(y+1)*width+x]
			left := gray[y*width+x-1]
			right := gray[y*width+x+1]
			responses = append(responses, up+down+left+right-4*center)
		}
	}

	_, std := meanAndStd(responses)
	return std * std
}

// meanAndStd returns the mean and population standard deviation of values.
func meanAndStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return mean, math.Sqrt(sumSquares / float64(len(values)))
}
