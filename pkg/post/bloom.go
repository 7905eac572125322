// Package post holds image-space post-processing applied outside the
// integrator. The core writes physically-motivated pixel colors; bloom is
// presentation only.
package post

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// BloomConfig configures the bright-pass bloom filter
type BloomConfig struct {
	Threshold float64 `json:"threshold"` // Luminance above which pixels contribute
	Radius    int     `json:"radius"`    // Blur kernel radius in pixels
	Intensity float64 `json:"intensity"` // Weight of the blurred layer on recombine
}

// DefaultBloomConfig returns sensible default values
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{
		Threshold: 0.7,
		Radius:    8,
		Intensity: 0.6,
	}
}

// ApplyBloom extracts pixels above the luminance threshold, blurs them
// with a separable gaussian, and adds the result back onto the image.
// The input image is not modified.
func ApplyBloom(img *image.RGBA, config BloomConfig) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if config.Radius < 1 || config.Intensity <= 0 {
		out := image.NewRGBA(bounds)
		copy(out.Pix, img.Pix)
		return out
	}

	// Bright pass into a float buffer
	bright := make([][]core.Vec3, height)
	for y := range bright {
		bright[y] = make([]core.Vec3, width)
		for x := 0; x < width; x++ {
			c := img.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			v := core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255.0)
			if v.Luminance() > config.Threshold {
				bright[y][x] = v
			}
		}
	}

	kernel := gaussianKernel(config.Radius)

	// Horizontal then vertical blur
	blurredH := make([][]core.Vec3, height)
	for y := 0; y < height; y++ {
		blurredH[y] = make([]core.Vec3, width)
		for x := 0; x < width; x++ {
			sum := core.NewVec3(0, 0, 0)
			for k := -config.Radius; k <= config.Radius; k++ {
				sx := core.Clamp(float64(x+k), 0, float64(width-1))
				sum = sum.Add(bright[y][int(sx)].Multiply(kernel[k+config.Radius]))
			}
			blurredH[y][x] = sum
		}
	}

	out := image.NewRGBA(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := core.NewVec3(0, 0, 0)
			for k := -config.Radius; k <= config.Radius; k++ {
				sy := core.Clamp(float64(y+k), 0, float64(height-1))
				sum = sum.Add(blurredH[int(sy)][x].Multiply(kernel[k+config.Radius]))
			}

			c := img.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			base := core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255.0)
			final := base.Add(sum.Multiply(config.Intensity)).Clamp(0, 1)

			out.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, toRGBA(final))
		}
	}

	return out
}

// gaussianKernel builds a normalized 1D kernel of width 2*radius+1
func gaussianKernel(radius int) []float64 {
	sigma := float64(radius) / 2.0
	kernel := make([]float64, 2*radius+1)

	total := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2.0 * sigma * sigma))
		total += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}

func toRGBA(v core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(v.X*255.0 + 0.5),
		G: uint8(v.Y*255.0 + 0.5),
		B: uint8(v.Z*255.0 + 0.5),
		A: 255,
	}
}
