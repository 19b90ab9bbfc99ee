package preprocess

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// enhanceContrast applies the linear transform v*factor + 128*(1-factor)
// to each RGB channel in place, clamped to [0,255] and rounded half away
// from zero. Alpha is left untouched.
func enhanceContrast(img *image.NRGBA, factor float64) {
	intercept := 128 * (1 - factor)
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		nv := float64(v)*factor + intercept
		if nv < 0 {
			nv = 0
		} else if nv > 255 {
			nv = 255
		}
		lut[v] = uint8(math.Round(nv))
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = lut[img.Pix[i]]
		img.Pix[i+1] = lut[img.Pix[i+1]]
		img.Pix[i+2] = lut[img.Pix[i+2]]
	}
}

// sharpen convolves the RGB channels with the 3x3 kernel
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// on interior pixels only; the one-pixel border and the alpha channel are
// copied through unchanged. Output channels are clamped to [0,255].
func sharpen(img *image.NRGBA) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	out := imaging.Clone(img)
	if w < 3 || h < 3 {
		return out
	}
	stride := img.Stride
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*stride + x*4
			for c := 0; c < 3; c++ {
				sum := 5*int(img.Pix[idx+c]) -
					int(img.Pix[idx-stride+c]) -
					int(img.Pix[idx+stride+c]) -
					int(img.Pix[idx-4+c]) -
					int(img.Pix[idx+4+c])
				if sum < 0 {
					sum = 0
				} else if sum > 255 {
					sum = 255
				}
				out.Pix[y*out.Stride+x*4+c] = uint8(sum)
			}
		}
	}
	return out
}

// adaptiveThreshold binarizes the image against a locally computed mean:
// a pixel turns white when its grayscale value exceeds the neighborhood
// mean minus bias, else black. The neighborhood is a square of the given
// half-width clipped at the image boundary, and the mean is computed via
// a summed-area table so the cost stays linear in the pixel count.
func adaptiveThreshold(img *image.NRGBA, halfWidth, bias int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	if w == 0 || h == 0 {
		return out
	}

	// Grayscale via ITU-R BT.601 luma weights.
	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*img.Stride + x*4
			gray[y*w+x] = 0.299*float64(img.Pix[idx]) +
				0.587*float64(img.Pix[idx+1]) +
				0.114*float64(img.Pix[idx+2])
		}
	}

	// Summed-area table of the grayscale plane.
	integral := make([]float64, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += gray[y*w+x]
			if y == 0 {
				integral[y*w+x] = rowSum
			} else {
				integral[y*w+x] = integral[(y-1)*w+x] + rowSum
			}
		}
	}
	sumAt := func(x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		if x >= w {
			x = w - 1
		}
		if y >= h {
			y = h - 1
		}
		return integral[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := x-halfWidth, y-halfWidth
			x1, y1 := x+halfWidth, y+halfWidth
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if y1 >= h {
				y1 = h - 1
			}
			sum := sumAt(x1, y1) - sumAt(x0-1, y1) - sumAt(x1, y0-1) + sumAt(x0-1, y0-1)
			mean := sum / float64((x1-x0+1)*(y1-y0+1))

			var c color.NRGBA
			if gray[y*w+x] > mean-float64(bias) {
				c = color.NRGBA{255, 255, 255, 255}
			} else {
				c = color.NRGBA{0, 0, 0, 255}
			}
			out.Set(x, y, c)
		}
	}
	return out
}
