package detect

import (
	"math"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// hsvPlanes holds a frame's color signal split into hue, saturation and
// value planes. Every component is scaled to [0, 255] so per-channel deltas
// share one scale, hue included.
type hsvPlanes struct {
	h, s, v []float32
}

// rgbToHSV converts a single RGB pixel to HSV with each component in [0, 255].
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max * 255
	}
	if delta > 0 {
		var hue float64
		switch max {
		case rf:
			hue = math.Mod((gf-bf)/delta, 6)
			if hue < 0 {
				hue += 6
			}
		case gf:
			hue = (bf-rf)/delta + 2
		default:
			hue = (rf-gf)/delta + 4
		}
		h = hue * 60 / 360 * 255
	}
	return h, s, v
}

// extractHSV splits a packed RGB24 frame into HSV planes.
func extractHSV(f *entity.Frame) *hsvPlanes {
	n := f.Width * f.Height
	planes := &hsvPlanes{
		h: make([]float32, n),
		s: make([]float32, n),
		v: make([]float32, n),
	}
	for i := 0; i < n; i++ {
		h, s, v := rgbToHSV(f.Pix[i*3], f.Pix[i*3+1], f.Pix[i*3+2])
		planes.h[i] = float32(h)
		planes.s[i] = float32(s)
		planes.v[i] = float32(v)
	}
	return planes
}

// meanAbsDiff returns the mean absolute pixel-wise difference between two
// planes of equal length, as a scalar in [0, 255].
func meanAbsDiff(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum / float64(len(a))
}
