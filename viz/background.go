package viz

import (
	"fmt"
	"math/rand"
)

// --- Starfield Background ---

const (
	backgroundColor = "#020617"

	smallStarCount  = 220
	brightStarCount = 18
)

// DrawStarfield paints the decorative background layer: a near-black fill
// scattered with small dim stars and a few larger bright ones. Positions are
// uniform-random over the full layer and intentionally not reproducible.
// rng may be nil, in which case the shared source is used.
func DrawStarfield(c Canvas, width, height float64, rng *rand.Rand) {
	randf := rand.Float64
	if rng != nil {
		randf = rng.Float64
	}

	c.Clear(backgroundColor)

	for i := 0; i < smallStarCount; i++ {
		x := randf() * width
		y := randf() * height
		r := 0.3 + randf()*1.2
		opacity := 0.25 + randf()*0.6
		c.FillCircle(x, y, r, starColor(opacity), "", 0)
	}
	for i := 0; i < brightStarCount; i++ {
		x := randf() * width
		y := randf() * height
		c.FillCircle(x, y, 1.5, starColor(0.9), "", 0)
	}
}

func starColor(opacity float64) string {
	a := int(opacity * 255)
	if a > 255 {
		a = 255
	}
	return fmt.Sprintf("#e2e8f0%02x", a)
}
