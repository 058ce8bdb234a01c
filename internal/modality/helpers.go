package modality

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalField samples a row-major Gaussian intensity field from the
// given stream.
func normalField(rng *rand.Rand, mean, sigma float64, n int) []float64 {
	dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: rng}
	field := make([]float64, n)
	for i := range field {
		field[i] = dist.Rand()
	}
	return field
}

// gammaField samples a row-major Gamma intensity field. The scale
// parameter follows the shape/scale convention, so the distribution
// rate is 1/scale.
func gammaField(rng *rand.Rand, shape, scale float64, n int) []float64 {
	dist := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: rng}
	field := make([]float64, n)
	for i := range field {
		field[i] = dist.Rand()
	}
	return field
}

// poissonCount draws a spot count with the given mean.
func poissonCount(rng *rand.Rand, lambda float64) int {
	dist := distuv.Poisson{Lambda: lambda, Src: rng}
	return int(dist.Rand())
}

// addSpots scatters circular intensity boosts over the foreground
// field. Candidate centers are drawn over the whole image; only hits
// inside the anatomy mask place a spot, and the radius and boost are
// drawn only for hits. The per-spot draw order (row, col, radius,
// boost) is part of the reproducibility contract.
func addSpots(fg []float64, mask []bool, res Resolution, rng *rand.Rand, count, radiusMin, radiusMax int, boostMin, boostMax float64) {
	for s := 0; s < count; s++ {
		row := rng.IntN(res.Rows)
		col := rng.IntN(res.Cols)
		if !mask[row*res.Cols+col] {
			continue
		}
		radius := radiusMin + rng.IntN(radiusMax-radiusMin+1)
		boost := boostMin + rng.Float64()*(boostMax-boostMin)

		r2 := radius * radius
		yLo, yHi := clampRange(row-radius, row+radius, res.Rows)
		xLo, xHi := clampRange(col-radius, col+radius, res.Cols)
		for y := yLo; y <= yHi; y++ {
			dy := y - row
			for x := xLo; x <= xHi; x++ {
				dx := x - col
				if dx*dx+dy*dy <= r2 {
					fg[y*res.Cols+x] += boost
				}
			}
		}
	}
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// checkSynthArgs validates the common synthesizer inputs.
func checkSynthArgs(stage int, res Resolution) error {
	if stage < 0 || stage > 4 {
		return fmt.Errorf("fibrosis stage index must be in [0,4], got %d", stage)
	}
	if res.Rows <= 0 || res.Cols <= 0 {
		return fmt.Errorf("invalid resolution (%d, %d)", res.Rows, res.Cols)
	}
	return nil
}
