package modality

import (
	"math"
	"math/rand/v2"

	"github.com/mrsinham/fibroforge/internal/util"
)

// Anatomy dimensions are always drawn against the MRI reference
// resolution so a patient's ellipse is the same absolute size in every
// modality.
const (
	referenceRows = 256
	referenceCols = 256
)

// AnatomyParams describes a patient's liver region as a rotated
// ellipse, shared by all modalities for that patient.
type AnatomyParams struct {
	CenterRow     int
	CenterCol     int
	AxisMajor     int
	AxisMinor     int
	Angle         float64 // rotation in degrees
	IntensityBase float64 // informational baseline in [0.5, 0.8]
}

// DeriveAnatomy derives the anatomy parameters for a patient from the
// stream keyed "{patient_id}_anatomy" and returns the stream positioned
// after the anatomy draws, for the caller's texture sampling.
//
// The draw order below is part of the reproducibility contract:
// center col, center row, major axis, minor-axis factor, angle,
// intensity base. Reordering changes every image for the same seed.
func DeriveAnatomy(patientID string) (AnatomyParams, *rand.Rand) {
	rng := util.NewStream(patientID + "_anatomy")

	h, w := referenceRows, referenceCols
	centerCol := int(float64(w) * (0.4 + 0.2*rng.Float64()))
	centerRow := int(float64(h) * (0.4 + 0.2*rng.Float64()))

	minDim := h
	if w < h {
		minDim = w
	}
	axisMajor := int(float64(minDim) * (0.2 + 0.1*rng.Float64()))
	axisMinor := int(float64(axisMajor) * (0.6 + 0.3*rng.Float64()))

	angle := -30 + 60*rng.Float64()
	intensityBase := 0.5 + 0.3*rng.Float64()

	return AnatomyParams{
		CenterRow:     centerRow,
		CenterCol:     centerCol,
		AxisMajor:     axisMajor,
		AxisMinor:     axisMinor,
		Angle:         angle,
		IntensityBase: intensityBase,
	}, rng
}

// EllipseMask returns, row-major, whether each pixel of the given
// resolution lies inside the patient's rotated ellipse:
// (x'/minor)^2 + (y'/major)^2 <= 1 in centered, rotated coordinates.
func EllipseMask(res Resolution, p AnatomyParams) []bool {
	theta := p.Angle * math.Pi / 180
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	major2 := float64(p.AxisMajor * p.AxisMajor)
	minor2 := float64(p.AxisMinor * p.AxisMinor)

	mask := make([]bool, res.Rows*res.Cols)
	for y := 0; y < res.Rows; y++ {
		yc := float64(y - p.CenterRow)
		for x := 0; x < res.Cols; x++ {
			xc := float64(x - p.CenterCol)
			xr := xc*cosT - yc*sinT
			yr := xc*sinT + yc*cosT
			if xr*xr/minor2+yr*yr/major2 <= 1 {
				mask[y*res.Cols+x] = true
			}
		}
	}
	return mask
}
