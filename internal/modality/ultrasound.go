package modality

// UltrasoundSynthesizer generates synthetic B-mode liver ultrasound
// slices with Gamma-distributed speckle.
type UltrasoundSynthesizer struct{}

// Modality returns the Ultrasound modality type.
func (s *UltrasoundSynthesizer) Modality() Modality {
	return Ultrasound
}

// Synthesize builds the ultrasound image for a patient. Echogenicity
// and texture coarseness both rise with stage (Gamma shape 2+stage,
// scale 0.1+0.02*stage); F2 and above gain bright reflection spots.
func (s *UltrasoundSynthesizer) Synthesize(patientID string, stage int, res Resolution) (*Image, error) {
	if err := checkSynthArgs(stage, res); err != nil {
		return nil, err
	}

	params, rng := DeriveAnatomy(patientID)
	mask := EllipseMask(res, params)
	n := res.Rows * res.Cols

	bg := gammaField(rng, 1.0, 0.01, n)

	shape := 2.0 + float64(stage)
	scale := 0.1 + 0.02*float64(stage)
	fg := gammaField(rng, shape, scale, n)

	if stage >= 2 {
		count := poissonCount(rng, 8)
		addSpots(fg, mask, res, rng, count, 2, 3, 0.5, 1.0)
	}

	return compose(res, mask, fg, bg), nil
}
