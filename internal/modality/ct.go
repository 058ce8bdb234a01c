package modality

// CTSynthesizer generates synthetic liver CT slices with intensities
// normalized to [0,1] rather than raw Hounsfield units.
type CTSynthesizer struct{}

// Modality returns the CT modality type.
func (s *CTSynthesizer) Modality() Modality {
	return CT
}

// Synthesize builds the CT image for a patient. Liver density rises
// mildly with stage (0.5 + 0.05*stage); F3 and above gain small dense
// calcification spots.
func (s *CTSynthesizer) Synthesize(patientID string, stage int, res Resolution) (*Image, error) {
	if err := checkSynthArgs(stage, res); err != nil {
		return nil, err
	}

	params, rng := DeriveAnatomy(patientID)
	mask := EllipseMask(res, params)
	n := res.Rows * res.Cols

	bg := normalField(rng, 0.05, 0.01, n)

	liverMean := 0.5 + 0.05*float64(stage)
	fg := normalField(rng, liverMean, 0.02, n)

	if stage >= 3 {
		count := poissonCount(rng, 3)
		addSpots(fg, mask, res, rng, count, 2, 4, 0.3, 0.6)
	}

	return compose(res, mask, fg, bg), nil
}
