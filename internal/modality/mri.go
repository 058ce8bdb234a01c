package modality

// MRISynthesizer generates synthetic T2-weighted liver MRI slices.
type MRISynthesizer struct{}

// Modality returns the MRI modality type.
func (s *MRISynthesizer) Modality() Modality {
	return MRI
}

// Synthesize builds the MRI image for a patient. Liver signal rises
// with fibrosis stage (0.5 + 0.1*stage); F2 and above gain a Poisson
// count of bright nodules.
func (s *MRISynthesizer) Synthesize(patientID string, stage int, res Resolution) (*Image, error) {
	if err := checkSynthArgs(stage, res); err != nil {
		return nil, err
	}

	params, rng := DeriveAnatomy(patientID)
	mask := EllipseMask(res, params)
	n := res.Rows * res.Cols

	bg := normalField(rng, 0.10, 0.02, n)

	liverBase := 0.5 + 0.1*float64(stage)
	fg := normalField(rng, liverBase, 0.05, n)

	if stage >= 2 {
		count := poissonCount(rng, float64(5+3*(stage-2)))
		addSpots(fg, mask, res, rng, count, 3, 7, 0.2, 0.4)
	}

	return compose(res, mask, fg, bg), nil
}
