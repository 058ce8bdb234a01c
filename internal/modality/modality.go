// Package modality provides the modality-specific synthetic image
// generators for the liver dataset.
package modality

import "fmt"

// Modality represents an imaging modality type.
type Modality string

const (
	MRI        Modality = "MRI"        // Magnetic Resonance Imaging
	CT         Modality = "CT"         // Computed Tomography
	Ultrasound Modality = "Ultrasound" // B-mode ultrasound
)

// AllModalities returns all supported modalities in dataset order.
func AllModalities() []Modality {
	return []Modality{MRI, CT, Ultrasound}
}

// IsValid checks if a modality string is valid.
func IsValid(m string) bool {
	for _, valid := range AllModalities() {
		if string(valid) == m {
			return true
		}
	}
	return false
}

// Resolution is an image shape in pixels.
type Resolution struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// DefaultResolutions returns the spatial resolution of each modality.
func DefaultResolutions() map[Modality]Resolution {
	return map[Modality]Resolution{
		MRI:        {Rows: 256, Cols: 256},
		CT:         {Rows: 512, Cols: 512},
		Ultrasound: {Rows: 224, Cols: 224},
	}
}

// UnknownModalityError reports a modality name that reached the image
// dispatch step without a registered synthesizer. Fatal: generation
// aborts rather than guessing a default.
type UnknownModalityError struct {
	Modality Modality
}

func (e *UnknownModalityError) Error() string {
	return fmt.Sprintf("unknown modality %q, valid modalities: %v", e.Modality, AllModalities())
}

// Synthesizer defines the interface for modality-specific image
// generators. Implementations derive the patient's anatomy themselves
// so that a given patient has identical geometry across modalities.
type Synthesizer interface {
	// Modality returns the modality type.
	Modality() Modality

	// Synthesize produces the image for a patient at the given fibrosis
	// stage index (0..4) and resolution.
	Synthesize(patientID string, stage int, res Resolution) (*Image, error)
}

// GetSynthesizer returns the synthesizer for the specified modality,
// or an UnknownModalityError for anything outside the closed set.
func GetSynthesizer(m Modality) (Synthesizer, error) {
	switch m {
	case MRI:
		return &MRISynthesizer{}, nil
	case CT:
		return &CTSynthesizer{}, nil
	case Ultrasound:
		return &UltrasoundSynthesizer{}, nil
	default:
		return nil, &UnknownModalityError{Modality: m}
	}
}
