// Package dataset generates the synthetic liver dataset: patient
// labels, deterministic split assignment, CSV persistence and the
// generation orchestrator.
package dataset

// Stage is a METAVIR liver fibrosis stage, F0 (none) to F4 (cirrhosis).
// Used purely as a label category.
type Stage string

const (
	F0 Stage = "F0"
	F1 Stage = "F1"
	F2 Stage = "F2"
	F3 Stage = "F3"
	F4 Stage = "F4"
)

// BinaryLabel is the binary classification target derived from the
// fibrosis stage.
type BinaryLabel string

const (
	LabelPositive BinaryLabel = "positive" // advanced fibrosis / cirrhosis
	LabelNegative BinaryLabel = "negative" // no or mild fibrosis
)

// DefaultStages returns the ordered fibrosis stage list.
func DefaultStages() []Stage {
	return []Stage{F0, F1, F2, F3, F4}
}

// StageIndex returns the position of a stage within the ordered list,
// or -1 if the stage is unknown.
func StageIndex(stages []Stage, s Stage) int {
	for i, stage := range stages {
		if stage == s {
			return i
		}
	}
	return -1
}
