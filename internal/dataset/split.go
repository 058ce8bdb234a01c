package dataset

import (
	"fmt"
	"math"
)

// Split is one of the train/val/test partitions of the patient
// population.
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// SplitRatio maps a split name to its fraction of the population.
// Declaration order in the ratio slice is meaningful: cumulative
// boundaries follow it, and so does split rank.
type SplitRatio struct {
	Name     Split   `yaml:"name"`
	Fraction float64 `yaml:"fraction"`
}

// ratioSumTolerance is the floating tolerance for the sum-to-1 check.
const ratioSumTolerance = 1e-9

// ValidateSplitRatios checks that the fractions sum to 1.0 within
// tolerance and returns a ConfigError otherwise.
func ValidateSplitRatios(ratios []SplitRatio) error {
	if len(ratios) == 0 {
		return &ConfigError{Reason: "no split ratios configured"}
	}
	sum := 0.0
	for _, r := range ratios {
		sum += r.Fraction
	}
	if math.Abs(sum-1.0) > ratioSumTolerance {
		return &ConfigError{Reason: fmt.Sprintf("split ratios must sum to 1.0, got %g", sum)}
	}
	return nil
}

// AssignSplit deterministically assigns the patient at the given
// 0-based index to a split. The normalized position (index+1)/total is
// compared against the cumulative boundaries in declaration order; the
// first boundary at or above the position wins. Pure and index-only,
// so results are order-stable however patients are iterated.
func AssignSplit(index, total int, ratios []SplitRatio) (Split, error) {
	if err := ValidateSplitRatios(ratios); err != nil {
		return "", err
	}
	if total <= 0 {
		return "", &ConfigError{Reason: fmt.Sprintf("total patient count must be > 0, got %d", total)}
	}
	if index < 0 || index >= total {
		return "", fmt.Errorf("patient index %d out of range [0, %d)", index, total)
	}

	position := float64(index+1) / float64(total)
	cumulative := 0.0
	for _, r := range ratios {
		cumulative += r.Fraction
		if position <= cumulative {
			return r.Name, nil
		}
	}
	// Floating-point shortfall: the last split takes the remainder.
	return ratios[len(ratios)-1].Name, nil
}

// SplitRank returns the declaration-order rank of a split name, or -1
// if the name is not configured.
func SplitRank(ratios []SplitRatio, name Split) int {
	for i, r := range ratios {
		if r.Name == name {
			return i
		}
	}
	return -1
}
