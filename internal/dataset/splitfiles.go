package dataset

import (
	"fmt"
	"os"
)

// SplitDistribution computes the observed fraction of records per
// split. Splits with no records are present with fraction 0.
func SplitDistribution(records []PatientRecord, ratios []SplitRatio) map[Split]float64 {
	counts := make(map[Split]int, len(ratios))
	for _, r := range records {
		counts[r.Split]++
	}
	actual := make(map[Split]float64, len(ratios))
	for _, r := range ratios {
		if len(records) > 0 {
			actual[r.Name] = float64(counts[r.Name]) / float64(len(records))
		} else {
			actual[r.Name] = 0
		}
	}
	return actual
}

// VerifySplitDistribution prints expected versus observed split
// fractions and returns the observed ones.
func VerifySplitDistribution(records []PatientRecord, ratios []SplitRatio, quiet bool) map[Split]float64 {
	actual := SplitDistribution(records, ratios)
	if !quiet {
		fmt.Print("Expected split ratios:")
		for _, r := range ratios {
			fmt.Printf(" %s=%.2f", r.Name, r.Fraction)
		}
		fmt.Print("\nActual split ratios:  ")
		for _, r := range ratios {
			fmt.Printf(" %s=%.2f", r.Name, actual[r.Name])
		}
		fmt.Println()
	}
	return actual
}

// RewriteSplits reads an existing labels CSV and re-emits the
// per-split CSV files into outputDir, reporting observed versus
// configured split fractions. It is the standalone entry point for
// regenerating split files without regenerating the dataset.
//
// If the labels file does not exist, a MissingLabelsError is returned
// before anything is written.
func RewriteSplits(cfg *Config, labelsPath, outputDir string, quiet bool) (map[Split]float64, error) {
	if err := ValidateSplitRatios(cfg.Splits); err != nil {
		return nil, err
	}
	if _, err := os.Stat(labelsPath); os.IsNotExist(err) {
		return nil, &MissingLabelsError{Path: labelsPath}
	}

	records, err := ReadLabels(labelsPath)
	if err != nil {
		return nil, err
	}
	if !quiet {
		fmt.Printf("Loaded labels for %d patients.\n", len(records))
	}

	actual := VerifySplitDistribution(records, cfg.Splits, quiet)

	if err := WriteSplitCSVs(records, outputDir, cfg.Splits, quiet); err != nil {
		return nil, err
	}
	if !quiet {
		fmt.Println("Split CSV files created.")
	}
	return actual, nil
}
