package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// labelColumns is the deterministic column order of every CSV this
// package writes.
var labelColumns = []string{"patient_id", "fibrosis_stage", "binary_label", "split", "age", "sex"}

// WriteLabels persists the manifest as CSV, creating parent
// directories as needed.
func WriteLabels(records []PatientRecord, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metadata directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create labels file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(labelColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.PatientID, string(r.FibrosisStage), string(r.BinaryLabel), string(r.Split), strconv.Itoa(r.Age), r.Sex}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.PatientID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadLabels loads a labels CSV written by WriteLabels. A missing file
// is reported as a MissingLabelsError.
func ReadLabels(path string) ([]PatientRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingLabelsError{Path: path}
		}
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse labels file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	if len(rows[0]) != len(labelColumns) {
		return nil, fmt.Errorf("labels file %s has %d columns, want %d", path, len(rows[0]), len(labelColumns))
	}

	records := make([]PatientRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		age, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid age %q: %w", i+1, row[4], err)
		}
		records = append(records, PatientRecord{
			PatientID:     row[0],
			FibrosisStage: Stage(row[1]),
			BinaryLabel:   BinaryLabel(row[2]),
			Split:         Split(row[3]),
			Age:           age,
			Sex:           row[5],
		})
	}
	return records, nil
}

// WriteSplitCSVs writes one filtered CSV per configured split, named
// split_<name>.csv, into outputDir.
func WriteSplitCSVs(records []PatientRecord, outputDir string, ratios []SplitRatio, quiet bool) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, r := range ratios {
		var subset []PatientRecord
		for _, rec := range records {
			if rec.Split == r.Name {
				subset = append(subset, rec)
			}
		}
		path := filepath.Join(outputDir, fmt.Sprintf("split_%s.csv", r.Name))
		if err := WriteLabels(subset, path); err != nil {
			return fmt.Errorf("write split %s: %w", r.Name, err)
		}
		if !quiet {
			fmt.Printf("Saved %d records to %s\n", len(subset), path)
		}
	}
	return nil
}
