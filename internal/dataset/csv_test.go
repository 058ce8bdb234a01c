package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRecords() []PatientRecord {
	return []PatientRecord{
		{PatientID: "PAT_0000", FibrosisStage: F0, BinaryLabel: LabelNegative, Split: SplitTrain, Age: 55, Sex: "M"},
		{PatientID: "PAT_0001", FibrosisStage: F4, BinaryLabel: LabelPositive, Split: SplitTrain, Age: 71, Sex: "F"},
		{PatientID: "PAT_0002", FibrosisStage: F2, BinaryLabel: LabelNegative, Split: SplitVal, Age: 63, Sex: "F"},
		{PatientID: "PAT_0003", FibrosisStage: F3, BinaryLabel: LabelPositive, Split: SplitTest, Age: 48, Sex: "M"},
	}
}

func TestWriteReadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata", "labels.csv")
	records := sampleRecords()

	if err := WriteLabels(records, path); err != nil {
		t.Fatalf("WriteLabels failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read written file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "patient_id,fibrosis_stage,binary_label,split,age,sex" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if len(lines) != len(records)+1 {
		t.Errorf("Got %d lines, want %d", len(lines), len(records)+1)
	}

	loaded, err := ReadLabels(path)
	if err != nil {
		t.Fatalf("ReadLabels failed: %v", err)
	}
	if diff := cmp.Diff(records, loaded); diff != "" {
		t.Errorf("Round-trip mismatch (-written +read):\n%s", diff)
	}
}

func TestReadLabels_MissingFile(t *testing.T) {
	_, err := ReadLabels(filepath.Join(t.TempDir(), "labels.csv"))
	if err == nil {
		t.Fatal("Expected error for missing labels file")
	}
	var missing *MissingLabelsError
	if !errors.As(err, &missing) {
		t.Errorf("Expected MissingLabelsError, got %T: %v", err, err)
	}
}

func TestWriteSplitCSVs(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	ratios := defaultRatios()

	if err := WriteSplitCSVs(records, dir, ratios, true); err != nil {
		t.Fatalf("WriteSplitCSVs failed: %v", err)
	}

	wantCounts := map[Split]int{SplitTrain: 2, SplitVal: 1, SplitTest: 1}
	for split, want := range wantCounts {
		path := filepath.Join(dir, "split_"+string(split)+".csv")
		loaded, err := ReadLabels(path)
		if err != nil {
			t.Fatalf("ReadLabels(%s): %v", path, err)
		}
		if len(loaded) != want {
			t.Errorf("Split %s has %d records, want %d", split, len(loaded), want)
		}
		for _, r := range loaded {
			if r.Split != split {
				t.Errorf("Record %s with split %s found in %s file", r.PatientID, r.Split, split)
			}
		}
	}
}

func TestRewriteSplits(t *testing.T) {
	dir := t.TempDir()
	labelsPath := filepath.Join(dir, "labels.csv")
	if err := WriteLabels(sampleRecords(), labelsPath); err != nil {
		t.Fatalf("WriteLabels failed: %v", err)
	}

	cfg := DefaultConfig()
	actual, err := RewriteSplits(&cfg, labelsPath, dir, true)
	if err != nil {
		t.Fatalf("RewriteSplits failed: %v", err)
	}

	if actual[SplitTrain] != 0.5 || actual[SplitVal] != 0.25 || actual[SplitTest] != 0.25 {
		t.Errorf("Unexpected observed fractions: %v", actual)
	}
	for _, split := range []Split{SplitTrain, SplitVal, SplitTest} {
		if _, err := os.Stat(filepath.Join(dir, "split_"+string(split)+".csv")); err != nil {
			t.Errorf("Missing split file for %s: %v", split, err)
		}
	}
}

func TestRewriteSplits_MissingLabels(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()

	_, err := RewriteSplits(&cfg, filepath.Join(dir, "labels.csv"), dir, true)
	if err == nil {
		t.Fatal("Expected error when labels file is missing")
	}
	var missing *MissingLabelsError
	if !errors.As(err, &missing) {
		t.Errorf("Expected MissingLabelsError, got %T: %v", err, err)
	}

	// Nothing must be written on this failure.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Partial output written despite missing labels: %v", entries)
	}
}
