package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/mrsinham/fibroforge/internal/util"
	"gonum.org/v1/gonum/stat/distuv"
)

// PatientRecord is one row of the dataset manifest. Immutable once
// generated.
type PatientRecord struct {
	PatientID     string
	FibrosisStage Stage
	BinaryLabel   BinaryLabel
	Split         Split
	Age           int
	Sex           string
}

// GeneratePatientLabels generates the record for one patient from its
// isolated stream. The stream draw order (stage, age, sex) is part of
// the reproducibility contract. The split is a pure function of the
// outer index and total count, not of the patient's stream.
func GeneratePatientLabels(cfg *Config, index, total int, rng *rand.Rand) (PatientRecord, error) {
	patientID := util.PatientID(index)

	stageDist := distuv.NewCategorical(cfg.StageProbs, rng)
	stage := cfg.Stages[int(stageDist.Rand())]

	label := LabelNegative
	if cfg.IsPositive(stage) {
		label = LabelPositive
	}

	split, err := AssignSplit(index, total, cfg.Splits)
	if err != nil {
		return PatientRecord{}, err
	}

	ageDist := distuv.Normal{Mu: cfg.AgeMean, Sigma: cfg.AgeStd, Src: rng}
	age := int(math.Round(ageDist.Rand()))
	if age < cfg.AgeMin {
		age = cfg.AgeMin
	} else if age > cfg.AgeMax {
		age = cfg.AgeMax
	}

	sex := []string{"M", "F"}[rng.IntN(2)]

	return PatientRecord{
		PatientID:     patientID,
		FibrosisStage: stage,
		BinaryLabel:   label,
		Split:         split,
		Age:           age,
		Sex:           sex,
	}, nil
}

// GenerateAllLabels generates records for all patients in index order.
//
// One sub-seed per patient is drawn from the global stream in strictly
// increasing index order; each patient then samples from its own
// isolated stream. This keeps results reproducible even if patients
// are later processed out of order or in parallel.
func GenerateAllLabels(cfg *Config, numPatients int, seed int64) ([]PatientRecord, error) {
	if numPatients <= 0 {
		return nil, fmt.Errorf("number of patients must be > 0, got %d", numPatients)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	global := util.NewSeededStream(seed)

	records := make([]PatientRecord, numPatients)
	for i := 0; i < numPatients; i++ {
		subSeed := global.Uint64()
		patientRNG := rand.New(rand.NewPCG(subSeed, subSeed))

		record, err := GeneratePatientLabels(cfg, i, numPatients, patientRNG)
		if err != nil {
			return nil, fmt.Errorf("generate labels for patient %d: %w", i, err)
		}
		records[i] = record
	}
	return records, nil
}
