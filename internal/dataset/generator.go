package dataset

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mrsinham/fibroforge/internal/modality"
	"github.com/mrsinham/fibroforge/internal/npy"
	"github.com/mrsinham/fibroforge/internal/util"
	"gonum.org/v1/gonum/stat"
)

// GeneratorOptions contains all parameters needed to generate a
// dataset.
type GeneratorOptions struct {
	Config Config // dataset configuration (zero value = DefaultConfig)

	NumPatients int    // overrides Config.NumPatients when > 0
	Seed        int64  // overrides Config.Seed when != 0; 0 derives one from BaseDir
	BaseDir     string // overrides Config.BaseDir when set

	Workers int // parallel image workers (0 = CPU cores)

	Quiet            bool                     // suppress progress output (for TUI integration)
	ProgressCallback func(current, total int) // optional callback for image progress
}

// imageTask holds everything needed to synthesize and persist one
// (patient, modality) image.
type imageTask struct {
	index      int
	patientID  string
	modality   modality.Modality
	stage      int
	resolution modality.Resolution
	filePath   string
}

// Summary reports what a generation run produced.
type Summary struct {
	NumPatients int
	NumImages   int

	SplitCounts     map[Split]int
	ActualFractions map[Split]float64
	StageCounts     map[Stage]int

	AgeMean float64
	AgeStd  float64

	OutputDir string
}

// GenerateDataset generates the full dataset with the default
// configuration. It is the simple entry point mirroring the three
// primary knobs.
func GenerateDataset(numPatients int, seed int64, baseDir string) (*Summary, error) {
	return Generate(GeneratorOptions{
		NumPatients: numPatients,
		Seed:        seed,
		BaseDir:     baseDir,
	})
}

// Generate runs the whole pipeline: validate configuration, create the
// directory tree, generate and persist labels, synthesize one image
// per (patient, modality) on a worker pool, then write per-split CSVs
// and report split statistics.
//
// The task-building phase is strictly sequential to keep sub-seed
// derivation order stable; image synthesis is safe to parallelize
// because every image depends only on the patient id and global seed.
func Generate(opts GeneratorOptions) (*Summary, error) {
	cfg := opts.Config
	if len(cfg.Modalities) == 0 {
		cfg = DefaultConfig()
	}
	if opts.NumPatients > 0 {
		cfg.NumPatients = opts.NumPatients
	}
	if opts.BaseDir != "" {
		cfg.BaseDir = opts.BaseDir
	}

	if cfg.NumPatients <= 0 {
		return nil, fmt.Errorf("number of patients must be > 0, got %d", cfg.NumPatients)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Resolve the seed. Seed 0 derives a deterministic one from the
	// output directory name.
	seed := cfg.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	if seed == 0 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(cfg.BaseDir))
		seed = int64(h.Sum64())
		if !opts.Quiet {
			fmt.Printf("Auto-generated seed from %q: %d\n", cfg.BaseDir, seed)
		}
	} else if !opts.Quiet {
		fmt.Printf("Using seed: %d\n", seed)
	}

	imagesDir := filepath.Join(cfg.BaseDir, cfg.ImagesDir)
	metadataDir := filepath.Join(cfg.BaseDir, cfg.MetadataDir)
	for _, dir := range []string{imagesDir, metadataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if !opts.Quiet {
		fmt.Printf("Directories created under %s\n", cfg.BaseDir)
		fmt.Printf("Generating labels for %d patients...\n", cfg.NumPatients)
	}

	records, err := GenerateAllLabels(&cfg, cfg.NumPatients, seed)
	if err != nil {
		return nil, fmt.Errorf("generate labels: %w", err)
	}

	labelsPath := filepath.Join(metadataDir, cfg.LabelsFile)
	if err := WriteLabels(records, labelsPath); err != nil {
		return nil, fmt.Errorf("write labels: %w", err)
	}
	if !opts.Quiet {
		fmt.Printf("Labels saved to %s\n", labelsPath)
	}

	// Resolve synthesizers up front so an unknown modality aborts
	// before any image is written.
	synths := make(map[modality.Modality]modality.Synthesizer, len(cfg.Modalities))
	for _, m := range cfg.Modalities {
		s, err := modality.GetSynthesizer(m)
		if err != nil {
			return nil, err
		}
		synths[m] = s
	}

	// Build all tasks in table order: patients in index order, then
	// modalities in configuration order.
	tasks := make([]imageTask, 0, len(records)*len(cfg.Modalities))
	for _, rec := range records {
		stageIdx := StageIndex(cfg.Stages, rec.FibrosisStage)
		for _, m := range cfg.Modalities {
			filename := util.ImageFilename(rec.PatientID, string(m), cfg.ImageExt)
			tasks = append(tasks, imageTask{
				index:      len(tasks) + 1,
				patientID:  rec.PatientID,
				modality:   m,
				stage:      stageIdx,
				resolution: cfg.Resolutions[m],
				filePath:   filepath.Join(imagesDir, filename),
			})
		}
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}
	if !opts.Quiet {
		fmt.Printf("Generating %d images with %d parallel workers...\n", len(tasks), numWorkers)
	}

	taskChan := make(chan imageTask, len(tasks))
	resultChan := make(chan struct {
		index int
		err   error
	}, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				err := runImageTask(synths[task.modality], task)
				resultChan <- struct {
					index int
					err   error
				}{task.index, err}
			}
		}()
	}

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	completed := 0
	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate image %d: %w", result.index, result.err)
		}
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(tasks))
		}
		if !opts.Quiet && (completed%100 == 0 || completed == len(tasks)) {
			fmt.Printf("  Progress: %d/%d images saved\n", completed, len(tasks))
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	if !opts.Quiet {
		fmt.Println("Writing split CSV files...")
	}
	if err := WriteSplitCSVs(records, metadataDir, cfg.Splits, opts.Quiet); err != nil {
		return nil, err
	}

	actual := VerifySplitDistribution(records, cfg.Splits, opts.Quiet)

	summary := buildSummary(&cfg, records, len(tasks), actual)
	if !opts.Quiet {
		printSummary(summary)
	}
	return summary, nil
}

// runImageTask synthesizes one image and persists it as .npy.
func runImageTask(s modality.Synthesizer, task imageTask) error {
	img, err := s.Synthesize(task.patientID, task.stage, task.resolution)
	if err != nil {
		return fmt.Errorf("synthesize %s %s: %w", task.patientID, task.modality, err)
	}
	f, err := os.Create(task.filePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := npy.Write(f, img.Rows, img.Cols, img.Pix); err != nil {
		return fmt.Errorf("write %s: %w", task.filePath, err)
	}
	return nil
}

func buildSummary(cfg *Config, records []PatientRecord, numImages int, actual map[Split]float64) *Summary {
	splitCounts := make(map[Split]int, len(cfg.Splits))
	stageCounts := make(map[Stage]int, len(cfg.Stages))
	ages := make([]float64, len(records))
	for i, r := range records {
		splitCounts[r.Split]++
		stageCounts[r.FibrosisStage]++
		ages[i] = float64(r.Age)
	}

	ageMean := stat.Mean(ages, nil)
	ageStd := 0.0
	if len(ages) > 1 {
		ageStd = stat.StdDev(ages, nil)
	}

	return &Summary{
		NumPatients:     len(records),
		NumImages:       numImages,
		SplitCounts:     splitCounts,
		ActualFractions: actual,
		StageCounts:     stageCounts,
		AgeMean:         ageMean,
		AgeStd:          ageStd,
		OutputDir:       cfg.BaseDir,
	}
}

func printSummary(s *Summary) {
	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("DATASET GENERATION COMPLETE")
	fmt.Println("==================================================")
	fmt.Printf("Total patients: %d\n", s.NumPatients)
	fmt.Printf("Total images:   %d\n", s.NumImages)
	fmt.Printf("Age:            %.1f ± %.1f years\n", s.AgeMean, s.AgeStd)
	fmt.Printf("Data saved under: %s\n", s.OutputDir)
}
