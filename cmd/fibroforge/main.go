package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mrsinham/fibroforge/cmd/fibroforge/tui"
	"github.com/mrsinham/fibroforge/internal/dataset"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for split subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "split" {
		runSplit(os.Args[2:])
		return
	}

	numPatients := flag.Int("num-patients", 0, "Number of patients to generate (required)")
	seed := flag.Int64("seed", 0, "Seed for reproducibility (0 = derive from output directory name)")
	outputDir := flag.String("output", "", "Output directory (default from config)")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	quiet := flag.Bool("quiet", false, "Suppress progress output")
	interactive := flag.Bool("interactive", false, "Show an interactive progress screen")
	flag.BoolVar(interactive, "i", false, "Show an interactive progress screen (shortcut)")
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save effective configuration to YAML file")
	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("fibroforge %s\n", version)
		return
	}
	if *help {
		printHelp()
		return
	}

	cfg := dataset.DefaultConfig()
	if *configFile != "" {
		loaded, err := dataset.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// The default config carries a patient count, but on the command
	// line the flag stays mandatory unless a config file was given.
	if *numPatients <= 0 && *configFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --num-patients must be > 0\n")
		printUsage()
		os.Exit(1)
	}

	opts := dataset.GeneratorOptions{
		Config:      cfg,
		NumPatients: *numPatients,
		Seed:        *seed,
		BaseDir:     *outputDir,
		Workers:     *workers,
		Quiet:       *quiet,
	}

	if *saveConfig != "" {
		effective := cfg
		if *numPatients > 0 {
			effective.NumPatients = *numPatients
		}
		if *seed != 0 {
			effective.Seed = *seed
		}
		if *outputDir != "" {
			effective.BaseDir = *outputDir
		}
		if err := dataset.SaveConfig(effective, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else if !*quiet {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	if *interactive {
		if err := tui.Run(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("fibroforge")
	fmt.Println("==========")
	fmt.Println()

	summary, err := dataset.Generate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✓ Generation complete!")
	fmt.Printf("  Dataset directory: %s\n", summary.OutputDir)
}

// runSplit handles the `fibroforge split` subcommand: rebuild the
// per-split CSV files from an existing labels.csv.
func runSplit(args []string) {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	configFile := fs.String("config", "", "Load configuration from YAML file")
	labelsPath := fs.String("labels", "", "Path to labels.csv (default: <base>/metadata/labels.csv)")
	outputDir := fs.String("output", "", "Directory for split CSVs (default: labels directory)")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	_ = fs.Parse(args)

	cfg := dataset.DefaultConfig()
	if *configFile != "" {
		loaded, err := dataset.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	labels := *labelsPath
	if labels == "" {
		labels = filepath.Join(cfg.BaseDir, cfg.MetadataDir, cfg.LabelsFile)
	}
	output := *outputDir
	if output == "" {
		output = filepath.Dir(labels)
	}

	if _, err := dataset.RewriteSplits(&cfg, labels, output, *quiet); err != nil {
		var missing *dataset.MissingLabelsError
		if errors.As(err, &missing) {
			fmt.Fprintf(os.Stderr, "Labels file not found: %s\n", missing.Path)
			fmt.Fprintln(os.Stderr, "Please generate the dataset first: fibroforge --num-patients <N>")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  fibroforge --num-patients <N> [options]")
	fmt.Fprintln(os.Stderr, "  fibroforge split [--labels PATH] [--output DIR]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("fibroforge")
	fmt.Println("==========")
	fmt.Println()
	fmt.Println("Generate a synthetic multi-modal liver fibrosis imaging dataset")
	fmt.Println("(MRI, CT, Ultrasound) for testing training pipelines.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fibroforge --num-patients <N> [options]")
	fmt.Println("  fibroforge split [--labels PATH] [--output DIR]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --num-patients <N>    Number of patients to generate")
	fmt.Println("  --seed <N>            Seed for reproducibility (0 = derive from output dir)")
	fmt.Println("  --output <DIR>        Output directory")
	fmt.Printf("  --workers <N>         Parallel image workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save effective configuration to YAML file")
	fmt.Println("  --interactive, -i     Show an interactive progress screen")
	fmt.Println("  --quiet               Suppress progress output")
	fmt.Println("  --version             Show version")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Generate the default 1000-patient dataset")
	fmt.Println("  fibroforge --num-patients 1000 --seed 42 --output liver-dataset")
	fmt.Println()
	fmt.Println("  # Small smoke run with 4 workers and a progress screen")
	fmt.Println("  fibroforge --num-patients 20 --workers 4 -i")
	fmt.Println()
	fmt.Println("  # Rebuild the split CSVs from an existing labels file")
	fmt.Println("  fibroforge split --labels liver-dataset/metadata/labels.csv")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  <root>/images/<patient>_<modality>.npy   one image per (patient, modality)")
	fmt.Println("  <root>/metadata/labels.csv               full manifest")
	fmt.Println("  <root>/metadata/split_{train,val,test}.csv")
	fmt.Println()
	fmt.Println("Reproducibility:")
	fmt.Println("  The same seed produces byte-identical labels and images across runs.")
	fmt.Println("  Same output directory name also generates a consistent auto-seed.")
}
