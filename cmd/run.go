package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/internal/objective"
	"github.com/cwbudde/metaheur/internal/store"
	"github.com/cwbudde/metaheur/methods"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	benchmark string
	dim       int
	method    string
	popNum    int
	maxGen    uint64
	seed      uint64
	workers   int
	dataDir   string
	saveRun   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run single-shot optimization",
	Long:  `Runs one optimization against a benchmark objective and prints the result.`,
	RunE:  runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&benchmark, "benchmark", "", "Benchmark objective (required)")
	runCmd.Flags().IntVar(&dim, "dim", 10, "Problem dimension")
	runCmd.Flags().StringVar(&method, "method", "de", "Method: fa, de, pso, rga, tlbo")
	runCmd.Flags().IntVar(&popNum, "pop", 200, "Population size")
	runCmd.Flags().Uint64Var(&maxGen, "gen", 200, "Max generations")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 = auto)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Evaluation workers (<=1 sequential)")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for checkpoint storage")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "Save checkpoint and trace under a new job ID")

	runCmd.MarkFlagRequired("benchmark")
	rootCmd.AddCommand(runCmd)
}

// newAlgorithm maps a method name to a fresh strategy instance.
func newAlgorithm(name string) (metaheur.Algorithm[metaheur.F1], error) {
	switch name {
	case "fa", "firefly":
		return methods.NewFirefly[metaheur.F1](), nil
	case "de":
		return methods.NewDE[metaheur.F1](), nil
	case "pso":
		return methods.NewPSO[metaheur.F1](), nil
	case "rga":
		return methods.NewRGA[metaheur.F1](), nil
	case "tlbo":
		return methods.NewTLBO[metaheur.F1](), nil
	default:
		return nil, fmt.Errorf("unknown method: %s (supported: fa, de, pso, rga, tlbo)", name)
	}
}

func runOptimization(cmd *cobra.Command, args []string) error {
	fn, err := objective.Lookup(benchmark, dim)
	if err != nil {
		return err
	}
	alg, err := newAlgorithm(method)
	if err != nil {
		return err
	}

	slog.Info("Starting optimization",
		"benchmark", benchmark, "dim", dim, "method", method,
		"pop", popNum, "gen", maxGen, "workers", workers)

	builder := metaheur.Build(alg, fn).
		PopNum(popNum).
		Workers(workers).
		Task(func(c *metaheur.Ctx[metaheur.F1]) bool { return c.Gen >= maxGen }).
		Record(metaheur.DefaultReport[metaheur.F1])
	if seed != 0 {
		builder.Seed(seed)
	}

	start := time.Now()
	solver, err := builder.Solve()
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)

	best := float64(solver.BestFitness())
	evals := float64(solver.Gen()) * float64(popNum)
	slog.Info("Optimization complete",
		"elapsed", elapsed,
		"best_fitness", best,
		"gap", best-fn.Optimum(),
		"seed", solver.Seed(),
		"evals_per_second", fmt.Sprintf("%.0f", evals/elapsed.Seconds()),
	)

	fmt.Printf("%s/%s d=%d: best %.6g (optimum %g) in %d generations, seed %d\n",
		benchmark, method, dim, best, fn.Optimum(), solver.Gen(), solver.Seed())

	if saveRun {
		jobID, err := saveRunArtifacts(solver)
		if err != nil {
			return err
		}
		fmt.Printf("Saved job %s under %s\n", jobID, dataDir)
	}

	return nil
}

// saveRunArtifacts persists the finished run as a checkpoint plus a trace so
// it can be listed and resumed later.
func saveRunArtifacts(solver *metaheur.Solver[metaheur.F1]) (string, error) {
	checkpointStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to create checkpoint store: %w", err)
	}

	jobID := uuid.New().String()
	config := store.JobConfig{
		Benchmark: benchmark,
		Dim:       dim,
		Method:    method,
		PopNum:    popNum,
		MaxGen:    maxGen,
		Seed:      solver.Seed(),
		Workers:   workers,
	}

	checkpoint := store.NewCheckpoint(
		jobID,
		solver.BestParams(),
		solver.BestFitness().Values(),
		solver.Gen(),
		solver.Seed(),
		config,
	)
	if err := checkpointStore.SaveCheckpoint(jobID, checkpoint); err != nil {
		return "", err
	}

	writer, err := store.NewTraceWriter(dataDir, jobID, false)
	if err != nil {
		return "", err
	}
	defer writer.Close()

	now := time.Now()
	for _, report := range solver.History() {
		entry := store.TraceEntry{
			Generation: report.Gen,
			Best:       report.Best,
			Timestamp:  now,
		}
		if err := writer.Write(entry); err != nil {
			return "", err
		}
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}

	return jobID, nil
}
