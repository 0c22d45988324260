package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/internal/objective"
	"github.com/cwbudde/metaheur/internal/store"
	"github.com/spf13/cobra"
)

var (
	resumeDataDir string
	resumeGen     uint64
	resumePop     int
	resumeWorkers int
	resumeSpread  float64
)

var resumeCmd = &cobra.Command{
	Use:   "resume [job-id]",
	Short: "Resume optimization from a checkpoint",
	Long: `Resumes a saved optimization. The new population is sampled around the
checkpoint's best parameters, so the run continues refining from where it
stopped. The checkpoint is updated only if the resumed run improves on it.`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().StringVar(&resumeDataDir, "data-dir", "./data", "Base directory for checkpoint storage")
	resumeCmd.Flags().Uint64Var(&resumeGen, "gen", 200, "Additional generations to run")
	resumeCmd.Flags().IntVar(&resumePop, "pop", 0, "Population size (0 = from checkpoint)")
	resumeCmd.Flags().IntVar(&resumeWorkers, "workers", 0, "Evaluation workers (<=1 sequential)")
	resumeCmd.Flags().Float64Var(&resumeSpread, "spread", 0.05, "Initial spread around the saved best, as a fraction of each bound width")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	checkpointStore, err := store.NewFSStore(resumeDataDir)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint store: %w", err)
	}

	checkpoint, err := checkpointStore.LoadCheckpoint(jobID)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if err := checkpoint.Validate(); err != nil {
		return fmt.Errorf("invalid checkpoint: %w", err)
	}

	config := checkpoint.Config
	if resumePop > 0 {
		config.PopNum = resumePop
	}
	if err := checkpoint.IsCompatible(config); err != nil {
		return err
	}

	fn, err := objective.Lookup(config.Benchmark, config.Dim)
	if err != nil {
		return err
	}
	alg, err := newAlgorithm(config.Method)
	if err != nil {
		return err
	}

	slog.Info("Resuming job",
		"job_id", jobID,
		"benchmark", config.Benchmark, "method", config.Method,
		"from_generation", checkpoint.Generation,
		"best_fitness", checkpoint.BestFitness)

	// Sample the fresh pool around the saved best, with a spread proportional
	// to each dimension's bound width.
	bound := fn.Bound()
	std := make([]float64, config.Dim)
	for s, p := range bound {
		std[s] = resumeSpread * (p[1] - p[0])
	}

	gens := resumeGen
	start := time.Now()
	solver, err := metaheur.Build(alg, fn).
		PopNum(config.PopNum).
		Workers(resumeWorkers).
		PoolGenerator(metaheur.GaussianPool(checkpoint.BestParams, std)).
		Task(func(c *metaheur.Ctx[metaheur.F1]) bool { return c.Gen >= gens }).
		Record(metaheur.DefaultReport[metaheur.F1]).
		Solve()
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)

	oldBest := checkpoint.BestFitness[0]
	newBest := float64(solver.BestFitness())
	improved := newBest < oldBest

	slog.Info("Resume complete",
		"job_id", jobID,
		"elapsed", elapsed,
		"old_best", oldBest,
		"new_best", newBest,
		"improved", improved,
	)

	if improved {
		updated := store.NewCheckpoint(
			jobID,
			solver.BestParams(),
			solver.BestFitness().Values(),
			checkpoint.Generation+solver.Gen(),
			checkpoint.Seed,
			config,
		)
		if err := checkpointStore.SaveCheckpoint(jobID, updated); err != nil {
			return fmt.Errorf("failed to update checkpoint: %w", err)
		}

		// Extend the trace so the full history stays in one file.
		writer, err := store.NewTraceWriter(resumeDataDir, jobID, true)
		if err != nil {
			return err
		}
		defer writer.Close()
		now := time.Now()
		for _, report := range solver.History() {
			entry := store.TraceEntry{
				Generation: checkpoint.Generation + report.Gen,
				Best:       report.Best,
				Timestamp:  now,
			}
			if err := writer.Write(entry); err != nil {
				return err
			}
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	fmt.Printf("Resumed %s: best %.6g -> %.6g after %d more generations\n",
		jobID, oldBest, newBest, solver.Gen())
	return nil
}
