package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/internal/objective"
	"github.com/cwbudde/metaheur/internal/store"
	"github.com/cwbudde/metaheur/methods"
)

// algorithmFor maps a method name to a fresh strategy instance with its
// default parameters.
func algorithmFor(method string) (metaheur.Algorithm[metaheur.F1], error) {
	switch method {
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
		return nil, fmt.Errorf("unknown method: %s (supported: fa, de, pso, rga, tlbo)", method)
	}
}

// runJob executes an optimization job in the background.
// If checkpointStore is not nil and the job has CheckpointInterval > 0,
// periodic checkpoints are saved.
func runJob(ctx context.Context, jm *JobManager, checkpointStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}
	config := job.Config

	// Auto-seed before the run starts so checkpoints always carry a
	// replayable seed.
	if config.Seed == 0 {
		config.Seed = rand.Uint64()
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
		j.Config = config
	}); err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID,
		"benchmark", config.Benchmark, "method", config.Method,
		"dim", config.Dim, "pop", config.PopNum, "max_gen", config.MaxGen,
		"seed", config.Seed)

	fn, err := objective.Lookup(config.Benchmark, config.Dim)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	alg, err := algorithmFor(config.Method)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	start := time.Now()

	// Progress broadcasting is decoupled from the generation loop so SSE
	// traffic stays throttled no matter how fast generations complete.
	progressDone := make(chan struct{})
	go monitorProgress(ctx, jm, jobID, start, progressDone)

	checkpointDone := make(chan struct{})
	if checkpointStore != nil && config.CheckpointInterval > 0 {
		go monitorCheckpoints(ctx, jm, checkpointStore, jobID, checkpointDone)
	} else {
		close(checkpointDone)
	}

	solver, err := metaheur.Build(alg, fn).
		PopNum(config.PopNum).
		Seed(config.Seed).
		Workers(config.Workers).
		Task(func(c *metaheur.Ctx[metaheur.F1]) bool {
			select {
			case <-ctx.Done():
				return true
			default:
			}
			return c.Gen >= config.MaxGen
		}).
		Callback(func(c *metaheur.Ctx[metaheur.F1]) {
			best := c.BestParams()
			fit := c.BestFitness().Values()
			gen := c.Gen
			jm.UpdateJob(jobID, func(j *Job) {
				j.BestParams = append([]float64(nil), best...)
				j.BestFitness = append([]float64(nil), fit...)
				j.Generation = gen
			})
		}).
		Solve()

	close(progressDone)
	if checkpointStore != nil && config.CheckpointInterval > 0 {
		close(checkpointDone)
	}

	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	elapsed := time.Since(start)
	endTime := time.Now()
	bestParams := solver.BestParams()
	bestFitness := solver.BestFitness().Values()
	gen := solver.Gen()

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.BestParams = bestParams
		j.BestFitness = bestFitness
		j.Generation = gen
		j.EndTime = &endTime
	}); err != nil {
		return err
	}

	eps := evalsPerSecond(gen, config.PopNum, elapsed.Seconds())
	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"generations", gen,
		"best_fitness", bestFitness,
		"evals_per_second", eps,
	)

	if checkpointStore != nil {
		if err := saveCheckpoint(jm, checkpointStore, jobID); err != nil {
			slog.Warn("Failed to save final checkpoint", "job_id", jobID, "error", err)
		}
	}

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:       jobID,
		State:       StateCompleted,
		Generation:  gen,
		BestFitness: bestFitness,
		EPS:         eps,
		Timestamp:   time.Now(),
	})

	return nil
}

// evalsPerSecond estimates objective-evaluation throughput. The strategies
// evaluate roughly one candidate per individual per generation.
func evalsPerSecond(gen uint64, popNum int, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(gen) * float64(popNum) / seconds
}

// monitorProgress periodically broadcasts progress events during optimization.
func monitorProgress(ctx context.Context, jm *JobManager, jobID string, startTime time.Time, done chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, exists := jm.GetJob(jobID)
			if !exists {
				return
			}

			elapsed := time.Since(startTime).Seconds()
			jm.broadcaster.Broadcast(ProgressEvent{
				JobID:       jobID,
				State:       job.State,
				Generation:  job.Generation,
				BestFitness: job.BestFitness,
				EPS:         evalsPerSecond(job.Generation, job.Config.PopNum, elapsed),
				Timestamp:   time.Now(),
			})
		}
	}
}

// monitorCheckpoints periodically saves checkpoints during optimization.
func monitorCheckpoints(ctx context.Context, jm *JobManager, checkpointStore store.Store, jobID string, done chan struct{}) {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return
	}

	interval := time.Duration(job.Config.CheckpointInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := saveCheckpoint(jm, checkpointStore, jobID); err != nil {
				slog.Error("Failed to save checkpoint", "job_id", jobID, "error", err)
			}
		}
	}
}

// saveCheckpoint saves the current best state of the given job.
func saveCheckpoint(jm *JobManager, checkpointStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if len(job.BestParams) == 0 {
		slog.Debug("Skipping checkpoint, no best params yet", "job_id", jobID)
		return nil
	}

	checkpoint := store.NewCheckpoint(
		jobID,
		job.BestParams,
		job.BestFitness,
		job.Generation,
		job.Config.Seed,
		job.Config,
	)

	if err := checkpointStore.SaveCheckpoint(jobID, checkpoint); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	slog.Info("Checkpoint saved",
		"job_id", jobID,
		"generation", job.Generation,
		"best_fitness", job.BestFitness,
	)
	return nil
}

// markJobFailed marks a job as failed with an error message.
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled.
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
