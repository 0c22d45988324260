package server

import (
	"context"
	"testing"

	"github.com/cwbudde/metaheur/internal/store"
)

func TestAlgorithmFor(t *testing.T) {
	for _, method := range []string{"fa", "firefly", "de", "pso", "rga", "tlbo"} {
		alg, err := algorithmFor(method)
		if err != nil {
			t.Errorf("algorithmFor(%q) failed: %v", method, err)
		}
		if alg == nil {
			t.Errorf("algorithmFor(%q) returned nil", method)
		}
	}

	if _, err := algorithmFor("annealing"); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestRunJob_Completes(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	if err := runJob(context.Background(), jm, nil, job.ID); err != nil {
		t.Fatalf("runJob failed: %v", err)
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateCompleted {
		t.Fatalf("Expected completed state, got %s (error: %s)", got.State, got.Error)
	}
	if got.Generation != 50 {
		t.Errorf("Expected generation 50, got %d", got.Generation)
	}
	if len(got.BestParams) != 3 {
		t.Errorf("Expected 3 best params, got %d", len(got.BestParams))
	}
	if len(got.BestFitness) != 1 {
		t.Errorf("Expected 1 fitness value, got %d", len(got.BestFitness))
	}
	if got.EndTime == nil {
		t.Error("Expected EndTime to be set")
	}
}

func TestRunJob_UnknownBenchmark(t *testing.T) {
	jm := NewJobManager()
	config := testJobConfig()
	config.Benchmark = "nope"
	job := jm.CreateJob(config)

	if err := runJob(context.Background(), jm, nil, job.ID); err == nil {
		t.Fatal("Expected error for unknown benchmark")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateFailed {
		t.Errorf("Expected failed state, got %s", got.State)
	}
	if got.Error == "" {
		t.Error("Expected error message on job")
	}
}

func TestRunJob_NotFound(t *testing.T) {
	jm := NewJobManager()
	if err := runJob(context.Background(), jm, nil, "nonexistent"); err == nil {
		t.Fatal("Expected error for nonexistent job")
	}
}

func TestRunJob_SavesFinalCheckpoint(t *testing.T) {
	checkpointStore, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	if err := runJob(context.Background(), jm, checkpointStore, job.ID); err != nil {
		t.Fatalf("runJob failed: %v", err)
	}

	checkpoint, err := checkpointStore.LoadCheckpoint(job.ID)
	if err != nil {
		t.Fatalf("Expected final checkpoint, got: %v", err)
	}
	if err := checkpoint.Validate(); err != nil {
		t.Errorf("Final checkpoint failed validation: %v", err)
	}
	if checkpoint.Generation != 50 {
		t.Errorf("Expected checkpoint at generation 50, got %d", checkpoint.Generation)
	}
	if checkpoint.Seed != 1 {
		t.Errorf("Expected seed 1, got %d", checkpoint.Seed)
	}
}

func TestRunJob_AutoSeed(t *testing.T) {
	jm := NewJobManager()
	config := testJobConfig()
	config.Seed = 0
	job := jm.CreateJob(config)

	if err := runJob(context.Background(), jm, nil, job.ID); err != nil {
		t.Fatalf("runJob failed: %v", err)
	}

	got, _ := jm.GetJob(job.ID)
	if got.Config.Seed == 0 {
		t.Error("Expected auto-generated seed to be recorded on the job")
	}
}

func TestRunJob_Cancelled(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runJob(ctx, jm, nil, job.ID); err == nil {
		t.Fatal("Expected context error")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateCancelled {
		t.Errorf("Expected cancelled state, got %s", got.State)
	}
}
