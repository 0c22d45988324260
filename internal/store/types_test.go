package store

import (
	"errors"
	"testing"
	"time"
)

func validConfig() JobConfig {
	return JobConfig{
		Benchmark: "rastrigin",
		Dim:       4,
		Method:    "pso",
		PopNum:    100,
		MaxGen:    500,
		Seed:      7,
	}
}

func TestCheckpointValidate(t *testing.T) {
	cp := NewCheckpoint("job-1", []float64{1, 2, 3, 4}, []float64{0.5}, 100, 7, validConfig())
	if err := cp.Validate(); err != nil {
		t.Fatalf("Valid checkpoint failed validation: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Checkpoint)
	}{
		{"empty jobID", func(c *Checkpoint) { c.JobID = "" }},
		{"empty params", func(c *Checkpoint) { c.BestParams = nil }},
		{"empty fitness", func(c *Checkpoint) { c.BestFitness = nil }},
		{"zero timestamp", func(c *Checkpoint) { c.Timestamp = time.Time{} }},
		{"empty benchmark", func(c *Checkpoint) { c.Config.Benchmark = "" }},
		{"empty method", func(c *Checkpoint) { c.Config.Method = "" }},
		{"zero dim", func(c *Checkpoint) { c.Config.Dim = 0 }},
		{"zero popNum", func(c *Checkpoint) { c.Config.PopNum = 0 }},
		{"params/dim mismatch", func(c *Checkpoint) { c.BestParams = []float64{1, 2} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := NewCheckpoint("job-1", []float64{1, 2, 3, 4}, []float64{0.5}, 100, 7, validConfig())
			tc.mutate(bad)
			err := bad.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestCheckpointIsCompatible(t *testing.T) {
	cp := NewCheckpoint("job-1", []float64{1, 2, 3, 4}, []float64{0.5}, 100, 7, validConfig())

	// Same problem with a different population or budget is fine.
	cfg := validConfig()
	cfg.PopNum = 300
	cfg.MaxGen = 2000
	cfg.Method = "de"
	if err := cp.IsCompatible(cfg); err != nil {
		t.Errorf("Expected compatible config, got: %v", err)
	}

	cfg = validConfig()
	cfg.Benchmark = "sphere"
	if err := cp.IsCompatible(cfg); err == nil {
		t.Error("Expected incompatibility for benchmark mismatch")
	}

	cfg = validConfig()
	cfg.Dim = 8
	err := cp.IsCompatible(cfg)
	if err == nil {
		t.Fatal("Expected incompatibility for dimension mismatch")
	}
	var cerr *CompatibilityError
	if !errors.As(err, &cerr) {
		t.Errorf("Expected CompatibilityError, got %T: %v", err, err)
	}
}

func TestCheckpointToInfo(t *testing.T) {
	cp := NewCheckpoint("job-1", []float64{1, 2, 3, 4}, []float64{0.5}, 100, 7, validConfig())
	info := cp.ToInfo()

	if info.JobID != cp.JobID {
		t.Errorf("JobID mismatch: expected %s, got %s", cp.JobID, info.JobID)
	}
	if info.Generation != cp.Generation {
		t.Errorf("Generation mismatch: expected %d, got %d", cp.Generation, info.Generation)
	}
	if info.Benchmark != "rastrigin" || info.Method != "pso" || info.Dim != 4 {
		t.Errorf("Config metadata mismatch: %+v", info)
	}
}
