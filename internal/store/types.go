package store

import (
	"fmt"
	"time"
)

// JobConfig holds the configuration of an optimization job (checkpoint copy).
// This avoids import cycles with the server package.
type JobConfig struct {
	Benchmark          string `json:"benchmark"`
	Dim                int    `json:"dim"`
	Method             string `json:"method"` // fa, de, pso, rga, tlbo
	PopNum             int    `json:"popNum"`
	MaxGen             uint64 `json:"maxGen"`
	Seed               uint64 `json:"seed"`
	Workers            int    `json:"workers,omitempty"`
	CheckpointInterval int    `json:"checkpointInterval,omitempty"` // seconds, 0 = disabled
}

// Checkpoint is a saved optimization state that can be resumed later.
//
// The checkpoint saves the best parameters found so far plus the originating
// seed, but not the strategy's internal population state. Resuming therefore
// restarts with a fresh pool seeded around the saved best: the best fitness
// never worsens, but the continued trajectory diverges from an uninterrupted
// run. Saving full populations would tie the checkpoint format to each
// strategy's internal state, which is not worth the coupling.
type Checkpoint struct {
	// JobID is the unique identifier for this optimization job.
	JobID string `json:"jobId"`

	// BestParams is the parameter vector that achieved BestFitness.
	BestParams []float64 `json:"bestParams"`

	// BestFitness holds the best objective values (one element for
	// single-objective runs).
	BestFitness []float64 `json:"bestFitness"`

	// Generation is the generation counter when this checkpoint was created.
	Generation uint64 `json:"generation"`

	// Seed is the originating random seed of the run, kept for replay.
	Seed uint64 `json:"seed"`

	// Timestamp records when this checkpoint was created.
	Timestamp time.Time `json:"timestamp"`

	// Config holds the job configuration, needed for validation during
	// resume.
	Config JobConfig `json:"config"`
}

// CheckpointInfo is checkpoint metadata without the parameter payload, used
// for cheap listings.
type CheckpointInfo struct {
	JobID       string    `json:"jobId"`
	BestFitness []float64 `json:"bestFitness"`
	Generation  uint64    `json:"generation"`
	Timestamp   time.Time `json:"timestamp"`
	Benchmark   string    `json:"benchmark"`
	Method      string    `json:"method"`
	Dim         int       `json:"dim"`
}

// NewCheckpoint creates a checkpoint from run state.
func NewCheckpoint(jobID string, bestParams, bestFitness []float64, generation, seed uint64, config JobConfig) *Checkpoint {
	return &Checkpoint{
		JobID:       jobID,
		BestParams:  bestParams,
		BestFitness: bestFitness,
		Generation:  generation,
		Seed:        seed,
		Timestamp:   time.Now(),
		Config:      config,
	}
}

// ToInfo converts a full Checkpoint to metadata only.
func (c *Checkpoint) ToInfo() CheckpointInfo {
	return CheckpointInfo{
		JobID:       c.JobID,
		BestFitness: c.BestFitness,
		Generation:  c.Generation,
		Timestamp:   c.Timestamp,
		Benchmark:   c.Config.Benchmark,
		Method:      c.Config.Method,
		Dim:         c.Config.Dim,
	}
}

// Validate checks that the checkpoint has usable data.
func (c *Checkpoint) Validate() error {
	if c.JobID == "" {
		return &ValidationError{Field: "JobID", Reason: "cannot be empty"}
	}
	if len(c.BestParams) == 0 {
		return &ValidationError{Field: "BestParams", Reason: "cannot be empty"}
	}
	if len(c.BestFitness) == 0 {
		return &ValidationError{Field: "BestFitness", Reason: "cannot be empty"}
	}
	if c.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if c.Config.Benchmark == "" {
		return &ValidationError{Field: "Config.Benchmark", Reason: "cannot be empty"}
	}
	if c.Config.Method == "" {
		return &ValidationError{Field: "Config.Method", Reason: "cannot be empty"}
	}
	if c.Config.Dim <= 0 {
		return &ValidationError{Field: "Config.Dim", Reason: "must be positive"}
	}
	if c.Config.PopNum <= 0 {
		return &ValidationError{Field: "Config.PopNum", Reason: "must be positive"}
	}
	if len(c.BestParams) != c.Config.Dim {
		return &ValidationError{
			Field:  "BestParams",
			Reason: fmt.Sprintf("length mismatch: %d params for dimension %d", len(c.BestParams), c.Config.Dim),
		}
	}
	return nil
}

// ValidationError represents a checkpoint validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// IsCompatible checks whether this checkpoint can be resumed with the given
// config: the problem must match even if population size or budget changed.
func (c *Checkpoint) IsCompatible(config JobConfig) error {
	if c.Config.Benchmark != config.Benchmark {
		return &CompatibilityError{
			Field:    "Benchmark",
			Expected: c.Config.Benchmark,
			Actual:   config.Benchmark,
		}
	}
	if c.Config.Dim != config.Dim {
		return &CompatibilityError{
			Field:    "Dim",
			Expected: fmt.Sprintf("%d", c.Config.Dim),
			Actual:   fmt.Sprintf("%d", config.Dim),
		}
	}
	return nil
}

// CompatibilityError represents a checkpoint compatibility error.
type CompatibilityError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *CompatibilityError) Error() string {
	return "compatibility error: " + e.Field + " mismatch (expected " + e.Expected + ", got " + e.Actual + ")"
}
