package server

import (
	"testing"
)

func testJobConfig() JobConfig {
	return JobConfig{
		Benchmark: "sphere",
		Dim:       3,
		Method:    "de",
		PopNum:    30,
		MaxGen:    50,
		Seed:      1,
	}
}

func TestCreateJob(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(testJobConfig())
	if job.ID == "" {
		t.Fatal("Expected non-empty job ID")
	}
	if job.State != StatePending {
		t.Errorf("Expected pending state, got %s", job.State)
	}
	if job.StartTime.IsZero() {
		t.Error("Expected StartTime to be set")
	}

	other := jm.CreateJob(testJobConfig())
	if other.ID == job.ID {
		t.Error("Expected unique job IDs")
	}
}

func TestGetJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	got, exists := jm.GetJob(job.ID)
	if !exists {
		t.Fatal("Expected job to exist")
	}
	if got.ID != job.ID {
		t.Errorf("Expected job ID %s, got %s", job.ID, got.ID)
	}

	if _, exists := jm.GetJob("nonexistent"); exists {
		t.Error("Expected nonexistent job to not exist")
	}
}

func TestGetJob_ReturnsSnapshot(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	jm.UpdateJob(job.ID, func(j *Job) {
		j.BestParams = []float64{1, 2, 3}
	})

	got, _ := jm.GetJob(job.ID)
	got.BestParams[0] = 99
	got.State = StateFailed

	fresh, _ := jm.GetJob(job.ID)
	if fresh.BestParams[0] != 1 {
		t.Error("Mutating a snapshot must not affect the stored job")
	}
	if fresh.State != StatePending {
		t.Errorf("Expected pending state, got %s", fresh.State)
	}
}

func TestUpdateJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testJobConfig())

	err := jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
		j.Generation = 42
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateRunning || got.Generation != 42 {
		t.Errorf("Update not applied: state=%s gen=%d", got.State, got.Generation)
	}

	if err := jm.UpdateJob("nonexistent", func(j *Job) {}); err == nil {
		t.Error("Expected error for nonexistent job")
	}
}

func TestListJobs(t *testing.T) {
	jm := NewJobManager()

	if got := jm.ListJobs(); len(got) != 0 {
		t.Errorf("Expected empty list, got %d jobs", len(got))
	}

	a := jm.CreateJob(testJobConfig())
	b := jm.CreateJob(testJobConfig())

	jobs := jm.ListJobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}

	found := make(map[string]bool)
	for _, job := range jobs {
		found[job.ID] = true
	}
	if !found[a.ID] || !found[b.ID] {
		t.Error("ListJobs missing created jobs")
	}
}

func TestGetRunningJobs(t *testing.T) {
	jm := NewJobManager()

	running := jm.CreateJob(testJobConfig())
	jm.CreateJob(testJobConfig()) // stays pending
	done := jm.CreateJob(testJobConfig())

	jm.UpdateJob(running.ID, func(j *Job) { j.State = StateRunning })
	jm.UpdateJob(done.ID, func(j *Job) { j.State = StateCompleted })

	got := jm.GetRunningJobs()
	if len(got) != 1 {
		t.Fatalf("Expected 1 running job, got %d", len(got))
	}
	if got[0].ID != running.ID {
		t.Errorf("Expected job %s, got %s", running.ID, got[0].ID)
	}
}
