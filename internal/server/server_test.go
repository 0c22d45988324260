package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(":0", nil)
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["service"] != "metaheur" {
		t.Errorf("Unexpected service name: %v", body["service"])
	}
}

func TestHandleBenchmarks(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/benchmarks", nil)
	rec := httptest.NewRecorder()
	s.handleBenchmarks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(names) == 0 {
		t.Error("Expected at least one benchmark")
	}
}

func TestHandleCreateJob(t *testing.T) {
	s := testServer(t)

	body, _ := json.Marshal(JobConfig{
		Benchmark: "sphere",
		Dim:       3,
		Method:    "de",
		PopNum:    20,
		MaxGen:    10,
		Seed:      1,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleJobs(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var job Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if job.ID == "" {
		t.Fatal("Expected non-empty job ID")
	}

	// The worker runs in the background; small jobs finish quickly.
	deadline := time.Now().Add(5 * time.Second)
	for {
		got, exists := s.jobManager.GetJob(job.ID)
		if !exists {
			t.Fatal("Job disappeared")
		}
		if got.State == StateCompleted {
			break
		}
		if got.State == StateFailed {
			t.Fatalf("Job failed: %s", got.Error)
		}
		if time.Now().After(deadline) {
			t.Fatalf("Job did not complete in time, state: %s", got.State)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleCreateJob_Validation(t *testing.T) {
	s := testServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing benchmark", `{"method":"de"}`},
		{"unknown benchmark", `{"benchmark":"nope"}`},
		{"unknown method", `{"benchmark":"sphere","method":"annealing"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			s.handleJobs(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleGetJobStatus(t *testing.T) {
	s := testServer(t)
	job := s.jobManager.CreateJob(testJobConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID+"/status", nil)
	rec := httptest.NewRecorder()
	s.handleJobsWithID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var status map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if status["id"] != job.ID {
		t.Errorf("Expected job ID %s, got %v", job.ID, status["id"])
	}
	if status["state"] != string(StatePending) {
		t.Errorf("Expected pending state, got %v", status["state"])
	}
}

func TestHandleGetJobStatus_NotFound(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.handleJobsWithID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleListJobs(t *testing.T) {
	s := testServer(t)
	s.jobManager.CreateJob(testJobConfig())
	s.jobManager.CreateJob(testJobConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()
	s.handleJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var jobs []Job
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

func TestHandleDeleteJob(t *testing.T) {
	s := testServer(t)
	job := s.jobManager.CreateJob(testJobConfig())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+job.ID, nil)
	rec := httptest.NewRecorder()
	s.handleJobsWithID(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/nonexistent", nil)
	rec = httptest.NewRecorder()
	s.handleJobsWithID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestBroadcasterSubscribe(t *testing.T) {
	eb := NewEventBroadcaster()

	ch := eb.Subscribe("job-1")
	event := ProgressEvent{JobID: "job-1", State: StateRunning, Generation: 5, Timestamp: time.Now()}
	eb.Broadcast(event)

	select {
	case got := <-ch:
		if got.Generation != 5 {
			t.Errorf("Expected generation 5, got %d", got.Generation)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}

	eb.Unsubscribe("job-1", ch)
	if _, ok := <-ch; ok {
		t.Error("Expected channel to be closed after unsubscribe")
	}
}

func TestBroadcasterReplaysLastEvent(t *testing.T) {
	eb := NewEventBroadcaster()

	// Broadcast before anyone subscribes, then subscribe.
	eb.Broadcast(ProgressEvent{JobID: "job-1", State: StateRunning, Generation: 7, Timestamp: time.Now()})

	ch := eb.Subscribe("job-1")
	select {
	case got := <-ch:
		if got.Generation != 7 {
			t.Errorf("Expected replayed generation 7, got %d", got.Generation)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected last event to be replayed to new subscriber")
	}
	eb.Unsubscribe("job-1", ch)
}
