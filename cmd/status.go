package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var serverURL string

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Query server status or a specific job",
	Long: `Queries the job server. With no job-id, lists all jobs; with one,
shows detailed status for that job.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listJobs(fmt.Sprintf("%s/api/v1/jobs", serverURL))
	}
	jobID := args[0]
	return getJobStatus(fmt.Sprintf("%s/api/v1/jobs/%s/status", serverURL, jobID), jobID)
}

func listJobs(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var jobs []struct {
		ID     string `json:"id"`
		State  string `json:"state"`
		Config struct {
			Benchmark string `json:"benchmark"`
			Method    string `json:"method"`
			Dim       int    `json:"dim"`
		} `json:"config"`
		BestFitness []float64 `json:"bestFitness"`
		Generation  uint64    `json:"generation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("Found %d job(s):\n\n", len(jobs))
	for _, job := range jobs {
		fmt.Printf("Job ID: %s\n", job.ID)
		fmt.Printf("  State: %s\n", job.State)
		fmt.Printf("  Problem: %s d=%d (%s)\n", job.Config.Benchmark, job.Config.Dim, job.Config.Method)
		if len(job.BestFitness) > 0 {
			fmt.Printf("  Best: %.6g at generation %d\n", job.BestFitness[0], job.Generation)
		}
		fmt.Println()
	}
	return nil
}

func getJobStatus(url, jobID string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var status struct {
		ID     string `json:"id"`
		State  string `json:"state"`
		Config struct {
			Benchmark string `json:"benchmark"`
			Method    string `json:"method"`
			Dim       int    `json:"dim"`
			PopNum    int    `json:"popNum"`
			MaxGen    uint64 `json:"maxGen"`
			Seed      uint64 `json:"seed"`
		} `json:"config"`
		BestFitness []float64 `json:"bestFitness"`
		Generation  uint64    `json:"generation"`
		Elapsed     float64   `json:"elapsed"`
		EPS         float64   `json:"eps"`
		Error       string    `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Job: %s\n", status.ID)
	fmt.Printf("State: %s\n", status.State)
	fmt.Println()

	fmt.Println("Configuration:")
	fmt.Printf("  Benchmark: %s (d=%d)\n", status.Config.Benchmark, status.Config.Dim)
	fmt.Printf("  Method: %s\n", status.Config.Method)
	fmt.Printf("  Population: %d\n", status.Config.PopNum)
	fmt.Printf("  Max generations: %d\n", status.Config.MaxGen)
	fmt.Printf("  Seed: %d\n", status.Config.Seed)
	fmt.Println()

	fmt.Println("Progress:")
	fmt.Printf("  Generation: %d\n", status.Generation)
	if len(status.BestFitness) > 0 {
		fmt.Printf("  Best fitness: %.6g\n", status.BestFitness[0])
	}
	fmt.Printf("  Elapsed: %s\n", time.Duration(status.Elapsed*float64(time.Second)).Round(time.Millisecond))
	if status.EPS > 0 {
		fmt.Printf("  Throughput: %.0f evals/sec\n", status.EPS)
	}
	if status.Error != "" {
		fmt.Printf("\nError: %s\n", status.Error)
	}
	return nil
}
