package sequencing

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

func TestRunner(t *testing.T) {
	r := NewRunner(newSequencer(t, func(o *Options) { o.Trace = true }))

	got, err := r.Run(context.Background(), gaSpectrum)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"GA", "AG"}, got.BruteForce.Solution); diff != "" {
		t.Errorf("brute force solution (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GA", "AG"}, got.BranchAndBound.Solution); diff != "" {
		t.Errorf("branch-and-bound solution (-want +got):\n%s", diff)
	}

	for name, timing := range map[string]Timing{
		"brute_force": got.BruteForce.Timing,
		"bnb":         got.BranchAndBound.Timing,
		"leaderboard": got.Leaderboard.Timing,
		"convolution": got.Convolution.Timing,
	} {
		if timing.Status != StatusSolved {
			t.Errorf("%s: status = %s, want solved (%s)", name, timing.Status, timing.Error)
		}
		if timing.Runs != 1 {
			t.Errorf("%s: runs = %d, want 1", name, timing.Runs)
		}
		if secs, err := strconv.ParseFloat(timing.ExecutionTime, 64); err != nil || secs < 0 {
			t.Errorf("%s: execution_time %q", name, timing.ExecutionTime)
		}
		if timing.ExecutionTimeStdDev != "" {
			t.Errorf("%s: unexpected stddev for a single run", name)
		}
	}

	// Comparisons never carry traces.
	for _, sol := range got.Leaderboard.Solution {
		if sol.Spectrum != nil {
			t.Error("Expected no spectrum in comparison solutions")
		}
	}
}

func TestRunnerRepeat(t *testing.T) {
	r := NewRunner(newSequencer(t, nil))
	r.Repeat = 3

	got, err := r.Run(context.Background(), gaSpectrum)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Leaderboard.Runs != 3 {
		t.Errorf("runs = %d, want 3", got.Leaderboard.Runs)
	}
	if got.Leaderboard.ExecutionTimeStdDev == "" {
		t.Error("Expected stddev for repeated runs")
	}
}

func TestRunnerPerSequencerFailure(t *testing.T) {
	r := NewRunner(newSequencer(t, nil))
	r.Timeout = 20 * time.Millisecond

	got, err := r.Run(context.Background(), core.Spectrum{0, 1500})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.BruteForce.Status != StatusIncomplete {
		t.Errorf("brute force status = %s, want incomplete", got.BruteForce.Status)
	}
	if got.BruteForce.Error == "" || len(got.BruteForce.Solution) != 0 {
		t.Errorf("brute force slot = %+v", got.BruteForce)
	}
	// No single residue is in the spectrum, so branch-and-bound prunes
	// everything in the first round.
	if got.BranchAndBound.Status != StatusNoSolution {
		t.Errorf("branch-and-bound status = %s, want no_solution (%s)", got.BranchAndBound.Status, got.BranchAndBound.Error)
	}
	if got.Leaderboard.Status == "" || got.Convolution.Status == "" {
		t.Error("Expected every slot to be filled")
	}
}

func TestRunnerCandidateLimit(t *testing.T) {
	r := NewRunner(newSequencer(t, func(o *Options) { o.MaxCandidates = 100 }))

	got, err := r.Run(context.Background(), core.Spectrum{0, 1500})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.BruteForce.Status != StatusExceeded {
		t.Errorf("brute force status = %s, want resource_exceeded", got.BruteForce.Status)
	}
	if got.BruteForce.Error == "" {
		t.Error("Expected error text in the brute force slot")
	}
	if got.BranchAndBound.Status != StatusNoSolution {
		t.Errorf("branch-and-bound status = %s, want no_solution", got.BranchAndBound.Status)
	}
}

func TestRunnerInvalidSpectrum(t *testing.T) {
	r := NewRunner(newSequencer(t, nil))

	if _, err := r.Run(context.Background(), core.Spectrum{5, 10}); !errors.Is(err, core.ErrInvalidSpectrum) {
		t.Errorf("Expected ErrInvalidSpectrum, got %v", err)
	}
}
