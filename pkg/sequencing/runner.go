package sequencing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

// Status reports how one sequencer of a comparison ended.
type Status string

const (
	StatusSolved     Status = "solved"
	StatusNoSolution Status = "no_solution"
	StatusIncomplete Status = "incomplete"
	StatusExceeded   Status = "resource_exceeded"
	StatusFailed     Status = "failed"
)

// Timing is the timing part of a comparison slot. Times are seconds
// formatted with 6 decimals.
type Timing struct {
	ExecutionTime       string `json:"execution_time"`
	ExecutionTimeStdDev string `json:"execution_time_stddev,omitempty"`
	Runs                int    `json:"runs"`
	Status              Status `json:"status"`
	Error               string `json:"error,omitempty"`
}

// PeptideSlot is the comparison slot of an exhaustive sequencer.
type PeptideSlot struct {
	Timing
	Solution []string `json:"solution"`
}

// ScoredSlot is the comparison slot of a score-based sequencer.
type ScoredSlot struct {
	Timing
	Solution []Solution `json:"solution"`
}

// Comparison holds one slot per sequencer.
type Comparison struct {
	BruteForce     PeptideSlot `json:"brute_force"`
	BranchAndBound PeptideSlot `json:"bnb"`
	Leaderboard    ScoredSlot  `json:"leaderboard"`
	Convolution    ScoredSlot  `json:"convolution"`
}

// Runner runs every sequencer on the same spectrum, one after the other,
// and times each of them.
type Runner struct {
	Sequencer *Sequencer
	Timeout   time.Duration // Deadline of each single run (0 = caller's context only)
	Repeat    int           // Runs per sequencer; the mean time is reported (< 1 means 1)
}

// NewRunner creates a Runner with a single run per sequencer and no
// per-run deadline.
func NewRunner(s *Sequencer) *Runner {
	return &Runner{Sequencer: s, Repeat: 1}
}

// Run compares the four sequencers. Only an invalid spectrum fails the whole
// comparison; errors of a single sequencer are reported in its slot.
func (r *Runner) Run(ctx context.Context, spectrum core.Spectrum) (*Comparison, error) {
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	seq := r.Sequencer.WithoutTrace()

	var cmp Comparison

	var bf *TreeResult
	cmp.BruteForce.Timing = r.measure(ctx, func(ctx context.Context) (int, error) {
		var err error
		bf, err = seq.BruteForce(ctx, spectrum)
		if err != nil {
			return 0, err
		}
		return len(bf.Solution), nil
	})
	cmp.BruteForce.Solution = peptidesOf(bf)

	var bnb *TreeResult
	cmp.BranchAndBound.Timing = r.measure(ctx, func(ctx context.Context) (int, error) {
		var err error
		bnb, err = seq.BranchAndBound(ctx, spectrum)
		if err != nil {
			return 0, err
		}
		return len(bnb.Solution), nil
	})
	cmp.BranchAndBound.Solution = peptidesOf(bnb)

	var lb *LeaderboardResult
	cmp.Leaderboard.Timing = r.measure(ctx, func(ctx context.Context) (int, error) {
		var err error
		lb, err = seq.Leaderboard(ctx, spectrum)
		if err != nil {
			return 0, err
		}
		return len(lb.Solution), nil
	})
	cmp.Leaderboard.Solution = []Solution{}
	if lb != nil {
		cmp.Leaderboard.Solution = lb.Solution
	}

	var conv *ConvolutionResult
	cmp.Convolution.Timing = r.measure(ctx, func(ctx context.Context) (int, error) {
		var err error
		conv, err = seq.Convolution(ctx, spectrum)
		if err != nil {
			return 0, err
		}
		return len(conv.Solution), nil
	})
	cmp.Convolution.Solution = []Solution{}
	if conv != nil {
		cmp.Convolution.Solution = conv.Solution
	}

	return &cmp, nil
}

func peptidesOf(res *TreeResult) []string {
	if res == nil {
		return []string{}
	}
	return res.Solution
}

// measure runs fn Repeat times and summarizes wall time and outcome. The
// first failing run stops the repetition.
func (r *Runner) measure(ctx context.Context, fn func(context.Context) (int, error)) Timing {
	repeat := r.Repeat
	if repeat < 1 {
		repeat = 1
	}

	var (
		durations []float64
		solutions int
		err       error
	)
	for i := 0; i < repeat; i++ {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		}
		start := time.Now()
		solutions, err = safeRun(runCtx, fn)
		elapsed := time.Since(start)
		cancel()

		durations = append(durations, elapsed.Seconds())
		if err != nil {
			break
		}
	}

	t := Timing{Runs: len(durations)}
	mean := stat.Mean(durations, nil)
	t.ExecutionTime = fmt.Sprintf("%.6f", mean)
	if len(durations) > 1 {
		t.ExecutionTimeStdDev = fmt.Sprintf("%.6f", stat.StdDev(durations, nil))
	}

	switch {
	case errors.Is(err, ErrIncomplete):
		t.Status = StatusIncomplete
		t.Error = err.Error()
	case errors.Is(err, ErrResourceExceeded):
		t.Status = StatusExceeded
		t.Error = err.Error()
	case err != nil:
		t.Status = StatusFailed
		t.Error = err.Error()
	case solutions == 0:
		t.Status = StatusNoSolution
	default:
		t.Status = StatusSolved
	}
	return t
}

// safeRun turns a panic inside one sequencer into an error so the remaining
// sequencers still run.
func safeRun(ctx context.Context, fn func(context.Context) (int, error)) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sequencer panic: %v", p)
		}
	}()
	return fn(ctx)
}
