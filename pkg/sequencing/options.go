// Package sequencing implements cyclopeptide sequencing from integer mass
// spectra: exhaustive enumeration, branch-and-bound, leaderboard beam search
// and spectral-convolution alphabet restriction, plus a timed comparison
// runner.
package sequencing

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

var (
	// ErrIncomplete is returned when a run is cancelled or its deadline
	// passes before the search finishes. No partial result is returned.
	ErrIncomplete = errors.New("sequencing incomplete")

	// ErrResourceExceeded is returned when the live candidate set grows past
	// Options.MaxCandidates.
	ErrResourceExceeded = errors.New("candidate limit exceeded")
)

// Delegate selects the sequencer that consumes the convolution alphabet.
type Delegate string

const (
	DelegateLeaderboard Delegate = "leaderboard"
	DelegateBruteForce  Delegate = "brute_force"
)

// Options holds sequencing configuration
type Options struct {
	BeamWidth           int      // Leaderboard trim width N (ties at the N-th score are kept)
	ConvolutionTopM     int      // Number of most frequent convolution masses M (ties kept)
	MinResidueMass      int      // Smallest convolution mass considered a residue (inclusive)
	MaxResidueMass      int      // Largest convolution mass considered a residue (inclusive)
	ConvolutionDelegate Delegate // Sequencer run on the convolution alphabet
	MaxCandidates       int      // Abort when more candidates survive a round (0 = no limit)
	Trace               bool     // Record search trees and leaderboard rounds
	Alphabet            []byte   // Extension alphabet (nil = core.StandardAlphabet)
}

// DefaultOptions returns the options used by the CLI and the server.
func DefaultOptions() Options {
	return Options{
		BeamWidth:           10,
		ConvolutionTopM:     20,
		MinResidueMass:      57,
		MaxResidueMass:      200,
		ConvolutionDelegate: DelegateLeaderboard,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.BeamWidth < 1 {
		return fmt.Errorf("beam width must be positive, got %d", o.BeamWidth)
	}
	if o.ConvolutionTopM < 1 {
		return fmt.Errorf("convolution top-M must be positive, got %d", o.ConvolutionTopM)
	}
	if o.MinResidueMass < 1 || o.MaxResidueMass < o.MinResidueMass {
		return fmt.Errorf("invalid residue mass window [%d, %d]", o.MinResidueMass, o.MaxResidueMass)
	}
	switch o.ConvolutionDelegate {
	case DelegateLeaderboard, DelegateBruteForce:
	default:
		return fmt.Errorf("unknown convolution delegate %q", o.ConvolutionDelegate)
	}
	if o.MaxCandidates < 0 {
		return fmt.Errorf("max candidates must not be negative, got %d", o.MaxCandidates)
	}
	if _, err := residueMasses(o.Alphabet); err != nil {
		return err
	}
	return nil
}

// Sequencer runs the sequencing algorithms with a fixed set of options.
// A Sequencer holds no mutable state and may be shared between goroutines.
type Sequencer struct {
	opts Options
}

// New creates a Sequencer after validating opts.
func New(opts Options) (*Sequencer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Sequencer{opts: opts}, nil
}

// Options returns a copy of the sequencer options.
func (s *Sequencer) Options() Options {
	return s.opts
}

// WithoutTrace returns a sequencer with identical options but tracing off.
func (s *Sequencer) WithoutTrace() *Sequencer {
	opts := s.opts
	opts.Trace = false
	return &Sequencer{opts: opts}
}

func (s *Sequencer) alphabet() []byte {
	if len(s.opts.Alphabet) == 0 {
		return core.StandardAlphabet
	}
	return s.opts.Alphabet
}

// residueMasses resolves the mass of every alphabet symbol.
func residueMasses(alphabet []byte) ([]int, error) {
	masses := make([]int, len(alphabet))
	for i, aa := range alphabet {
		m, err := core.ResidueMass(aa)
		if err != nil {
			return nil, fmt.Errorf("alphabet position %d: %w", i, err)
		}
		masses[i] = m
	}
	return masses, nil
}

// checkEvery is how many peptides are processed between context checks
// inside a round.
const checkEvery = 1024

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIncomplete, err)
	}
	return nil
}

func checkCandidates(limit, live int) error {
	if limit > 0 && live > limit {
		return fmt.Errorf("%w: %d live candidates, limit %d", ErrResourceExceeded, live, limit)
	}
	return nil
}
