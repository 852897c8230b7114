package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
	"github.com/ChrisMcGann/PepSeq/pkg/sequencing"
)

var (
	algorithm string
	trace     bool
)

func init() {
	sequenceCmd.Flags().StringVarP(&algorithm, "algorithm", "a", "leaderboard", "Sequencer: brute_force, branch_and_bound, leaderboard or convolution")
	sequenceCmd.Flags().BoolVar(&trace, "trace", false, "Include the search tree or leaderboard rounds in JSON output")
}

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Sequence peptides from experimental spectra",
	Long: `Reconstruct the cyclic peptides that explain an experimental spectrum.

Examples:
  # Exhaustive search on one spectrum
  pepseq sequence --algorithm brute_force --spectrum "0 57 71 128"

  # Leaderboard with a wider beam on every spectrum of a file
  pepseq sequence --in spectra.txt --beam-width 50 --json

  # Convolution with the 10 most frequent masses and a deadline
  pepseq sequence -a convolution -m 10 --timeout 30s -s 0,97,129,194,226,323,355,452`,
	RunE: runSequence,
}

type sequenceFunc func(context.Context, core.Spectrum) (any, []string, error)

func runSequence(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	opts.Trace = trace
	seq, err := sequencing.New(opts)
	if err != nil {
		return err
	}

	run, err := sequencerFor(seq, strings.ToLower(algorithm))
	if err != nil {
		return err
	}

	entries, err := loadSpectra()
	if err != nil {
		return err
	}
	entries, skipped := validEntries(entries)
	if len(entries) == 0 {
		return fmt.Errorf("no valid spectra in %s", inputFile)
	}

	ctx, cancel := commandContext()
	defer cancel()

	if !jsonOutput {
		fmt.Printf("Sequencing %d spectra with %s...\n", len(entries), algorithm)
	}

	results := make([]batchResult, 0, len(entries))
	failed := 0
	for _, e := range entries {
		res, peptides, err := run(ctx, e.Spectrum)
		if errors.Is(err, sequencing.ErrIncomplete) || (err != nil && len(entries) == 1) {
			return fmt.Errorf("%s: %w", e.Label, err)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s (line %d): %v\n", e.Label, e.Line, err)
			results = append(results, batchResult{Label: e.Label, Line: e.Line, Error: err.Error()})
			failed++
			continue
		}
		results = append(results, batchResult{Label: e.Label, Line: e.Line, Result: res})

		if jsonOutput {
			continue
		}
		if len(peptides) == 0 {
			fmt.Printf("%s: no solution\n", e.Label)
			continue
		}
		fmt.Printf("%s: %s\n", e.Label, strings.Join(peptides, " "))
	}

	if jsonOutput {
		if len(results) == 1 {
			return printJSON(results[0].Result)
		}
		return printJSON(results)
	}

	if skipped > 0 || failed > 0 {
		fmt.Printf("Skipped: %d spectra (%d invalid, %d failed)\n", skipped+failed, skipped, failed)
	}
	return nil
}

// sequencerFor adapts one sequencer to a common signature that also returns
// the peptides to print.
func sequencerFor(seq *sequencing.Sequencer, name string) (sequenceFunc, error) {
	switch name {
	case "brute_force", "bf":
		return func(ctx context.Context, spec core.Spectrum) (any, []string, error) {
			res, err := seq.BruteForce(ctx, spec)
			if err != nil {
				return nil, nil, err
			}
			return res, res.Solution, nil
		}, nil
	case "branch_and_bound", "bnb":
		return func(ctx context.Context, spec core.Spectrum) (any, []string, error) {
			res, err := seq.BranchAndBound(ctx, spec)
			if err != nil {
				return nil, nil, err
			}
			return res, res.Solution, nil
		}, nil
	case "leaderboard":
		return func(ctx context.Context, spec core.Spectrum) (any, []string, error) {
			res, err := seq.Leaderboard(ctx, spec)
			if err != nil {
				return nil, nil, err
			}
			return res, scoredPeptides(res.Solution), nil
		}, nil
	case "convolution", "spectral_convolution":
		return func(ctx context.Context, spec core.Spectrum) (any, []string, error) {
			res, err := seq.Convolution(ctx, spec)
			if err != nil {
				return nil, nil, err
			}
			return res, scoredPeptides(res.Solution), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm '%s', must be brute_force, branch_and_bound, leaderboard or convolution", name)
	}
}

func scoredPeptides(solutions []sequencing.Solution) []string {
	out := make([]string, len(solutions))
	for i, s := range solutions {
		out[i] = fmt.Sprintf("%s(%d)", s.Peptide, s.NumberOfMatches)
	}
	return out
}
