package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepSeq/pkg/sequencing"
)

var (
	repeat     int
	runTimeout time.Duration
)

func init() {
	compareCmd.Flags().IntVar(&repeat, "repeat", 1, "Runs per sequencer; the mean time is reported")
	compareCmd.Flags().DurationVar(&runTimeout, "run-timeout", 0, "Deadline of each single run (0 = no limit)")
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Time every sequencer on the same spectra",
	Long: `Run brute force, branch-and-bound, leaderboard and convolution sequencing on
the same spectrum and report wall time and solutions of each. A sequencer that
fails or runs out of time does not stop the others.

Examples:
  pepseq compare --spectrum "0 57 71 128" --repeat 5
  pepseq compare --in spectra.txt --run-timeout 10s --json`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	seq, err := sequencing.New(buildOptions())
	if err != nil {
		return err
	}
	runner := sequencing.NewRunner(seq)
	runner.Repeat = repeat
	runner.Timeout = runTimeout

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

	results := make([]batchResult, 0, len(entries))
	for _, e := range entries {
		cmp, err := runner.Run(ctx, e.Spectrum)
		if err != nil {
			if len(entries) == 1 {
				return fmt.Errorf("%s: %w", e.Label, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: %s (line %d): %v\n", e.Label, e.Line, err)
			results = append(results, batchResult{Label: e.Label, Line: e.Line, Error: err.Error()})
			continue
		}
		results = append(results, batchResult{Label: e.Label, Line: e.Line, Result: cmp})

		if !jsonOutput {
			printComparison(e.Label, cmp)
		}
	}

	if jsonOutput {
		if len(results) == 1 {
			return printJSON(results[0].Result)
		}
		return printJSON(results)
	}
	if skipped > 0 {
		fmt.Printf("Skipped: %d spectra (validation errors)\n", skipped)
	}
	return nil
}

func printComparison(label string, cmp *sequencing.Comparison) {
	fmt.Printf("%s\n", label)
	printSlot("brute_force", cmp.BruteForce.Timing, cmp.BruteForce.Solution)
	printSlot("bnb", cmp.BranchAndBound.Timing, cmp.BranchAndBound.Solution)
	printSlot("leaderboard", cmp.Leaderboard.Timing, scoredPeptides(cmp.Leaderboard.Solution))
	printSlot("convolution", cmp.Convolution.Timing, scoredPeptides(cmp.Convolution.Solution))
}

func printSlot(name string, t sequencing.Timing, peptides []string) {
	line := fmt.Sprintf("  %-12s %ss  %-11s", name, t.ExecutionTime, t.Status)
	if t.ExecutionTimeStdDev != "" {
		line += fmt.Sprintf("  (±%ss over %d runs)", t.ExecutionTimeStdDev, t.Runs)
	}
	if t.Error != "" {
		line += "  " + t.Error
	} else if len(peptides) > 0 {
		line += "  " + strings.Join(peptides, " ")
	}
	fmt.Println(line)
}
