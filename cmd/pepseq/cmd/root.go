// Package cmd provides CLI command implementations
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
	"github.com/ChrisMcGann/PepSeq/pkg/reader/text"
	"github.com/ChrisMcGann/PepSeq/pkg/sequencing"
)

var (
	// Sequencing flags shared by sequence, compare and serve
	beamWidth     int
	topM          int
	minMass       int
	maxMass       int
	delegate      string
	maxCandidates int
	alphabet      string

	// Input flags shared by sequence and compare
	spectrumText string
	inputFile    string
	timeout      time.Duration
	jsonOutput   bool
)

var rootCmd = &cobra.Command{
	Use:   "pepseq",
	Short: "PepSeq - Cyclopeptide sequencing from mass spectra",
	Long: `PepSeq reconstructs cyclic peptides from integer mass spectra.

Sequencers:
- brute_force: exhaustive enumeration with exact cyclic spectrum match
- branch_and_bound: enumeration pruned by linear spectrum consistency
- leaderboard: beam search keeping the N best scoring peptides per round
- convolution: leaderboard (or brute force) on the alphabet suggested by the
  spectral convolution`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(spectrumCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)

	defaults := sequencing.DefaultOptions()
	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&beamWidth, "beam-width", "n", defaults.BeamWidth, "Leaderboard size N (ties with the N-th score are kept)")
	flags.IntVarP(&topM, "top-m", "m", defaults.ConvolutionTopM, "Number of most frequent convolution masses M")
	flags.IntVar(&minMass, "min-mass", defaults.MinResidueMass, "Smallest convolution mass treated as a residue")
	flags.IntVar(&maxMass, "max-mass", defaults.MaxResidueMass, "Largest convolution mass treated as a residue")
	flags.StringVar(&delegate, "delegate", string(defaults.ConvolutionDelegate), "Sequencer run on the convolution alphabet: leaderboard or brute_force")
	flags.IntVar(&maxCandidates, "max-candidates", 0, "Abort when more peptides survive a round (0 = no limit)")
	flags.StringVar(&alphabet, "alphabet", "", "Residues to extend with (default: all 20 standard residues)")

	for _, c := range []*cobra.Command{sequenceCmd, compareCmd} {
		c.Flags().StringVarP(&spectrumText, "spectrum", "s", "", "Spectrum as comma or space separated integers")
		c.Flags().StringVarP(&inputFile, "in", "i", "", "File with one spectrum per line")
		c.Flags().DurationVar(&timeout, "timeout", 0, "Abort after this long (0 = no limit)")
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
		c.MarkFlagsOneRequired("spectrum", "in")
		c.MarkFlagsMutuallyExclusive("spectrum", "in")
	}
}

// buildOptions maps the shared flags onto sequencing options.
func buildOptions() sequencing.Options {
	opts := sequencing.DefaultOptions()
	opts.BeamWidth = beamWidth
	opts.ConvolutionTopM = topM
	opts.MinResidueMass = minMass
	opts.MaxResidueMass = maxMass
	opts.ConvolutionDelegate = sequencing.Delegate(strings.ToLower(delegate))
	opts.MaxCandidates = maxCandidates
	if alphabet != "" {
		opts.Alphabet = []byte(strings.ToUpper(alphabet))
	}
	return opts
}

// loadSpectra returns the spectra named by --spectrum or --in.
func loadSpectra() ([]*text.Entry, error) {
	if spectrumText != "" {
		spec, err := core.ParseSpectrum(spectrumText)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return []*text.Entry{{Label: "spectrum", Line: 1, Spectrum: spec}}, nil
	}

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputFile)
	}
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	entries, err := text.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	return entries, nil
}

// validEntries drops entries whose spectrum fails validation, printing a
// warning for each, and returns the kept entries and the number skipped.
func validEntries(entries []*text.Entry) ([]*text.Entry, int) {
	valid := make([]*text.Entry, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		if err := e.Spectrum.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid spectrum %s (line %d): %v\n", e.Label, e.Line, err)
			skipped++
			continue
		}
		valid = append(valid, e)
	}
	return valid, skipped
}

// batchResult is one entry of the JSON output of a batch run.
type batchResult struct {
	Label  string `json:"label"`
	Line   int    `json:"line"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// commandContext is cancelled on SIGINT/SIGTERM and after --timeout.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// jsonOut receives JSON results.
var jsonOut io.Writer = os.Stdout

func printJSON(v any) error {
	enc := json.NewEncoder(jsonOut)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
