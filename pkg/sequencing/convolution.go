package sequencing

import (
	"context"
	"encoding/json"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
	"github.com/ChrisMcGann/PepSeq/pkg/filter"
)

// MassFrequency is a convolution mass and how often it occurs.
// It is encoded in JSON as a [mass, count] pair.
type MassFrequency struct {
	Mass  int
	Count int
}

func (m MassFrequency) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{m.Mass, m.Count})
}

func (m *MassFrequency) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	m.Mass, m.Count = pair[0], pair[1]
	return nil
}

// ConvolutionResult is the outcome of convolution sequencing. Matrix and
// Leaderboard are only filled when tracing.
type ConvolutionResult struct {
	Matrix      [][]int         `json:"matrix,omitempty"`
	Frequencies []MassFrequency `json:"most_common_elements"`
	TopMasses   []MassFrequency `json:"amino_acids_in_peptides"`
	Alphabet    []string        `json:"amino_acid_candidates"`
	Leaderboard [][]Candidate   `json:"leaderboard,omitempty"`
	Solution    []Solution      `json:"solution"`
	N           int             `json:"N"`
	M           int             `json:"M"`
}

// ConvolutionMatrix returns the lower triangular difference matrix of the
// spectrum: row i holds spectrum[i]-spectrum[j] for every j < i.
func ConvolutionMatrix(spectrum core.Spectrum) [][]int {
	matrix := make([][]int, len(spectrum))
	for i := range spectrum {
		row := make([]int, i)
		for j := 0; j < i; j++ {
			row[j] = spectrum[i] - spectrum[j]
		}
		matrix[i] = row
	}
	return matrix
}

// Convolution tallies the pairwise differences spectrum[i]-spectrum[j] (i > j)
// that fall inside [minMass, maxMass]. The result is ordered by descending
// count; equal counts keep the order in which the mass was first seen.
func Convolution(spectrum core.Spectrum, minMass, maxMass int) []MassFrequency {
	index := make(map[int]int)
	var tally []filter.Ranked[int]
	for i := range spectrum {
		for j := 0; j < i; j++ {
			diff := spectrum[i] - spectrum[j]
			if diff < minMass || diff > maxMass {
				continue
			}
			k, ok := index[diff]
			if !ok {
				k = len(tally)
				index[diff] = k
				tally = append(tally, filter.Ranked[int]{Item: diff})
			}
			tally[k].Score++
		}
	}

	filter.SortByScore(tally)
	out := make([]MassFrequency, len(tally))
	for i, r := range tally {
		out[i] = MassFrequency{Mass: r.Item, Count: r.Score}
	}
	return out
}

// ConvolutionAlphabet keeps the m most frequent masses (plus masses tied with
// the m-th) and maps them to every residue of that mass. Masses that are not
// residue masses are kept in top but contribute no symbol.
func ConvolutionAlphabet(freqs []MassFrequency, m int) (top []MassFrequency, alphabet []byte) {
	ranked := make([]filter.Ranked[int], len(freqs))
	for i, f := range freqs {
		ranked[i] = filter.Ranked[int]{Item: f.Mass, Score: f.Count}
	}
	kept, _ := filter.TopN(ranked, m)

	top = make([]MassFrequency, len(kept))
	for i, r := range kept {
		top[i] = MassFrequency{Mass: r.Item, Count: r.Score}
		alphabet = append(alphabet, core.SymbolsForMass(r.Item)...)
	}
	return top, alphabet
}

// Convolution restricts the alphabet to residues suggested by the spectral
// convolution and sequences with that alphabet using the configured
// delegate.
func (s *Sequencer) Convolution(ctx context.Context, spectrum core.Spectrum) (*ConvolutionResult, error) {
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}

	freqs := Convolution(spectrum, s.opts.MinResidueMass, s.opts.MaxResidueMass)
	top, alphabet := ConvolutionAlphabet(freqs, s.opts.ConvolutionTopM)

	res := &ConvolutionResult{
		Frequencies: freqs,
		TopMasses:   top,
		Alphabet:    make([]string, len(alphabet)),
		N:           s.opts.BeamWidth,
		M:           s.opts.ConvolutionTopM,
	}
	for i, aa := range alphabet {
		res.Alphabet[i] = string(aa)
	}
	if s.opts.Trace {
		res.Matrix = ConvolutionMatrix(spectrum)
	}

	switch s.opts.ConvolutionDelegate {
	case DelegateBruteForce:
		tr, err := s.exhaustive(ctx, spectrum, alphabet, false)
		if err != nil {
			return nil, err
		}
		res.Solution = make([]Solution, 0, len(tr.Solution))
		for _, p := range tr.Solution {
			sol := Solution{Peptide: p, Mass: spectrum.ParentMass(), NumberOfMatches: len(spectrum)}
			if s.opts.Trace {
				sol.Spectrum = tr.Candidates[p]
			}
			res.Solution = append(res.Solution, sol)
		}
	default:
		lr, err := s.leaderboard(ctx, spectrum, alphabet)
		if err != nil {
			return nil, err
		}
		res.Solution = lr.Solution
		res.Leaderboard = lr.Leaderboard
	}

	return res, nil
}
