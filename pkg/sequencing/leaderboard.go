package sequencing

import (
	"context"
	"fmt"
	"sort"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
	"github.com/ChrisMcGann/PepSeq/pkg/filter"
)

// Candidate is one extended peptide of a leaderboard round.
type Candidate struct {
	Peptide         string              `json:"peptide"`
	NumberOfMatches int                 `json:"number_of_matches"`
	Spectrum        []core.SpectrumItem `json:"spectrum"`
	Mass            int                 `json:"mass"`
	Qualified       bool                `json:"qualified"`
	Reason          string              `json:"reason,omitempty"`
	Candidate       bool                `json:"candidate,omitempty"`
}

// Solution is a peptide of the target mass with its cyclic score.
// Spectrum is only filled when tracing.
type Solution struct {
	Peptide         string              `json:"peptide"`
	Mass            int                 `json:"mass"`
	Spectrum        []core.SpectrumItem `json:"spectrum,omitempty"`
	NumberOfMatches int                 `json:"number_of_matches"`
}

// LeaderboardResult is the outcome of leaderboard sequencing. Leaderboard
// holds one slice per round and is only filled when tracing.
type LeaderboardResult struct {
	Leaderboard [][]Candidate `json:"leaderboard,omitempty"`
	Solution    []Solution    `json:"solution"`
	N           int           `json:"N"`
}

// Leaderboard runs a beam search: each round every survivor is extended,
// peptides of the target mass are scored against the experimental spectrum
// with their cyclic spectrum, lighter peptides are scored with their linear
// spectrum and trimmed to the best BeamWidth (keeping ties). The result holds
// every finalist sharing the best cyclic score seen in any round.
func (s *Sequencer) Leaderboard(ctx context.Context, spectrum core.Spectrum) (*LeaderboardResult, error) {
	return s.leaderboard(ctx, spectrum, s.alphabet())
}

type beamState struct {
	peptide string
	mass    int
}

func (s *Sequencer) leaderboard(ctx context.Context, spectrum core.Spectrum, alphabet []byte) (*LeaderboardResult, error) {
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	masses, err := residueMasses(alphabet)
	if err != nil {
		return nil, err
	}
	target := spectrum.ParentMass()
	trace := s.opts.Trace

	res := &LeaderboardResult{Solution: []Solution{}, N: s.opts.BeamWidth}
	best := -1

	frontier := []beamState{{}}
	for rounds := 1; len(frontier) > 0; rounds++ {
		if err := interrupted(ctx); err != nil {
			return nil, err
		}

		peptides := make([]string, len(frontier))
		for i, st := range frontier {
			peptides[i] = st.peptide
		}

		var round []Candidate
		var pool []filter.Ranked[beamState]
		for k, peptide := range Extend(peptides, alphabet) {
			if k%checkEvery == checkEvery-1 {
				if err := interrupted(ctx); err != nil {
					return nil, err
				}
			}
			mass := frontier[k/len(alphabet)].mass + masses[k%len(alphabet)]

			switch {
			case mass == target:
				cyclic, err := core.CyclicSpectrum(peptide)
				if err != nil {
					return nil, err
				}
				score := core.Score(cyclic, spectrum)
				sol := Solution{Peptide: peptide, Mass: mass, NumberOfMatches: score}
				if trace {
					if sol.Spectrum, err = core.CyclicSpectrumItems(peptide); err != nil {
						return nil, err
					}
					round = append(round, Candidate{
						Peptide:         peptide,
						NumberOfMatches: score,
						Spectrum:        sol.Spectrum,
						Mass:            mass,
						Candidate:       true,
					})
				}
				switch {
				case score > best:
					best = score
					res.Solution = []Solution{sol}
				case score == best:
					res.Solution = append(res.Solution, sol)
				}

			case mass < target:
				score, err := core.LinearScore(peptide, spectrum)
				if err != nil {
					return nil, err
				}
				pool = append(pool, filter.Ranked[beamState]{
					Item:  beamState{peptide: peptide, mass: mass},
					Score: score,
				})

			case trace:
				score, err := core.LinearScore(peptide, spectrum)
				if err != nil {
					return nil, err
				}
				items, err := core.LinearSpectrumItems(peptide)
				if err != nil {
					return nil, err
				}
				round = append(round, Candidate{
					Peptide:         peptide,
					NumberOfMatches: score,
					Spectrum:        items,
					Mass:            mass,
					Reason:          RejectedMassExceeded.Reason(),
				})
			}
		}

		kept, sorted := filter.TopN(pool, s.opts.BeamWidth)
		if err := checkCandidates(s.opts.MaxCandidates, len(kept)); err != nil {
			return nil, fmt.Errorf("round %d: %w", rounds, err)
		}

		if trace {
			for i, r := range sorted {
				items, err := core.LinearSpectrumItems(r.Item.peptide)
				if err != nil {
					return nil, err
				}
				round = append(round, Candidate{
					Peptide:         r.Item.peptide,
					NumberOfMatches: r.Score,
					Spectrum:        items,
					Mass:            r.Item.mass,
					Qualified:       i < len(kept),
				})
			}
			sort.SliceStable(round, func(i, j int) bool {
				return round[i].NumberOfMatches > round[j].NumberOfMatches
			})
			if round == nil {
				round = []Candidate{}
			}
			res.Leaderboard = append(res.Leaderboard, round)
		}

		frontier = make([]beamState, len(kept))
		for i, r := range kept {
			frontier[i] = r.Item
		}
	}

	return res, nil
}
