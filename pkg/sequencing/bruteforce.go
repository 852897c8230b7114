package sequencing

import (
	"context"
	"fmt"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

// TreeResult is the outcome of brute-force and branch-and-bound sequencing.
// Tree and Candidates are only filled when tracing.
type TreeResult struct {
	Tree       *Tree                          `json:"tree,omitempty"`
	Candidates map[string][]core.SpectrumItem `json:"candidates,omitempty"`
	Solution   []string                       `json:"solution"`
}

// searchState is one live peptide between rounds.
type searchState struct {
	peptide string
	mass    int
	node    int
}

// BruteForce enumerates every peptide up to the parent mass and returns all
// whose cyclic spectrum equals the experimental spectrum exactly.
func (s *Sequencer) BruteForce(ctx context.Context, spectrum core.Spectrum) (*TreeResult, error) {
	return s.exhaustive(ctx, spectrum, s.alphabet(), false)
}

// exhaustive runs the round-based enumeration shared by brute force and
// branch-and-bound. With prune set, peptides whose linear spectrum is not
// consistent with the experimental spectrum are dropped.
func (s *Sequencer) exhaustive(ctx context.Context, spectrum core.Spectrum, alphabet []byte, prune bool) (*TreeResult, error) {
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	masses, err := residueMasses(alphabet)
	if err != nil {
		return nil, err
	}
	target := spectrum.ParentMass()

	res := &TreeResult{Solution: []string{}}
	var tree *Tree
	if s.opts.Trace {
		tree = NewTree()
		res.Tree = tree
		res.Candidates = make(map[string][]core.SpectrumItem)
	}

	frontier := []searchState{{}}
	for len(frontier) > 0 {
		if err := interrupted(ctx); err != nil {
			return nil, err
		}

		peptides := make([]string, len(frontier))
		for i, st := range frontier {
			peptides[i] = st.peptide
		}

		var next []searchState
		for k, peptide := range Extend(peptides, alphabet) {
			if k%checkEvery == checkEvery-1 {
				if err := interrupted(ctx); err != nil {
					return nil, err
				}
			}
			parent := frontier[k/len(alphabet)]
			mass := parent.mass + masses[k%len(alphabet)]

			outcome := Continuing
			switch {
			case mass == target:
				cyclic, err := core.CyclicSpectrum(peptide)
				if err != nil {
					return nil, err
				}
				outcome = RejectedSpectrumMismatch
				if spectrum.Equal(cyclic) {
					outcome = AcceptedSolution
					res.Solution = append(res.Solution, peptide)
				}
				if tree != nil {
					items, err := core.CyclicSpectrumItems(peptide)
					if err != nil {
						return nil, err
					}
					res.Candidates[peptide] = items
				}
			case mass > target:
				outcome = RejectedMassExceeded
			case prune:
				linear, err := core.LinearSpectrum(peptide)
				if err != nil {
					return nil, err
				}
				if !core.IsConsistent(linear, spectrum) {
					outcome = RejectedInconsistent
				}
			}

			node := 0
			if tree != nil {
				node = tree.Add(parent.node, peptide, mass, outcome)
			}
			if outcome == Continuing {
				next = append(next, searchState{peptide: peptide, mass: mass, node: node})
			}
		}

		if err := checkCandidates(s.opts.MaxCandidates, len(next)); err != nil {
			return nil, fmt.Errorf("round at %d residues: %w", len(frontier[0].peptide)+1, err)
		}
		frontier = next
	}

	return res, nil
}
