package sequencing

import (
	"context"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

// BranchAndBound returns the same solutions as BruteForce but discards every
// peptide whose linear spectrum is not consistent with the experimental
// spectrum. Extending such a peptide only adds fragments, so none of its
// descendants can match.
func (s *Sequencer) BranchAndBound(ctx context.Context, spectrum core.Spectrum) (*TreeResult, error) {
	return s.exhaustive(ctx, spectrum, s.alphabet(), true)
}
