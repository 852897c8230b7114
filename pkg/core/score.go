package core

// Score counts matches between two ascending spectra in lock-step: equal
// values advance both sides and count once, otherwise the side holding the
// smaller value advances. Each mass on either side is consumed at most once.
func Score(theoretical, experimental []int) int {
	total := 0
	i, j := 0, 0
	for i < len(theoretical) && j < len(experimental) {
		switch {
		case theoretical[i] == experimental[j]:
			total++
			i++
			j++
		case theoretical[i] > experimental[j]:
			j++
		default:
			i++
		}
	}
	return total
}

// IsConsistent reports whether every mass of theoretical can be matched, in
// ascending order, by a distinct mass of experimental. Extra experimental
// masses are ignored.
func IsConsistent(theoretical, experimental []int) bool {
	i, j := 0, 0
	for i < len(theoretical) && j < len(experimental) {
		switch {
		case theoretical[i] == experimental[j]:
			i++
			j++
		case theoretical[i] > experimental[j]:
			j++
		default:
			return false
		}
	}
	return i == len(theoretical)
}

// LinearScore scores the linear spectrum of peptide against experimental.
func LinearScore(peptide string, experimental []int) (int, error) {
	spectrum, err := LinearSpectrum(peptide)
	if err != nil {
		return 0, err
	}
	return Score(spectrum, experimental), nil
}

// CyclicScore scores the cyclic spectrum of peptide against experimental.
func CyclicScore(peptide string, experimental []int) (int, error) {
	spectrum, err := CyclicSpectrum(peptide)
	if err != nil {
		return 0, err
	}
	return Score(spectrum, experimental), nil
}
