package sequencing

// Extend appends every alphabet symbol to every peptide. The result is
// peptide-major: extensions of peptides[i] occupy
// [i*len(alphabet), (i+1)*len(alphabet)). Symbols of equal mass are not
// collapsed.
func Extend(peptides []string, alphabet []byte) []string {
	extended := make([]string, 0, len(peptides)*len(alphabet))
	for _, p := range peptides {
		for _, aa := range alphabet {
			extended = append(extended, p+string(aa))
		}
	}
	return extended
}
