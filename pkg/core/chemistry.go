// Package core provides the residue mass table, theoretical spectrum generation
// and spectrum scoring used by the sequencing engine.
package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassN = 14.0030740052
	MassO = 15.9949146221
	MassS = 31.9720706900
)

// Nominal (integer) atomic masses used for the integer residue table
const (
	NominalH = 1
	NominalC = 12
	NominalN = 14
	NominalO = 16
	NominalS = 32
)

// ErrUnknownResidue is returned when a peptide contains a symbol that is not
// one of the 20 standard amino acids.
var ErrUnknownResidue = errors.New("unknown residue")

// AminoAcidComposition stores elemental composition of a residue
// (amino acid minus water).
type AminoAcidComposition struct {
	C, H, N, O, S int
}

// Nominal returns the integer mass of the composition.
func (c AminoAcidComposition) Nominal() int {
	return c.C*NominalC + c.H*NominalH + c.N*NominalN + c.O*NominalO + c.S*NominalS
}

// Monoisotopic returns the exact mass of the composition.
func (c AminoAcidComposition) Monoisotopic() float64 {
	return float64(c.C)*MassC +
		float64(c.H)*MassH +
		float64(c.N)*MassN +
		float64(c.O)*MassO +
		float64(c.S)*MassS
}

// AminoAcidCompositions maps amino acid one-letter codes to elemental composition
var AminoAcidCompositions = map[byte]AminoAcidComposition{
	'A': {C: 3, H: 5, N: 1, O: 1, S: 0},
	'R': {C: 6, H: 12, N: 4, O: 1, S: 0},
	'N': {C: 4, H: 6, N: 2, O: 2, S: 0},
	'D': {C: 4, H: 5, N: 1, O: 3, S: 0},
	'C': {C: 3, H: 5, N: 1, O: 1, S: 1},
	'E': {C: 5, H: 7, N: 1, O: 3, S: 0},
	'Q': {C: 5, H: 8, N: 2, O: 2, S: 0},
	'G': {C: 2, H: 3, N: 1, O: 1, S: 0},
	'H': {C: 6, H: 7, N: 3, O: 1, S: 0},
	'I': {C: 6, H: 11, N: 1, O: 1, S: 0},
	'L': {C: 6, H: 11, N: 1, O: 1, S: 0},
	'K': {C: 6, H: 12, N: 2, O: 1, S: 0},
	'M': {C: 5, H: 9, N: 1, O: 1, S: 1},
	'F': {C: 9, H: 9, N: 1, O: 1, S: 0},
	'P': {C: 5, H: 7, N: 1, O: 1, S: 0},
	'S': {C: 3, H: 5, N: 1, O: 2, S: 0},
	'T': {C: 4, H: 7, N: 1, O: 2, S: 0},
	'W': {C: 11, H: 10, N: 2, O: 1, S: 0},
	'Y': {C: 9, H: 9, N: 1, O: 2, S: 0},
	'V': {C: 5, H: 9, N: 1, O: 1, S: 0},
}

// MassTable maps each standard residue to its integer mass in Da.
// It is built once at init and must not be modified.
var MassTable map[byte]int

// StandardAlphabet lists the 20 residues in ascending mass order.
// Extension order, and therefore solution order, follows this ordering.
var StandardAlphabet []byte

// symbolsByMass is the inverse of MassTable, each list in alphabet order.
var symbolsByMass map[int][]byte

func init() {
	MassTable = make(map[byte]int, len(AminoAcidCompositions))
	for aa, comp := range AminoAcidCompositions {
		MassTable[aa] = comp.Nominal()
	}

	for aa := range MassTable {
		StandardAlphabet = append(StandardAlphabet, aa)
	}
	sort.Slice(StandardAlphabet, func(i, j int) bool {
		mi, mj := MassTable[StandardAlphabet[i]], MassTable[StandardAlphabet[j]]
		if mi != mj {
			return mi < mj
		}
		return StandardAlphabet[i] < StandardAlphabet[j]
	})

	symbolsByMass = make(map[int][]byte)
	for _, aa := range StandardAlphabet {
		m := MassTable[aa]
		symbolsByMass[m] = append(symbolsByMass[m], aa)
	}
}

// ResidueMass returns the integer mass of a single residue.
func ResidueMass(aa byte) (int, error) {
	m, ok := MassTable[aa]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResidue, aa)
	}
	return m, nil
}

// SymbolsForMass returns every residue whose integer mass equals mass.
// The returned slice is a copy.
func SymbolsForMass(mass int) []byte {
	syms := symbolsByMass[mass]
	if len(syms) == 0 {
		return nil
	}
	out := make([]byte, len(syms))
	copy(out, syms)
	return out
}

// PeptideMass computes the integer mass of a peptide as the sum of its residues.
func PeptideMass(peptide string) (int, error) {
	total := 0
	for i := 0; i < len(peptide); i++ {
		m, err := ResidueMass(peptide[i])
		if err != nil {
			return 0, fmt.Errorf("peptide %q position %d: %w", peptide, i, err)
		}
		total += m
	}
	return total, nil
}

// MonoisotopicMass computes the exact residue mass of a peptide (no terminal water).
func MonoisotopicMass(peptide string) (float64, error) {
	mass := 0.0
	for i := 0; i < len(peptide); i++ {
		comp, ok := AminoAcidCompositions[peptide[i]]
		if !ok {
			return 0, fmt.Errorf("peptide %q position %d: %w: %q", peptide, i, ErrUnknownResidue, peptide[i])
		}
		mass += comp.Monoisotopic()
	}
	return mass, nil
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
