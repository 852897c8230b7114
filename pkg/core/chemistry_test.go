package core

import (
	"errors"
	"math"
	"testing"
)

func TestMassTable(t *testing.T) {
	want := map[byte]int{
		'G': 57, 'A': 71, 'S': 87, 'P': 97, 'V': 99, 'T': 101, 'C': 103,
		'I': 113, 'L': 113, 'N': 114, 'D': 115, 'K': 128, 'Q': 128,
		'E': 129, 'M': 131, 'H': 137, 'F': 147, 'R': 156, 'Y': 163, 'W': 186,
	}

	if len(MassTable) != len(want) {
		t.Fatalf("Expected %d residues, got %d", len(want), len(MassTable))
	}
	for aa, mass := range want {
		if got := MassTable[aa]; got != mass {
			t.Errorf("MassTable[%c] = %d, want %d", aa, got, mass)
		}
	}
}

func TestStandardAlphabet(t *testing.T) {
	got := string(StandardAlphabet)
	want := "GASPVTCILNDKQEMHFRYW"
	if got != want {
		t.Errorf("StandardAlphabet = %s, want %s", got, want)
	}
}

func TestSymbolsForMass(t *testing.T) {
	tests := []struct {
		mass int
		want string
	}{
		{57, "G"},
		{113, "IL"},
		{128, "KQ"},
		{186, "W"},
		{58, ""},
	}

	for _, tt := range tests {
		got := string(SymbolsForMass(tt.mass))
		if got != tt.want {
			t.Errorf("SymbolsForMass(%d) = %q, want %q", tt.mass, got, tt.want)
		}
	}

	// Returned slice must not alias the table.
	syms := SymbolsForMass(128)
	syms[0] = 'X'
	if string(SymbolsForMass(128)) != "KQ" {
		t.Error("SymbolsForMass returned a shared slice")
	}
}

func TestPeptideMass(t *testing.T) {
	tests := []struct {
		name    string
		peptide string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"dipeptide", "GA", 128, false},
		{"tripeptide", "NQE", 371, false},
		{"cyclopeptide", "PEPE", 452, false},
		{"unknown residue", "GXA", 0, true},
		{"lowercase", "ga", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeptideMass(tt.peptide)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PeptideMass() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownResidue) {
					t.Errorf("Expected ErrUnknownResidue, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("PeptideMass() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonoisotopicMass(t *testing.T) {
	tests := []struct {
		name      string
		peptide   string
		wantMass  float64
		tolerance float64
	}{
		{"glycine residue", "G", 57.02146, 0.0001},
		{"alanine tripeptide", "AAA", 213.111, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonoisotopicMass(tt.peptide)
			if err != nil {
				t.Fatalf("MonoisotopicMass() error = %v", err)
			}
			if math.Abs(got-tt.wantMass) > tt.tolerance {
				t.Errorf("MonoisotopicMass() = %.5f, want %.5f (within %.4f)", got, tt.wantMass, tt.tolerance)
			}
		})
	}

	if _, err := MonoisotopicMass("B"); !errors.Is(err, ErrUnknownResidue) {
		t.Errorf("Expected ErrUnknownResidue, got %v", err)
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"round to 2 decimals", 3.14159, 2, 3.14},
		{"round to 4 decimals", 3.14159, 4, 3.1416},
		{"round to 0 decimals", 3.6, 0, 4.0},
		{"round negative", -3.14159, 2, -3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.val, tt.precision)
			if got != tt.want {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}
