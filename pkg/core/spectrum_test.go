package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpectrumValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spectrum
		wantErr bool
	}{
		{"valid spectrum", Spectrum{0, 57, 71, 128}, false},
		{"duplicates allowed", Spectrum{0, 97, 97, 129, 129, 226}, false},
		{"minimal spectrum", Spectrum{0, 57}, false},
		{"empty", Spectrum{}, true},
		{"single mass", Spectrum{0}, true},
		{"missing zero", Spectrum{57, 71, 128}, true},
		{"unsorted", Spectrum{0, 71, 57, 128}, true},
		{"negative mass", Spectrum{-1, 0, 57}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSpectrum) {
				t.Errorf("Expected ErrInvalidSpectrum, got %v", err)
			}
		})
	}
}

func TestParseSpectrum(t *testing.T) {
	got, err := ParseSpectrum("0, 57 71,128\n")
	if err != nil {
		t.Fatalf("ParseSpectrum() error = %v", err)
	}
	if diff := cmp.Diff(Spectrum{0, 57, 71, 128}, got); diff != "" {
		t.Errorf("ParseSpectrum() mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseSpectrum("0,57,abc")
	if !errors.Is(err, ErrInvalidSpectrum) {
		t.Errorf("Expected ErrInvalidSpectrum for non-numeric entry, got %v", err)
	}
}

func TestSpectrumString(t *testing.T) {
	spec := Spectrum{0, 57, 71, 128}
	if got := spec.String(); got != "0,57,71,128" {
		t.Errorf("String() = %s", got)
	}
	if spec.ParentMass() != 128 {
		t.Errorf("ParentMass() = %d, want 128", spec.ParentMass())
	}
}

func TestLinearSpectrum(t *testing.T) {
	tests := []struct {
		peptide string
		want    []int
	}{
		{"", []int{0}},
		{"G", []int{0, 57}},
		{"GA", []int{0, 57, 71, 128}},
		{"NQE", []int{0, 114, 128, 129, 242, 257, 371}},
	}

	for _, tt := range tests {
		t.Run(tt.peptide, func(t *testing.T) {
			got, err := LinearSpectrum(tt.peptide)
			if err != nil {
				t.Fatalf("LinearSpectrum() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LinearSpectrum() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCyclicSpectrum(t *testing.T) {
	tests := []struct {
		peptide string
		want    []int
	}{
		{"G", []int{0, 57}},
		{"GA", []int{0, 57, 71, 128}},
		{"NQE", []int{0, 114, 128, 129, 242, 243, 257, 371}},
		{"PEPE", []int{0, 97, 97, 129, 129, 226, 226, 226, 226, 323, 323, 355, 355, 452}},
	}

	for _, tt := range tests {
		t.Run(tt.peptide, func(t *testing.T) {
			got, err := CyclicSpectrum(tt.peptide)
			if err != nil {
				t.Fatalf("CyclicSpectrum() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CyclicSpectrum() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpectrumShapeProperties(t *testing.T) {
	peptides := []string{"G", "GA", "NQE", "PEPE", "WYRFHMEQKDNLICTVPSAG", "KKKK"}

	for _, p := range peptides {
		n := len(p)
		linear, err := LinearSpectrum(p)
		if err != nil {
			t.Fatalf("LinearSpectrum(%s) error = %v", p, err)
		}
		if len(linear) != 1+n*(n+1)/2 {
			t.Errorf("len(LinearSpectrum(%s)) = %d, want %d", p, len(linear), 1+n*(n+1)/2)
		}

		cyclic, err := CyclicSpectrum(p)
		if err != nil {
			t.Fatalf("CyclicSpectrum(%s) error = %v", p, err)
		}
		mass, _ := PeptideMass(p)
		if cyclic[0] != 0 {
			t.Errorf("min(CyclicSpectrum(%s)) = %d, want 0", p, cyclic[0])
		}
		if cyclic[len(cyclic)-1] != mass {
			t.Errorf("max(CyclicSpectrum(%s)) = %d, want %d", p, cyclic[len(cyclic)-1], mass)
		}
		if !Spectrum(cyclic).IsSorted() {
			t.Errorf("CyclicSpectrum(%s) is not sorted", p)
		}
		if n > 1 && len(cyclic) != n*(n-1)+2 {
			t.Errorf("len(CyclicSpectrum(%s)) = %d, want %d", p, len(cyclic), n*(n-1)+2)
		}
	}
}

func TestCyclicSpectrumItems(t *testing.T) {
	got, err := CyclicSpectrumItems("NQE")
	if err != nil {
		t.Fatalf("CyclicSpectrumItems() error = %v", err)
	}

	want := []SpectrumItem{
		{0, ""},
		{114, "N"},
		{128, "Q"},
		{129, "E"},
		{242, "NQ"},
		{243, "EN"},
		{257, "QE"},
		{371, "NQE"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CyclicSpectrumItems() mismatch (-want +got):\n%s", diff)
	}

	masses, _ := CyclicSpectrum("NQE")
	for i, item := range got {
		if item.Mass != masses[i] {
			t.Errorf("item %d mass %d does not match CyclicSpectrum %d", i, item.Mass, masses[i])
		}
	}
}

func TestLinearSpectrumItems(t *testing.T) {
	got, err := LinearSpectrumItems("GA")
	if err != nil {
		t.Fatalf("LinearSpectrumItems() error = %v", err)
	}
	want := []SpectrumItem{{0, ""}, {57, "G"}, {71, "A"}, {128, "GA"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LinearSpectrumItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestSpectrumUnknownResidue(t *testing.T) {
	if _, err := LinearSpectrum("GZ"); !errors.Is(err, ErrUnknownResidue) {
		t.Errorf("LinearSpectrum: expected ErrUnknownResidue, got %v", err)
	}
	if _, err := CyclicSpectrumItems("Z"); !errors.Is(err, ErrUnknownResidue) {
		t.Errorf("CyclicSpectrumItems: expected ErrUnknownResidue, got %v", err)
	}
}
