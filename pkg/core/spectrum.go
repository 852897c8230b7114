package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSpectrum classifies every spectrum validation failure.
var ErrInvalidSpectrum = errors.New("invalid spectrum")

// Spectrum is an experimental integer mass spectrum: ascending, starting at 0
// and ending with the mass of the whole peptide. Duplicates are allowed.
type Spectrum []int

// SpectrumItem is one theoretical fragment mass together with the
// sub-peptide that produced it.
type SpectrumItem struct {
	Mass       int    `json:"mass"`
	Subpeptide string `json:"subpeptide"`
}

// ValidationError represents an error found during spectrum validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is reports ErrInvalidSpectrum so callers can classify with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSpectrum
}

// Validate checks that a spectrum can be sequenced.
func (s Spectrum) Validate() error {
	var errs []string

	if len(s) < 2 {
		errs = append(errs, fmt.Sprintf("at least 2 masses are required, got %d", len(s)))
	}
	if len(s) > 0 && s[0] != 0 {
		errs = append(errs, fmt.Sprintf("first mass must be 0, got %d", s[0]))
	}
	for i, m := range s {
		if m < 0 {
			errs = append(errs, fmt.Sprintf("mass %d is negative", i))
		}
	}
	if !s.IsSorted() {
		errs = append(errs, "masses must be in ascending order")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Spectrum",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// IsSorted checks if masses are non-decreasing.
func (s Spectrum) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// ParentMass returns the last (largest) mass, the mass of the whole peptide.
func (s Spectrum) ParentMass() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Equal reports whether two spectra hold the same masses in the same order.
func (s Spectrum) Equal(other []int) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the spectrum the way it is typed into the front-end form.
func (s Spectrum) String() string {
	parts := make([]string, len(s))
	for i, m := range s {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

// ParseSpectrum parses comma and/or whitespace separated integer masses.
// The result is not validated.
func ParseSpectrum(text string) (Spectrum, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	spec := make(Spectrum, 0, len(fields))
	for i, f := range fields {
		m, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ValidationError{
				Field:   "Spectrum",
				Message: fmt.Sprintf("entry %d (%q) is not an integer", i, f),
			}
		}
		spec = append(spec, m)
	}
	return spec, nil
}

// prefixMasses returns prefix[0]=0, prefix[i+1]=prefix[i]+mass(peptide[i]).
func prefixMasses(peptide string) ([]int, error) {
	prefix := make([]int, len(peptide)+1)
	for i := 0; i < len(peptide); i++ {
		m, err := ResidueMass(peptide[i])
		if err != nil {
			return nil, fmt.Errorf("peptide %q position %d: %w", peptide, i, err)
		}
		prefix[i+1] = prefix[i] + m
	}
	return prefix, nil
}

// LinearSpectrum returns the sorted masses of every contiguous fragment of the
// peptide, including the empty fragment and the whole peptide.
func LinearSpectrum(peptide string) ([]int, error) {
	prefix, err := prefixMasses(peptide)
	if err != nil {
		return nil, err
	}
	n := len(peptide)

	spectrum := make([]int, 1, 1+n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			spectrum = append(spectrum, prefix[j]-prefix[i])
		}
	}
	sort.Ints(spectrum)
	return spectrum, nil
}

// CyclicSpectrum returns the linear fragments plus the wrap-around fragments
// of the peptide read as a cycle, sorted ascending.
func CyclicSpectrum(peptide string) ([]int, error) {
	prefix, err := prefixMasses(peptide)
	if err != nil {
		return nil, err
	}
	n := len(peptide)
	total := prefix[n]

	spectrum := make([]int, 1, 1+n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			fragment := prefix[j] - prefix[i]
			spectrum = append(spectrum, fragment)
			if i > 0 && j < n {
				spectrum = append(spectrum, total-fragment)
			}
		}
	}
	sort.Ints(spectrum)
	return spectrum, nil
}

// LinearSpectrumItems is LinearSpectrum with the sub-peptide of each mass.
func LinearSpectrumItems(peptide string) ([]SpectrumItem, error) {
	prefix, err := prefixMasses(peptide)
	if err != nil {
		return nil, err
	}
	n := len(peptide)

	items := []SpectrumItem{{Mass: 0, Subpeptide: ""}}
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			items = append(items, SpectrumItem{Mass: prefix[j] - prefix[i], Subpeptide: peptide[i:j]})
		}
	}
	sortItems(items)
	return items, nil
}

// CyclicSpectrumItems is CyclicSpectrum with the sub-peptide of each mass.
// Wrap-around fragments are reported as peptide[j:] + peptide[:i].
func CyclicSpectrumItems(peptide string) ([]SpectrumItem, error) {
	prefix, err := prefixMasses(peptide)
	if err != nil {
		return nil, err
	}
	n := len(peptide)
	total := prefix[n]

	items := []SpectrumItem{{Mass: 0, Subpeptide: ""}}
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			fragment := prefix[j] - prefix[i]
			items = append(items, SpectrumItem{Mass: fragment, Subpeptide: peptide[i:j]})
			if i > 0 && j < n {
				items = append(items, SpectrumItem{Mass: total - fragment, Subpeptide: peptide[j:] + peptide[:i]})
			}
		}
	}
	sortItems(items)
	return items, nil
}

func sortItems(items []SpectrumItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Mass < items[j].Mass
	})
}
