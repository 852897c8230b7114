// Package text provides a streaming reader for plain-text integer spectra
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

// Entry is one spectrum read from the input.
type Entry struct {
	Label    string // Text before the first ':' on the line, or "spectrum <line>"
	Line     int
	Spectrum core.Spectrum
}

// Reader reads one spectrum per line. Blank lines and lines starting with
// '#' are skipped. A line may carry a label: "NQE: 0 114 128 ...".
// Spectra are parsed but not validated.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
	current *Entry
	err     error
}

// NewReader creates a new text reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{scanner: scanner}
}

// Next advances to the next spectrum. Returns false when no more spectra or error.
func (r *Reader) Next() bool {
	r.current = nil
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := r.parseLine(line)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		r.current = entry
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
	}
	return false
}

// Entry returns the current entry
func (r *Reader) Entry() *Entry {
	return r.current
}

// Spectrum returns the spectrum of the current entry
func (r *Reader) Spectrum() core.Spectrum {
	if r.current == nil {
		return nil
	}
	return r.current.Spectrum
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parseLine(line string) (*Entry, error) {
	entry := &Entry{Line: r.lineNum, Label: fmt.Sprintf("spectrum %d", r.lineNum)}

	if label, rest, ok := strings.Cut(line, ":"); ok {
		entry.Label = strings.TrimSpace(label)
		line = rest
	}

	spec, err := core.ParseSpectrum(line)
	if err != nil {
		return nil, err
	}
	entry.Spectrum = spec
	return entry, nil
}

// ReadAll reads every remaining spectrum.
func ReadAll(r io.Reader) ([]*Entry, error) {
	reader := NewReader(r)
	var entries []*Entry
	for reader.Next() {
		entries = append(entries, reader.Entry())
	}
	return entries, reader.Err()
}
