package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ranked(pairs ...any) []Ranked[string] {
	var out []Ranked[string]
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Ranked[string]{Item: pairs[i].(string), Score: pairs[i+1].(int)})
	}
	return out
}

func items(rs []Ranked[string]) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Item
	}
	return out
}

func TestTopN(t *testing.T) {
	tests := []struct {
		name       string
		in         []Ranked[string]
		n          int
		wantKept   []string
		wantSorted []string
	}{
		{
			name:       "fewer than n",
			in:         ranked("a", 1, "b", 3),
			n:          5,
			wantKept:   []string{"b", "a"},
			wantSorted: []string{"b", "a"},
		},
		{
			name:       "strict cutoff",
			in:         ranked("a", 1, "b", 3, "c", 2, "d", 0),
			n:          2,
			wantKept:   []string{"b", "c"},
			wantSorted: []string{"b", "c", "a", "d"},
		},
		{
			name:       "ties at cutoff retained",
			in:         ranked("a", 2, "b", 3, "c", 2, "d", 2, "e", 1),
			n:          2,
			wantKept:   []string{"b", "a", "c", "d"},
			wantSorted: []string{"b", "a", "c", "d", "e"},
		},
		{
			name:       "all tied",
			in:         ranked("a", 4, "b", 4, "c", 4),
			n:          1,
			wantKept:   []string{"a", "b", "c"},
			wantSorted: []string{"a", "b", "c"},
		},
		{
			name:       "no limit",
			in:         ranked("a", 1, "b", 2),
			n:          0,
			wantKept:   []string{"b", "a"},
			wantSorted: []string{"b", "a"},
		},
		{
			name:       "empty",
			in:         nil,
			n:          3,
			wantKept:   []string{},
			wantSorted: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, sorted := TopN(tt.in, tt.n)
			if diff := cmp.Diff(tt.wantKept, items(kept)); diff != "" {
				t.Errorf("kept mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantSorted, items(sorted)); diff != "" {
				t.Errorf("sorted mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCutoffLastElementTied(t *testing.T) {
	// Every element after the n-th is tied with it, including the last one.
	sorted := ranked("a", 5, "b", 3, "c", 3, "d", 3)
	if got := Cutoff(sorted, 2); got != 4 {
		t.Errorf("Cutoff() = %d, want 4", got)
	}
}
