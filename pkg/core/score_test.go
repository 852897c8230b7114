package core

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		theoretical  []int
		experimental []int
		want         int
	}{
		{"identical", []int{0, 57, 71, 128}, []int{0, 57, 71, 128}, 4},
		{"disjoint", []int{1, 2, 3}, []int{4, 5, 6}, 0},
		{"empty theoretical", nil, []int{0, 57}, 0},
		{"partial", []int{0, 57, 71, 128}, []int{0, 71, 99, 128}, 3},
		// A repeated theoretical mass is matched only once per experimental copy.
		{"duplicate theoretical", []int{0, 57, 57, 128}, []int{0, 57, 128}, 3},
		{"duplicate both", []int{0, 57, 57}, []int{0, 57, 57, 57}, 3},
		{"pepe vs experimental", []int{0, 97, 97, 129, 129, 226, 226, 226, 226, 323, 323, 355, 355, 452},
			[]int{0, 97, 129, 194, 226, 323, 355, 452}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.theoretical, tt.experimental); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreSelfMatch(t *testing.T) {
	for _, p := range []string{"G", "NQE", "PEPE", "KQKQ", "LIIL"} {
		spec, err := CyclicSpectrum(p)
		if err != nil {
			t.Fatalf("CyclicSpectrum(%s) error = %v", p, err)
		}
		if got := Score(spec, spec); got != len(spec) {
			t.Errorf("Score(%s, itself) = %d, want %d", p, got, len(spec))
		}
	}
}

func TestIsConsistent(t *testing.T) {
	tests := []struct {
		name         string
		theoretical  []int
		experimental []int
		want         bool
	}{
		{"subset", []int{0, 71}, []int{0, 57, 71, 128}, true},
		{"equal", []int{0, 57, 71, 128}, []int{0, 57, 71, 128}, true},
		{"missing mass", []int{0, 57, 99}, []int{0, 57, 71, 128}, false},
		{"duplicate not available twice", []int{0, 57, 57}, []int{0, 57, 71}, false},
		{"beyond last experimental", []int{0, 200}, []int{0, 57}, false},
		{"empty theoretical", nil, []int{0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConsistent(tt.theoretical, tt.experimental); got != tt.want {
				t.Errorf("IsConsistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearConsistentWithOwnCyclic(t *testing.T) {
	for _, p := range []string{"G", "GA", "NQE", "PEPE", "WYRFHM", "KQKQK"} {
		linear, _ := LinearSpectrum(p)
		cyclic, _ := CyclicSpectrum(p)
		if !IsConsistent(linear, cyclic) {
			t.Errorf("LinearSpectrum(%s) not consistent with its CyclicSpectrum", p)
		}
	}
}

func TestLinearAndCyclicScore(t *testing.T) {
	experimental := []int{0, 114, 128, 129, 242, 243, 257, 371}

	linear, err := LinearScore("NQE", experimental)
	if err != nil {
		t.Fatalf("LinearScore() error = %v", err)
	}
	if linear != 7 {
		t.Errorf("LinearScore() = %d, want 7", linear)
	}

	cyclic, err := CyclicScore("NQE", experimental)
	if err != nil {
		t.Fatalf("CyclicScore() error = %v", err)
	}
	if cyclic != 8 {
		t.Errorf("CyclicScore() = %d, want 8", cyclic)
	}
}
