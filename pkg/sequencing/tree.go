package sequencing

import "encoding/json"

// Outcome is what happened to a peptide when it was created.
type Outcome int

const (
	Continuing               Outcome = iota // below the target mass, extended next round
	AcceptedSolution                        // target mass and matching cyclic spectrum
	RejectedMassExceeded                    // heavier than the target mass
	RejectedInconsistent                    // linear spectrum not contained in the experimental one
	RejectedSpectrumMismatch                // target mass but cyclic spectrum differs
)

// Terminal reports whether the peptide is a leaf of the search.
func (o Outcome) Terminal() bool {
	return o != Continuing
}

// Candidate reports whether the peptide is a solution.
func (o Outcome) Candidate() bool {
	return o == AcceptedSolution
}

// Reason returns the rejection tag, or "" for non-rejected peptides.
func (o Outcome) Reason() string {
	switch o {
	case RejectedMassExceeded:
		return "mass_exceeded"
	case RejectedInconsistent:
		return "spectrum_inconsistent"
	case RejectedSpectrumMismatch:
		return "spectrum_mismatch"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case AcceptedSolution:
		return "accepted"
	case RejectedMassExceeded, RejectedInconsistent, RejectedSpectrumMismatch:
		return o.Reason()
	default:
		return "unknown"
	}
}

// Node is one peptide in the search tree. Children are indices into
// Tree.Nodes.
type Node struct {
	Peptide  string
	Mass     int
	Outcome  Outcome
	Children []int
}

// Tree is an append-only arena of search nodes. Index 0 is the root, the
// empty peptide.
type Tree struct {
	Nodes []Node
}

// RootKey is the JSON key of the root node.
const RootKey = "Root"

// NewTree creates a tree holding only the root.
func NewTree() *Tree {
	return &Tree{Nodes: []Node{{}}}
}

// Add appends a child of parent and returns its index.
func (t *Tree) Add(parent int, peptide string, mass int, outcome Outcome) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Peptide: peptide, Mass: mass, Outcome: outcome})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Key returns the JSON key of node idx.
func (t *Tree) Key(idx int) string {
	if idx == 0 {
		return RootKey
	}
	return t.Nodes[idx].Peptide
}

type jsonNode struct {
	Node      string   `json:"node"`
	End       bool     `json:"end"`
	Candidate bool     `json:"candidate"`
	Children  []string `json:"children"`
	Mass      int      `json:"mass"`
	Reason    string   `json:"reason,omitempty"`
}

// MarshalJSON renders the tree as a map keyed by peptide ("Root" for the
// root) whose children are listed by key.
func (t *Tree) MarshalJSON() ([]byte, error) {
	out := make(map[string]jsonNode, len(t.Nodes))
	for i, n := range t.Nodes {
		children := make([]string, len(n.Children))
		for k, c := range n.Children {
			children[k] = t.Key(c)
		}
		out[t.Key(i)] = jsonNode{
			Node:      t.Key(i),
			End:       n.Outcome.Terminal(),
			Candidate: n.Outcome.Candidate(),
			Children:  children,
			Mass:      n.Mass,
			Reason:    n.Outcome.Reason(),
		}
	}
	return json.Marshal(out)
}
