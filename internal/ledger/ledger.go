// Package ledger records the clues a player has collected.
//
// The Ledger is an ordered set implemented as a binary search tree keyed by clue text. Nodes are owned by an arena
// inside the Ledger and refer to their children by index. Clues compare byte-wise, so enumeration is alphabetical for
// the plain texts used in cases.
package ledger

import (
	"github.com/zyedidia/generic/stack"
	"iter"
	"strings"
)

type nodeID int32

const nilNode nodeID = -1

type node struct {
	clue        string
	left, right nodeID
}

// Outcome tells what an insert did.
type Outcome int

const (
	// Ignored means the clue text was empty and nothing was stored.
	Ignored Outcome = iota
	// Collected means the clue was new and is now in the ledger.
	Collected
	// Duplicate means an equal clue was already in the ledger.
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Collected:
		return "collected"
	case Duplicate:
		return "duplicate"
	}
	return "unknown"
}

// Lookup resolves a clue to the suspect it implicates.
type Lookup interface {
	Lookup(clue string) (suspect string, ok bool)
}

type Ledger struct {
	nodes []node
	root  nodeID
}

func New() *Ledger {
	return &Ledger{root: nilNode}
}

// Insert adds clue to the ledger. Equal clues are rejected so every clue is stored at most once.
func (l *Ledger) Insert(clue string) Outcome {
	if clue == "" {
		return Ignored
	}
	var outcome Outcome
	l.root, outcome = l.insert(l.root, clue)
	return outcome
}

// insert returns the possibly new root of the subtree at n.
func (l *Ledger) insert(n nodeID, clue string) (nodeID, Outcome) {
	if n == nilNode {
		l.nodes = append(l.nodes, node{clue: clue, left: nilNode, right: nilNode})
		return nodeID(len(l.nodes) - 1), Collected
	}
	var outcome Outcome
	switch cmp := strings.Compare(clue, l.nodes[n].clue); {
	case cmp == 0:
		return n, Duplicate
	case cmp < 0:
		var left nodeID
		left, outcome = l.insert(l.nodes[n].left, clue)
		l.nodes[n].left = left
	default:
		var right nodeID
		right, outcome = l.insert(l.nodes[n].right, clue)
		l.nodes[n].right = right
	}
	return n, outcome
}

// Contains reports whether clue has been collected.
func (l *Ledger) Contains(clue string) bool {
	n := l.root
	for n != nilNode {
		switch cmp := strings.Compare(clue, l.nodes[n].clue); {
		case cmp == 0:
			return true
		case cmp < 0:
			n = l.nodes[n].left
		default:
			n = l.nodes[n].right
		}
	}
	return false
}

// Len returns the number of collected clues.
func (l *Ledger) Len() int {
	return len(l.nodes)
}

func (l *Ledger) Empty() bool {
	return l.root == nilNode
}

// All yields the clues in ascending order. The sequence is lazy and can be ranged over any number of times.
func (l *Ledger) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		pending := stack.New[nodeID]()
		n := l.root
		for n != nilNode || pending.Size() > 0 {
			for n != nilNode {
				pending.Push(n)
				n = l.nodes[n].left
			}
			n = pending.Pop()
			if !yield(l.nodes[n].clue) {
				return
			}
			n = l.nodes[n].right
		}
	}
}

// CountMatching counts the collected clues that index resolves to exactly suspect.
func (l *Ledger) CountMatching(index Lookup, suspect string) int {
	return l.countMatching(l.root, index, suspect)
}

func (l *Ledger) countMatching(n nodeID, index Lookup, suspect string) int {
	if n == nilNode {
		return 0
	}
	count := 0
	if s, ok := index.Lookup(l.nodes[n].clue); ok && s == suspect {
		count = 1
	}
	return count + l.countMatching(l.nodes[n].left, index, suspect) + l.countMatching(l.nodes[n].right, index, suspect)
}

// Release drops every node, children before parents. The ledger is empty afterwards.
func (l *Ledger) Release() {
	var release func(n nodeID)
	release = func(n nodeID) {
		if n == nilNode {
			return
		}
		release(l.nodes[n].left)
		release(l.nodes[n].right)
		l.nodes[n] = node{left: nilNode, right: nilNode}
	}
	release(l.root)
	l.nodes = nil
	l.root = nilNode
}
