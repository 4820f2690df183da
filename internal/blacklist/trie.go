package blacklist

import (
	"github.com/roach88/gambit/internal/board"
)

// nodeID indexes the arena. int32 halves the link footprint versus int
// and still addresses two billion nodes, far past any realistic budget.
type nodeID = int32

const nilNode nodeID = -1

// nodeOverheadBytes approximates the in-arena size of one node on a
// 64-bit platform: label slice header (24) + two links (8) + dead flag
// with padding (8).
const nodeOverheadBytes = 40

// node is one arena slot. label is the compressed edge segment leading
// from the parent; children form a sibling list sorted by the first
// label element.
type node struct {
	label   board.Key
	child   nodeID
	sibling nodeID
	dead    bool
}

// Trie is the dead-branch store. Not safe for concurrent use; a run's
// engine owns its trie exclusively.
type Trie struct {
	nodes      []node
	entries    int
	labelBytes int64
}

// NewTrie creates an empty store with a live root.
func NewTrie() *Trie {
	return &Trie{
		nodes: []node{{child: nilNode, sibling: nilNode}},
	}
}

// Len returns the number of dead marks recorded (distinct Insert keys,
// minus those subsumed by an already-dead ancestor).
func (t *Trie) Len() int {
	return t.entries
}

// Nodes returns the arena length, the host-facing growth metric.
func (t *Trie) Nodes() int {
	return len(t.nodes)
}

// SizeBytes approximates the heap footprint of the store.
func (t *Trie) SizeBytes() int64 {
	return int64(cap(t.nodes))*nodeOverheadBytes + t.labelBytes
}

// Insert marks the node at key as dead. Idempotent: re-inserting a key,
// or inserting a descendant of a dead key, changes nothing.
func (t *Trie) Insert(key board.Key) {
	cur := nodeID(0)
	rest := key

	for {
		if t.nodes[cur].dead {
			return
		}
		if len(rest) == 0 {
			t.nodes[cur].dead = true
			t.entries++
			return
		}

		child := t.findChild(cur, rest[0])
		if child == nilNode {
			leaf := t.alloc(rest, true)
			t.attachChild(cur, leaf)
			t.entries++
			return
		}

		n := commonPrefix(t.nodes[child].label, rest)
		if n == len(t.nodes[child].label) {
			// Full edge match, descend.
			cur = child
			rest = rest[n:]
			continue
		}

		// Partial match: split the edge at n.
		t.splitEdge(cur, child, n)
		if n == len(rest) {
			// key ends at the new intermediate node.
			t.nodes[t.findChild(cur, rest[0])].dead = true
			t.entries++
			return
		}
		intermediate := t.findChild(cur, rest[0])
		leaf := t.alloc(rest[n:], true)
		t.attachChild(intermediate, leaf)
		t.entries++
		return
	}
}

// ContainsPrefix reports whether the node at key, or any ancestor on its
// path, is marked dead. A dead ancestor implies the whole subtree is
// dead, so a true result means the branch must not be expanded.
func (t *Trie) ContainsPrefix(key board.Key) bool {
	cur := nodeID(0)
	rest := key

	for {
		if t.nodes[cur].dead {
			return true
		}
		if len(rest) == 0 {
			return false
		}

		child := t.findChild(cur, rest[0])
		if child == nilNode {
			return false
		}

		n := commonPrefix(t.nodes[child].label, rest)
		if n < len(t.nodes[child].label) {
			// key diverges or ends inside the edge. The edge's node is a
			// strict descendant of key's position; its dead mark says
			// nothing about key itself.
			return false
		}
		cur = child
		rest = rest[n:]
	}
}

// alloc appends a node to the arena and returns its id. The label is
// copied so the trie never aliases caller-owned key storage.
func (t *Trie) alloc(label board.Key, dead bool) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		label:   label.Clone(),
		child:   nilNode,
		sibling: nilNode,
		dead:    dead,
	})
	t.labelBytes += int64(len(label)) * 2
	return id
}

// findChild returns the child of parent whose label starts with first,
// or nilNode. The sibling list is sorted by first label element.
func (t *Trie) findChild(parent nodeID, first uint16) nodeID {
	for id := t.nodes[parent].child; id != nilNode; id = t.nodes[id].sibling {
		head := t.nodes[id].label[0]
		if head == first {
			return id
		}
		if head > first {
			return nilNode
		}
	}
	return nilNode
}

// attachChild inserts id into parent's sibling list, keeping it sorted
// by first label element. Labels are non-empty for every non-root node.
func (t *Trie) attachChild(parent, id nodeID) {
	first := t.nodes[id].label[0]

	prev := nilNode
	cur := t.nodes[parent].child
	for cur != nilNode && t.nodes[cur].label[0] < first {
		prev = cur
		cur = t.nodes[cur].sibling
	}

	t.nodes[id].sibling = cur
	if prev == nilNode {
		t.nodes[parent].child = id
	} else {
		t.nodes[prev].sibling = id
	}
}

// splitEdge breaks the edge parent->child at label offset n, introducing
// an intermediate node that keeps the child's position in the sibling
// list and adopts the child (with the label remainder) as its only
// descendant.
func (t *Trie) splitEdge(parent, child nodeID, n int) {
	intermediate := t.alloc(t.nodes[child].label[:n], false)

	// Take over the child's slot in the parent's sibling list.
	t.nodes[intermediate].sibling = t.nodes[child].sibling
	if t.nodes[parent].child == child {
		t.nodes[parent].child = intermediate
	} else {
		for id := t.nodes[parent].child; id != nilNode; id = t.nodes[id].sibling {
			if t.nodes[id].sibling == child {
				t.nodes[id].sibling = intermediate
				break
			}
		}
	}

	// Demote the child under the intermediate node.
	t.nodes[child].label = t.nodes[child].label[n:]
	t.nodes[child].sibling = nilNode
	t.nodes[intermediate].child = child
}

// commonPrefix returns the length of the shared prefix of two keys.
func commonPrefix(a, b board.Key) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
