package tree

// NodeID is a small, copyable handle referring to a node in a Tree's arena.
// Using handles instead of node pointers keeps the structure free of parent
// back-references and cyclic ownership.
type NodeID int32

const (
	// Root is the id of the synthetic root node every Tree is created with.
	Root NodeID = 0
	// None is the absent-node handle. It is never a valid index into the arena.
	None NodeID = -1
)

// rootLabel is the fixed sentinel label of the synthetic root node.
const rootLabel = "root"

// node is a single vertex in the arena. It is un-exported to enforce
// interaction with the tree via the public API (using NodeIDs), not by
// direct struct manipulation.
type node struct {
	// label is the attribute value this node represents on its path.
	label string
	// parent is the id of the owning node, or None for the root.
	parent NodeID
	// children holds child ids in insertion order. The order carries no
	// meaning; export imposes its own ordering.
	children []NodeID
	// payload is the leaf payload: a one-element slice holding the residual
	// attributes of the record that produced this leaf. Nil on internal nodes.
	payload []map[string]any
}

// Tree is an arena of nodes reachable from a single synthetic root.
// A Tree is owned by exactly one converter instance and is not safe for
// concurrent use.
type Tree struct {
	nodes []node
}

// New creates a Tree containing only the synthetic root node.
func New() *Tree {
	return &Tree{
		nodes: []node{{label: rootLabel, parent: None}},
	}
}

// Valid reports whether id refers to a node in the arena.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Len returns the number of nodes in the arena, the root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Label returns the label of the given node.
func (t *Tree) Label(id NodeID) string {
	return t.nodes[id].label
}

// Parent returns the id of the given node's parent, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the child ids of the given node in insertion order.
// The returned slice is owned by the tree and must not be mutated.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// IsLeaf reports whether the given node has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].children) == 0
}

// AddChild appends a new node labeled label under parent and returns its id.
func (t *Tree) AddChild(parent NodeID, label string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{label: label, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// FindChildren returns the ids of all children of parent whose label equals
// label. A well-formed tree yields at most one match; callers treat more as
// an invariant breach.
func (t *Tree) FindChildren(parent NodeID, label string) []NodeID {
	var matches []NodeID
	for _, child := range t.nodes[parent].children {
		if t.nodes[child].label == label {
			matches = append(matches, child)
		}
	}
	return matches
}

// SetPayload attaches a leaf payload to the given node, replacing any
// previous payload.
func (t *Tree) SetPayload(id NodeID, payload []map[string]any) {
	t.nodes[id].payload = payload
}

// Payload returns the leaf payload of the given node, or nil if none was set.
func (t *Tree) Payload(id NodeID) []map[string]any {
	return t.nodes[id].payload
}
