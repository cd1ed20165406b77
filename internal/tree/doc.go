// Package tree implements the node arena backing the records-to-tree
// converter. Nodes are addressed by integer NodeID handles; each node stores
// its label, its parent id and its child ids, so the structure has no
// pointer cycles and a Tree can be copied or discarded as a single value.
package tree
