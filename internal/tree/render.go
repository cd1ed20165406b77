package tree

import (
	"fmt"
	"io"
)

// Box-drawing fragments for Render, one per sibling position.
const (
	renderBranch = "├── "
	renderLast   = "└── "
	renderPipe   = "│   "
	renderBlank  = "    "
)

// Render writes a human-readable view of the tree to w, one node per line,
// children indented under their parent with box-drawing connectors. It is a
// debugging aid; the canonical serialization is the converter's export.
func (t *Tree) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, t.nodes[Root].label); err != nil {
		return err
	}
	return t.renderChildren(w, Root, "")
}

func (t *Tree) renderChildren(w io.Writer, id NodeID, prefix string) error {
	children := t.nodes[id].children
	for i, child := range children {
		connector, childPrefix := renderBranch, prefix+renderPipe
		if i == len(children)-1 {
			connector, childPrefix = renderLast, prefix+renderBlank
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, t.nodes[child].label); err != nil {
			return err
		}
		if err := t.renderChildren(w, child, childPrefix); err != nil {
			return err
		}
	}
	return nil
}
