package converter

import (
	"context"
	"encoding/json"

	"github.com/vk/nestgo/internal/ctxlog"
	"github.com/vk/nestgo/internal/tree"
)

// exportIndent is the indentation unit of the exported JSON.
const exportIndent = "  "

// ExportTree serializes the tree as a nested JSON object: one level of keys
// per nesting level, child labels as keys, leaf payloads as one-element
// arrays. Keys are emitted in lexicographic order at every level by the
// serializer, so repeated exports of the same tree are byte-identical.
func (c *Converter) ExportTree(ctx context.Context) ([]byte, error) {
	if c.tree.IsLeaf(tree.Root) {
		return nil, ErrNoTreeCreated
	}

	out, err := json.MarshalIndent(c.exportLayer(tree.Root), "", exportIndent)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Tree exported.", "bytes", len(out))
	return out, nil
}

// exportLayer converts the subtree rooted at id into the value it serializes
// to: a label-keyed map for internal nodes, the stored payload for leaves.
func (c *Converter) exportLayer(id tree.NodeID) any {
	if c.tree.IsLeaf(id) {
		return c.tree.Payload(id)
	}

	children := c.tree.Children(id)
	layer := make(map[string]any, len(children))
	for _, child := range children {
		layer[c.tree.Label(child)] = c.exportLayer(child)
	}
	return layer
}
