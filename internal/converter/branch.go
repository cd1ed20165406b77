package converter

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/vk/nestgo/internal/tree"
)

// buildBranch walks the tree from current along the record's values for the
// remaining nesting levels, creating missing nodes as it descends, and
// returns the leaf the record resolves to. Each call consumes one level;
// reslicing remaining never mutates the level sequence the converter owns.
//
// A record whose full path already terminates at an existing node is a
// duplicate; so are two sibling nodes sharing a label, which can only mean a
// prior build broke the tree.
func (c *Converter) buildBranch(remaining []string, current tree.NodeID, rec Record) (tree.NodeID, error) {
	if !c.tree.Valid(current) {
		return tree.None, ErrMissingNode
	}
	if len(rec) == 0 {
		return tree.None, ErrMissingRecord
	}

	if len(remaining) > 0 {
		label := labelString(rec[remaining[0]])
		matches := c.tree.FindChildren(current, label)

		if len(matches) > 1 {
			return tree.None, errors.Wrapf(ErrDuplicateNodesFound,
				"in the children reached by record %s", DescribeRecord(rec))
		}
		if len(matches) == 1 && len(remaining) == 1 {
			return tree.None, errors.Wrapf(ErrDuplicateNodesFound,
				"at record %s", DescribeRecord(rec))
		}

		next := tree.None
		if len(matches) == 1 {
			next = matches[0]
		} else {
			next = c.tree.AddChild(current, label)
		}
		return c.buildBranch(remaining[1:], next, rec)
	}

	if current == tree.Root {
		return tree.None, ErrMissingNestingLevels
	}

	return current, nil
}

// labelString renders a nesting-attribute value as the node label it keys in
// the exported object. JSON object keys are strings, so scalars take their
// JSON literal form; non-scalar level values are not specified by the format
// and fall back to their printed form.
func labelString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return fmt.Sprint(val)
	}
}
