package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/vk/nestgo/internal/ctxlog"
	"github.com/vk/nestgo/internal/tree"
)

// Record is one input attribute map to be placed into the tree.
type Record map[string]any

// Converter turns a flat JSON list of records into a tree grouped by the
// nesting levels it was constructed with, and serializes that tree back into
// a nested JSON object. A Converter owns exactly one tree for its whole
// lifetime; after a failed CreateTree the tree keeps whatever branches were
// built before the failure, so a clean retry needs a fresh Converter.
type Converter struct {
	levels   []string
	levelSet map[string]struct{}
	tree     *tree.Tree
}

// New creates a Converter grouping records by the given nesting levels,
// leftmost level = top of the tree.
func New(nestingLevels []string) *Converter {
	levelSet := make(map[string]struct{}, len(nestingLevels))
	for _, level := range nestingLevels {
		levelSet[level] = struct{}{}
	}
	return &Converter{
		levels:   slices.Clone(nestingLevels),
		levelSet: levelSet,
		tree:     tree.New(),
	}
}

// CreateTree decodes data as a JSON list of records, validates it, and grows
// the tree one branch per record in input order. Decode failures are
// returned untouched; validation and build failures carry one of this
// package's sentinel errors.
func (c *Converter) CreateTree(ctx context.Context, data []byte) error {
	logger := ctxlog.FromContext(ctx)

	decoded, err := decodeRecords(data)
	if err != nil {
		return err
	}

	records, err := c.validate(decoded)
	if err != nil {
		return err
	}
	logger.Debug("Input validated.", "records", len(records), "levels", c.levels)

	for _, rec := range records {
		leaf, err := c.buildBranch(c.levels, tree.Root, rec)
		if err != nil {
			return err
		}
		c.tree.SetPayload(leaf, []map[string]any{c.residualAttributes(rec)})
	}
	logger.Debug("Tree built.", "nodes", c.tree.Len())

	return nil
}

// RenderTree writes a human-readable view of the current tree to w.
func (c *Converter) RenderTree(w io.Writer) error {
	return c.tree.Render(w)
}

// decodeRecords parses data as a single JSON value, keeping numbers in their
// literal form so they survive re-serialization byte for byte.
func decodeRecords(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	return decoded, nil
}

// errTrailingData mirrors the decoder's own syntax errors for well-formed
// JSON content following the record list.
var errTrailingData = errors.New("unexpected data after the record list")

// IsDecodeError reports whether err came from the JSON decoding step rather
// than from validation or tree building.
func IsDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, errTrailingData)
}

// residualAttributes returns the attributes of rec that are not nesting
// levels, i.e. the content of the record's leaf payload.
func (c *Converter) residualAttributes(rec Record) map[string]any {
	residual := make(map[string]any)
	for k, v := range rec {
		if _, isLevel := c.levelSet[k]; !isLevel {
			residual[k] = v
		}
	}
	return residual
}

// DescribeRecord renders a record as compact JSON with sorted keys, for
// error context and diagnostic lines.
func DescribeRecord(rec Record) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprint(map[string]any(rec))
	}
	return string(data)
}
