package converter

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors raised by the converter. Callers branch on these with
// errors.Is; context added along the way never hides them.
var (
	// ErrInvalidDataStructure reports decoded input that is not a non-empty
	// list of records.
	ErrInvalidDataStructure = errors.New("input data must be a non-empty list of records")

	// ErrDataAttributeMissing reports records that lack one or more of the
	// declared nesting attributes. The error returned by CreateTree is an
	// *AttributeError carrying the individual violations.
	ErrDataAttributeMissing = errors.New("required record attributes missing")

	// ErrDuplicateNodesFound reports a record whose full nesting path collides
	// with an existing leaf, or sibling nodes sharing a label.
	ErrDuplicateNodesFound = errors.New("duplicate nodes found")

	// ErrMissingNode reports a branch build attempted from an absent node.
	ErrMissingNode = errors.New("current node is missing")

	// ErrMissingRecord reports a branch build attempted with an absent or
	// empty record.
	ErrMissingRecord = errors.New("record is missing or empty")

	// ErrMissingNestingLevels reports a branch build reaching the root with no
	// nesting levels left to consume.
	ErrMissingNestingLevels = errors.New("cannot build a tree branch without nesting levels")

	// ErrNoTreeCreated reports an export attempted before any branch was built.
	ErrNoTreeCreated = errors.New("no tree to export")
)

// AttributeViolation describes a single record rejected during validation
// because it lacks declared nesting attributes.
type AttributeViolation struct {
	// Record is the offending record as decoded.
	Record Record
	// Missing lists the absent nesting attributes in declaration order.
	Missing []string
}

// AttributeError aggregates every attribute violation found in one
// validation pass. It unwraps to ErrDataAttributeMissing so errors.Is keeps
// working; callers wanting the per-record detail use errors.As.
type AttributeError struct {
	Violations []AttributeViolation
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("key attributes were missing in %d records", len(e.Violations))
}

func (e *AttributeError) Unwrap() error { return ErrDataAttributeMissing }
