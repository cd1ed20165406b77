// Package converter turns flat JSON lists of attribute-tagged records into
// nested tree structures grouped by an ordered sequence of attribute names,
// and serializes them back to deterministic JSON.
//
// The pipeline is strictly phased: decode the whole input, validate it as a
// non-empty list of records each carrying every nesting attribute, grow the
// tree one branch per record in input order, then export depth-first with
// keys sorted at every level. Structural conflicts (a record whose path
// collides with an existing leaf) abort the build; the converter performs no
// rollback, so recovering from a failed build means starting over with a
// fresh Converter and corrected data.
package converter
