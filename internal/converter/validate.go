package converter

// validate checks that decoded input is a non-empty list of records and that
// every record carries all declared nesting attributes. It is a pure gate:
// on success it returns the typed record slice, on failure one of the
// structure/attribute errors, and it never mutates the converter.
func (c *Converter) validate(decoded any) ([]Record, error) {
	items, ok := decoded.([]any)
	if !ok || len(items) == 0 {
		return nil, ErrInvalidDataStructure
	}

	records := make([]Record, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, ErrInvalidDataStructure
		}
		records[i] = Record(rec)
	}

	var violations []AttributeViolation
	for _, rec := range records {
		var missing []string
		for _, level := range c.levels {
			if _, present := rec[level]; !present {
				missing = append(missing, level)
			}
		}
		if len(missing) > 0 {
			violations = append(violations, AttributeViolation{Record: rec, Missing: missing})
		}
	}
	if len(violations) > 0 {
		return nil, &AttributeError{Violations: violations}
	}

	return records, nil
}
