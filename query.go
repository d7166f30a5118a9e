package wallet

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against records encoded as a JSON
// array of objects with keys "date", "category", "amount" and "description".
//
// For instance "$[*].amount" returns all amounts, and
// "$[?(@.amount > 100)].description" the descriptions of large records.
func Query(records []Record, path string) (any, error) {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("could not encode records: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("could not decode records: %w", err)
	}
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}
