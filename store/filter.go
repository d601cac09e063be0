package store

import (
	"fmt"
	"strconv"

	"github.com/SierraSoftworks/connor"
)

// FilterOptions selects records by a connor expression evaluated against
// each record's document form. Documents are JSON-shaped: numeric values are
// float64, exactly what a filter parsed from JSON compares against.
type FilterOptions struct {
	Filter map[string]interface{}
	Skip   int64
	Limit  int64 // 0 means no limit
}

// document renders a record as a field-name→value map: configured column
// names (field1..fieldN for unnamed positions) plus pid and token.
func (s *Store) document(r Record) map[string]interface{} {
	doc := map[string]interface{}{
		"token": float64(r.Token),
		"pid":   float64(r.PID),
	}
	for i, value := range r.Fields {
		name := "field" + strconv.Itoa(i+1)
		if i < len(s.columns) && s.columns[i] != "" {
			name = s.columns[i]
		}
		doc[name] = value
	}
	return doc
}

// Filter runs a full scan over the store, in token order, matching each
// record's document against options.Filter.
func (s *Store) Filter(options FilterOptions) ([]Record, error) {
	result, err := s.runExclusive(opFilter, opArgs{filter: &options})
	return result.records, err
}

func (s *Store) filter(options *FilterOptions) ([]Record, error) {

	records, err := s.ordered()
	if err != nil {
		return nil, err
	}

	hasFilter := len(options.Filter) > 0

	skip := options.Skip
	limit := options.Limit
	matches := []Record{}
	for _, record := range records {

		if options.Limit != 0 && limit == 0 {
			break
		}

		if hasFilter {
			match, err := connor.Match(options.Filter, s.document(record))
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		matches = append(matches, record)
	}

	return matches, nil
}
