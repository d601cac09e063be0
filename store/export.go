package store

import (
	"fmt"
	"io"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

func (s *Store) export(w io.Writer) error {

	records, err := s.ordered()
	if err != nil {
		return err
	}

	encoder := jsontext.NewEncoder(w)
	for _, record := range records {
		err = json2.MarshalEncode(encoder, s.document(record))
		if err != nil {
			return fmt.Errorf("encode record %d: %w", record.Token, err)
		}
	}

	return nil
}
