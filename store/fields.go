package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidField rejects a field that would corrupt the flat-file encoding.
var ErrInvalidField = errors.New("invalid field")

const reservedBytes = fieldSeparator + lineTerminator + "\x00"

// lookupMetachars are live in the matching patterns built by get and delete.
const lookupMetachars = `.*+?[]{}()|\^$`

func validateFields(fields []string) error {
	for i, field := range fields {
		if j := strings.IndexAny(field, reservedBytes); j >= 0 {
			return fmt.Errorf("%w: field %d contains reserved byte 0x%02x", ErrInvalidField, i+1, field[j])
		}
	}
	return nil
}

// fieldsNeedEncoding reports whether any field would behave as a pattern
// rather than a literal during lookups. Advisory only, never blocks a write.
func fieldsNeedEncoding(fields []string) (int, bool) {
	for i, field := range fields {
		if strings.ContainsAny(field, lookupMetachars) {
			return i + 1, true
		}
	}
	return 0, false
}
