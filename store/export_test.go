package store

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/fulldump/biff"
)

func TestExport(t *testing.T) {
	Environment(func(filename string) {

		s := openWithColumns(filename)

		s.Add("apple", "red", "fruit")
		s.Add("banana", "yellow", "fruit")

		b := &bytes.Buffer{}
		err := s.Export(b)
		AssertNil(err)

		output := b.String()
		AssertTrue(strings.Contains(output, `"name":"apple"`))
		AssertTrue(strings.Contains(output, `"name":"banana"`))
		AssertTrue(strings.Contains(output, `"token"`))
		AssertTrue(strings.Contains(output, `"pid"`))
	})
}

func TestExport_EmptyStore(t *testing.T) {
	Environment(func(filename string) {

		s := open(filename)

		b := &bytes.Buffer{}
		err := s.Export(b)
		AssertNil(err)
		AssertEqual(b.Len(), 0)
	})
}
