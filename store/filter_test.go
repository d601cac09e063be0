package store

import (
	"testing"

	. "github.com/fulldump/biff"
)

func openWithColumns(filename string) *Store {
	s, err := Open(Config{
		Path:    filename,
		Columns: []string{"name", "color", "kind"},
	})
	if err != nil {
		panic(err)
	}
	return s
}

func TestFilter(t *testing.T) {
	Environment(func(filename string) {

		s := openWithColumns(filename)

		s.Add("apple", "red", "fruit")
		s.Add("banana", "yellow", "fruit")
		s.Add("tomato", "red", "vegetable")

		records, err := s.Filter(FilterOptions{
			Filter: map[string]interface{}{"color": "red"},
		})
		AssertNil(err)
		AssertEqual(len(records), 2)
		AssertEqual(records[0].Fields[0], "apple")
		AssertEqual(records[1].Fields[0], "tomato")
	})
}

func TestFilter_SkipLimit(t *testing.T) {
	Environment(func(filename string) {

		s := openWithColumns(filename)

		s.Add("apple", "red", "fruit")
		s.Add("banana", "yellow", "fruit")
		s.Add("kiwi", "green", "fruit")

		records, err := s.Filter(FilterOptions{
			Filter: map[string]interface{}{"kind": "fruit"},
			Skip:   1,
			Limit:  1,
		})
		AssertNil(err)
		AssertEqual(len(records), 1)
		AssertEqual(records[0].Fields[0], "banana")
	})
}

func TestFilter_EmptyFilterReturnsAll(t *testing.T) {
	Environment(func(filename string) {

		s := openWithColumns(filename)

		s.Add("apple", "red", "fruit")
		s.Add("banana", "yellow", "fruit")

		records, err := s.Filter(FilterOptions{})
		AssertNil(err)
		AssertEqual(len(records), 2)
	})
}

func TestFilter_UnnamedColumns(t *testing.T) {
	Environment(func(filename string) {

		s := open(filename)

		s.Add("apple", "red", "fruit")

		records, err := s.Filter(FilterOptions{
			Filter: map[string]interface{}{"field2": "red"},
		})
		AssertNil(err)
		AssertEqual(len(records), 1)
	})
}

func TestDocument(t *testing.T) {
	Environment(func(filename string) {

		s := openWithColumns(filename)

		doc := s.document(Record{Token: 7, Fields: []string{"apple", "red", "fruit", "extra"}, PID: 42})

		AssertEqualJson(doc, map[string]interface{}{
			"token":  7,
			"pid":    42,
			"name":   "apple",
			"color":  "red",
			"kind":   "fruit",
			"field4": "extra",
		})
	})
}
