package utils

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestGetKeys(t *testing.T) {
	keys := GetKeys(map[string]int{"b": 2, "a": 1, "c": 3})
	biff.AssertEqual(keys, []string{"a", "b", "c"})

	biff.AssertEqual(GetKeys(map[string]int{}), []string{})
}

func TestSplitNonEmpty(t *testing.T) {
	biff.AssertEqual(SplitNonEmpty("name, color ,kind", ","), []string{"name", "color", "kind"})
	biff.AssertEqual(SplitNonEmpty("", ","), []string{})
	biff.AssertEqual(SplitNonEmpty(" , ,", ","), []string{})
}
