package store

import (
	"os"
	"path/filepath"
)

func Environment(f func(filename string)) {
	dir, err := os.MkdirTemp("", "procstash_test_*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	f(filepath.Join(dir, "records"))
}
