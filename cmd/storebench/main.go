package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/goconfig"

	"github.com/procstash/procstash/logger"
	"github.com/procstash/procstash/store"
)

type Config struct {
	File    string `usage:"backing file (empty = temp file, removed afterwards)"`
	N       int    `usage:"number of records per worker"`
	Workers int    `usage:"number of racing workers, each with its own store handle"`
	Global  bool   `usage:"use global uniqueness scope"`
}

func main() {

	c := Config{
		N:       1000,
		Workers: 16,
	}
	goconfig.Read(&c)

	l := logger.New(os.Stderr, logger.Options{FailFast: true})

	if c.File == "" {
		dir, err := os.MkdirTemp("", "storebench_*")
		if err != nil {
			l.Errorf("temp dir: %s", err.Error())
		}
		defer os.RemoveAll(dir)
		c.File = filepath.Join(dir, "bench.records")
	}

	// Every worker opens its own handle: the contention is the real
	// cross-handle flock path, not the in-process mutex.
	handles := make([]*store.Store, c.Workers)
	for i := range handles {
		s, err := store.Open(store.Config{Path: c.File, Global: c.Global})
		if err != nil {
			l.Errorf("open store: %s", err.Error())
		}
		handles[i] = s
	}

	tokens := make(chan uint64, c.Workers*c.N)

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		s := handles[worker]
		for i := 0; i < c.N; i++ {
			token, err := s.Add("bench", "worker"+strconv.Itoa(worker), strconv.Itoa(i))
			if err != nil {
				l.Errorf("add: %s", err.Error())
			}
			if token != 0 {
				tokens <- token
			}
		}
	})
	took := time.Since(t0)
	close(tokens)

	seen := map[uint64]bool{}
	duplicated := 0
	for token := range tokens {
		if seen[token] {
			duplicated++
		}
		seen[token] = true
	}

	total := c.Workers * c.N
	fmt.Println("added:", total)
	fmt.Println("tokens:", len(seen), "duplicated:", duplicated)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f adds/sec\n", float64(total)/took.Seconds())

	if duplicated > 0 || len(seen) != total {
		l.Errorf("token monotonicity violated: %d unique of %d, %d duplicated", len(seen), total, duplicated)
	}
	l.Successf("all tokens unique")
}

func Parallel(workers int, f func(worker int)) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			f(worker)
		}(i)
	}
	wg.Wait()
}
