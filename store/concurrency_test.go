package store

import (
	"strconv"
	"sync"
	"testing"

	. "github.com/fulldump/biff"
)

// Tokens must strictly increase under contention: every racing add gets its
// own value, none reused, count equals the number of successful adds.
func TestAdd_ConcurrentTokensUnique(t *testing.T) {
	Environment(func(filename string) {

		n := 25

		// Separate handles so every goroutine contends on the real
		// cross-process lock path, not only on the handle mutex.
		handles := make([]*Store, n)
		for i := range handles {
			handles[i] = open(filename)
		}

		tokens := make(chan uint64, n)

		wg := &sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				token, err := handles[i].Add("worker", strconv.Itoa(i))
				AssertNil(err)
				tokens <- token
			}(i)
		}
		wg.Wait()
		close(tokens)

		seen := map[uint64]bool{}
		for token := range tokens {
			AssertNotEqual(token, uint64(0))
			AssertFalse(seen[token])
			seen[token] = true
		}
		AssertEqual(len(seen), n)

		records, _ := handles[0].Get("worker")
		AssertEqual(len(records), n)
	})
}

func TestAdd_ConcurrentSharedHandle(t *testing.T) {
	Environment(func(filename string) {

		s := open(filename)

		n := 20
		wg := &sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s.Add("item", strconv.Itoa(i))
			}(i)
		}
		wg.Wait()

		records, _ := s.Get("item")
		AssertEqual(len(records), n)

		tokens := map[uint64]bool{}
		for _, record := range records {
			tokens[record.Token] = true
		}
		AssertEqual(len(tokens), n)
	})
}
