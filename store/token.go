package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TokenSuffix is appended to the backing file path to name the sidecar that
// persists the last issued token.
const TokenSuffix = ".token"

// nextToken reads the last issued token from the sidecar, increments it and
// writes it back. Missing, empty or non-numeric content counts as zero, so
// the first token ever issued is 1.
//
// Callable only from inside an active critical section; it performs no
// locking of its own.
func (s *Store) nextToken() (uint64, error) {
	var last uint64

	content, err := os.ReadFile(s.tokenPath)
	if err == nil {
		last, _ = strconv.ParseUint(strings.TrimSpace(string(content)), 10, 64)
	}

	next := last + 1

	err = os.WriteFile(s.tokenPath, []byte(strconv.FormatUint(next, 10)+lineTerminator), 0666)
	if err != nil {
		return 0, fmt.Errorf("write token sidecar: %w", err)
	}

	return next, nil
}
