package store

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownOperation reports an internal misuse of the critical-section
// dispatcher. It is unreachable through the public surface.
var ErrUnknownOperation = errors.New("unknown operation")

// operation is the closed set of critical-section bodies. Dispatch is a
// switch resolved at compile time, not a name lookup.
type operation int

const (
	opAdd operation = iota
	opGet
	opDelete
	opList
	opDestroy
	opFilter
	opExport
)

type opArgs struct {
	pid    int
	fields []string
	filter *FilterOptions
	out    io.Writer
}

type opResult struct {
	token   uint64
	records []Record
}

// runExclusive acquires the exclusive cross-process lock tied to the backing
// file and runs exactly one operation body while holding it, in this same
// goroutine. The resolved real pid is prepended to the arguments. The lock is
// released unconditionally, including on error.
//
// At most one body executes at a time across all processes and threads
// sharing the same backing file. A crash while holding the lock is a known,
// accepted risk. Nothing inside the section logs or spawns a subprocess.
func (s *Store) runExclusive(op operation, args opArgs) (result opResult, err error) {

	// Identity resolution may inspect the process table, so it happens
	// strictly before the lock is taken.
	args.pid = s.pids.Real()

	// The flock handle is idempotent within one Store, goroutines sharing a
	// handle serialize on the mutex instead.
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.lock.Lock()
	if err != nil {
		return result, fmt.Errorf("acquire lock '%s': %w", s.lock.Path(), err)
	}
	defer s.lock.Unlock()

	switch op {
	case opAdd:
		result.token, err = s.add(args.pid, args.fields)
	case opGet:
		result.records, err = s.get(args.fields)
	case opDelete:
		err = s.remove(args.fields)
	case opList:
		result.records, err = s.list()
	case opDestroy:
		err = s.destroy()
	case opFilter:
		result.records, err = s.filter(args.filter)
	case opExport:
		err = s.export(args.out)
	default:
		err = fmt.Errorf("%w: operation %d", ErrUnknownOperation, op)
	}

	return result, err
}
