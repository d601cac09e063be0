package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/procstash/procstash/pid"
)

// ErrDeleteFailed reports that the atomic-replace step of Delete could not
// complete. The original file is left untouched in that case.
var ErrDeleteFailed = errors.New("delete failed")

// Logger is the slice of the logging collaborator the store consumes. It is
// never called while the cross-process lock is held.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any)  {}

// Config is the explicit per-handle configuration. There is no process-wide
// ambient state: two handles with different configs can coexist.
type Config struct {
	// Path of the backing file. Empty selects DefaultPath().
	Path string

	// Global switches duplicate detection from per-process to store-wide:
	// with Global false any record matching the key blocks an insert, with
	// Global true only a matching record owned by the same pid does.
	// Affects subsequent operations only, never existing records.
	Global bool

	// Columns optionally names the key fields for Filter and Export
	// documents. Unnamed positions render as field1..fieldN.
	Columns []string

	// ListNone replicates the historical behavior of List returning
	// nothing. See Store.List.
	ListNone bool

	Log Logger
}

// Store is a handle on one backing file. The file is a shared resource owned
// by no single process; consistency comes from the locking discipline alone,
// so handles carry no in-memory record state.
type Store struct {
	path      string
	tokenPath string
	global    bool
	columns   []string
	listNone  bool
	log       Logger
	pids      *pid.Resolver
	lock      *flock.Flock
	mu        sync.Mutex
}

// DefaultPath derives a backing file path from the caller's identity and
// process id under the temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("procstash-%d-%d.records", os.Getuid(), os.Getpid()))
}

// Open returns a handle on the store at config.Path. The backing file is not
// created until the first Add: an absent file is a valid empty store.
func Open(config Config) (*Store, error) {

	path := config.Path
	if path == "" {
		path = DefaultPath()
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("open store '%s': is a directory", path)
	}

	log := config.Log
	if log == nil {
		log = nopLogger{}
	}
	log.Debugf("using store at '%s'", path)

	return &Store{
		path:      path,
		tokenPath: path + TokenSuffix,
		global:    config.Global,
		columns:   config.Columns,
		listNone:  config.ListNone,
		log:       log,
		pids:      pid.NewResolver(),
		// The lock is a dedicated handle next to the backing file because
		// Delete replaces the backing inode itself.
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Add validates fields, then appends one record unless the key is already
// present under the configured uniqueness scope. A blocked duplicate is not a
// failure: Add returns token 0 and a nil error (tokens start at 1).
func (s *Store) Add(fields ...string) (uint64, error) {

	err := validateFields(fields)
	if err != nil {
		return 0, err
	}

	if i, yes := fieldsNeedEncoding(fields); yes {
		s.log.Warnf("field %d contains lookup metacharacters, encode it (e.g. base64) if exact matches matter", i)
	}

	result, err := s.runExclusive(opAdd, opArgs{fields: fields})
	return result.token, err
}

// Get returns every record whose key fields begin with the supplied values.
// fields may be a prefix of the full key; the match is textual, so field
// boundaries are significant (see matcher). Missing store or no match
// returns an empty result, never an error.
func (s *Store) Get(fields ...string) ([]Record, error) {
	result, err := s.runExclusive(opGet, opArgs{fields: fields})
	return result.records, err
}

// Delete removes every record matching fields under the same rule as Get,
// via write-temp-then-rename so a crash mid-delete cannot leave a record
// half-written. Fails with ErrDeleteFailed when the replace cannot complete.
func (s *Store) Delete(fields ...string) error {
	_, err := s.runExclusive(opDelete, opArgs{fields: fields})
	return err
}

// List enumerates all records in token order.
//
// Historical note: the behavior this store replaces had list as a silent
// no-op and callers used get with no arguments instead. Config.ListNone
// restores that, for callers depending on empty output.
func (s *Store) List() ([]Record, error) {
	if s.listNone {
		return nil, nil
	}
	result, err := s.runExclusive(opList, opArgs{})
	return result.records, err
}

// Destroy removes the backing file. Missing file is not an error. The token
// sidecar stays behind and is stale from this point on: a store re-created
// at the same path continues the token sequence.
func (s *Store) Destroy() error {
	_, err := s.runExclusive(opDestroy, opArgs{})
	return err
}

// Export streams every record to w as one JSON document per record, in token
// order, shaped like the Filter documents.
func (s *Store) Export(w io.Writer) error {
	_, err := s.runExclusive(opExport, opArgs{out: w})
	return err
}

// critical-section bodies below. None of them lock, log or fork; they run
// only via runExclusive.

func (s *Store) readLines() ([]string, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	lines := strings.Split(string(content), lineTerminator)
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

func (s *Store) add(ownPid int, fields []string) (uint64, error) {

	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}

	m := newExactMatcher(fields)
	for _, line := range lines {
		if !m.match(line) {
			continue
		}
		if s.global {
			record, ok := parseLine(line)
			if !ok || record.PID != ownPid {
				continue
			}
		}
		// Duplicate suppressed, not a failure.
		return 0, nil
	}

	token, err := s.nextToken()
	if err != nil {
		return 0, err
	}

	record := Record{Token: token, Fields: fields, PID: ownPid}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return 0, fmt.Errorf("open store for append: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(record.line())
	if err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}

	return token, nil
}

func (s *Store) get(fields []string) ([]Record, error) {

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	m := newMatcher(fields)
	records := []Record{}
	for _, line := range lines {
		if !m.match(line) {
			continue
		}
		record, ok := parseLine(line)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *Store) remove(fields []string) error {

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	if lines == nil {
		return nil
	}

	m := newMatcher(fields)
	survivors := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if m.match(line) {
			removed++
			continue
		}
		survivors = append(survivors, line)
	}

	if removed == 0 {
		return nil
	}

	content := ""
	if len(survivors) > 0 {
		content = strings.Join(survivors, lineTerminator) + lineTerminator
	}

	// Replace the whole file: temp in the same directory, then rename over
	// the original, so the store is always either the old or the new
	// complete content.
	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp-"+uuid.New().String())

	err = os.WriteFile(tmp, []byte(content), 0666)
	if err != nil {
		return fmt.Errorf("%w: write temp: %s", ErrDeleteFailed, err.Error())
	}

	err = os.Rename(tmp, s.path)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: install temp: %s", ErrDeleteFailed, err.Error())
	}

	return nil
}

// ordered returns all records sorted by token. Rewrites keep file order
// stable in practice, the btree makes the insertion-order guarantee explicit.
func (s *Store) ordered() ([]Record, error) {

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	index := btree.NewG(32, func(a, b Record) bool {
		return a.Token < b.Token
	})
	for _, line := range lines {
		record, ok := parseLine(line)
		if !ok {
			continue
		}
		index.ReplaceOrInsert(record)
	}

	records := make([]Record, 0, index.Len())
	index.Ascend(func(record Record) bool {
		records = append(records, record)
		return true
	})

	return records, nil
}

func (s *Store) list() ([]Record, error) {
	return s.ordered()
}

func (s *Store) destroy() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("destroy store: %w", err)
	}
	return nil
}
