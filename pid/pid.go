// Package pid resolves the logical owning process id of the current process.
//
// When the binary is invoked from a shell script, the records it writes
// should be scoped to the script, not to whichever subshell happened to run
// the command. The resolver walks the parent chain through the platform's
// process table: a contiguous chain of shell ancestors collapses to its
// outermost shell, which is the process actually running the script.
package pid

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// ancestorLimit bounds the walk so a cyclic or absurdly deep process table
// cannot hang resolution.
const ancestorLimit = 32

var shellNames = map[string]bool{
	"sh":   true,
	"bash": true,
	"zsh":  true,
	"dash": true,
	"ash":  true,
	"ksh":  true,
	"fish": true,
}

// Resolver memoizes one resolution: process identity does not change over
// the process lifetime, and repeated critical-section entries within one
// logical operation must not re-resolve.
type Resolver struct {
	once sync.Once
	pid  int
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Fixed returns a resolver that always reports pid, for callers that already
// know the logical owner.
func Fixed(pid int) *Resolver {
	r := &Resolver{pid: pid}
	r.once.Do(func() {})
	return r
}

// Real returns the logical owning pid. Resolution never forks; it must be
// called before entering a critical section, never while a lock is held.
// Any introspection failure falls back to the process's own pid.
func (r *Resolver) Real() int {
	r.once.Do(func() {
		r.pid = resolve(os.Getpid())
	})
	return r.pid
}

func resolve(self int) int {

	current, err := process.NewProcess(int32(self))
	if err != nil {
		return self
	}

	owner := self
	for i := 0; i < ancestorLimit; i++ {
		ppid, err := current.Ppid()
		if err != nil || ppid <= 1 {
			break
		}

		parent, err := process.NewProcess(ppid)
		if err != nil {
			break
		}

		name, err := parent.Name()
		if err != nil || !shellNames[name] {
			break
		}

		owner = int(ppid)
		current = parent
	}

	return owner
}
