// Package exithook is the signal-dispatch collaborator: best-effort cleanup
// registration for process exit. Hooks run once, newest first, either when a
// terminating signal arrives or when the program calls Run on its way out.
package exithook

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type hook struct {
	name string
	f    func()
}

var (
	mu        sync.Mutex
	hooks     []*hook
	installed bool
)

// Register installs f to run at process exit and returns a cancel function.
// The first registration installs the signal handler (SIGINT, SIGTERM,
// SIGHUP); on signal all pending hooks run and the process exits with
// status 1.
func Register(name string, f func()) (cancel func()) {
	mu.Lock()
	defer mu.Unlock()

	if !installed {
		installed = true
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			<-c
			Run()
			os.Exit(1)
		}()
	}

	h := &hook{name: name, f: f}
	hooks = append(hooks, h)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		for i, other := range hooks {
			if other == h {
				hooks = append(hooks[:i], hooks[i+1:]...)
				return
			}
		}
	}
}

// Run executes all pending hooks, newest first, each at most once. A
// panicking hook is reported and does not stop the rest.
func Run() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		h := pending[i]
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "exithook: '%s' panicked: %v\n", h.name, r)
				}
			}()
			h.f()
		}()
	}
}
