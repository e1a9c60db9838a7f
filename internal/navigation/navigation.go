// ABOUTME: Navigation capability used for redirects after login, logout and URL correction
// ABOUTME: Provides the console's route table and a recording navigator

package navigation

import "sync"

// Console routes.
const (
	RouteHome     = "/"
	RouteLogin    = "/auth"
	RouteStudents = "/students"
	RouteProfile  = "/profile"
)

// Navigator performs a fire-and-forget redirect.
type Navigator interface {
	Goto(path string)
}

// Func adapts a plain function to Navigator.
type Func func(path string)

func (f Func) Goto(path string) { f(path) }

// Discard ignores every redirect.
var Discard Navigator = Func(func(string) {})

// History records redirects in order. The CLI reports the last one; tests
// inspect all of them.
type History struct {
	mu    sync.Mutex
	paths []string
}

func (h *History) Goto(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
}

// Last returns the most recent destination, or "" if none.
func (h *History) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}

// Paths returns a copy of every recorded destination.
func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}
