package topology

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/random"
)

// Scope is the lifetime class of a topology.
type Scope int

// Scope enumeration.
const (
	// ScopeGlobal is a long-lived topology shared for the whole process. There is at most one per process.
	ScopeGlobal Scope = iota
	// ScopeSuite is a topology living for one test suite.
	ScopeSuite
	// ScopeTest is a topology living for one test.
	ScopeTest
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeSuite:
		return "suite"
	case ScopeTest:
		return "test"
	}

	return "unknown"
}

// ParseScope parses a scope name, case-insensitively.
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "global":
		return ScopeGlobal, nil
	case "suite":
		return ScopeSuite, nil
	case "test":
		return ScopeTest, nil
	}

	return 0, ewrap.Wrap(sentinel.ErrInvalidScope, name)
}

// BasePort computes the first port of the window owned by a topology:
//
//	30000 + 1000*(processID mod 60) + 100*slot
//
// The global topology always takes slot 0. Suite and test topologies draw a
// slot in [1, 9] from src on every call, so each construction may land in a
// different window.
//
// Nothing here coordinates between callers. Two preconditions keep windows
// disjoint and both are the caller's to uphold:
//   - concurrently running processes use distinct process ids (mod 60);
//   - suite and test topologies of one process never run at the same time,
//     since they may draw the same slot.
func BasePort(scope Scope, processID int, src random.Source) (int, error) {
	slot, err := scopeSlot(scope, src)
	if err != nil {
		return 0, err
	}

	proc := processID % constants.MaxConcurrentProcesses
	if proc < 0 {
		proc += constants.MaxConcurrentProcesses
	}

	return constants.PortRangeStart +
		constants.PortsPerProcess*proc +
		constants.PortsPerScopeSlot*slot, nil
}

func scopeSlot(scope Scope, src random.Source) (int, error) {
	switch scope {
	case ScopeGlobal:
		return constants.GlobalScopeSlot, nil
	case ScopeSuite, ScopeTest:
		if src == nil {
			return 0, sentinel.ErrNilRandomSource
		}

		return random.Between(src, constants.MinTransientScopeSlot, constants.MaxTransientScopeSlot), nil
	}

	return 0, ewrap.Wrapf(sentinel.ErrInvalidScope, "scope %d", int(scope))
}

// PortWindow is the inclusive range of ports reserved for one topology.
type PortWindow struct {
	First int
	Last  int
}

// WindowAt returns the window starting at base.
func WindowAt(base int) PortWindow {
	return PortWindow{First: base, Last: base + constants.PortsPerScopeSlot - 1}
}

// Contains reports whether port lies in the window.
func (w PortWindow) Contains(port int) bool { return port >= w.First && port <= w.Last }

// Size returns the number of ports in the window.
func (w PortWindow) Size() int { return w.Last - w.First + 1 }

//nolint:gochecknoglobals
var processID = sync.OnceValue(func() int {
	if raw := strings.TrimSpace(os.Getenv(constants.ProcessIDEnv)); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}

	return os.Getpid()
})

// ProcessID returns the id used to separate concurrently running test processes. It reads
// HYPERTOPO_PROCESS_ID once and falls back to the operating system pid.
func ProcessID() int { return processID() }
