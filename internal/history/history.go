package history

import (
	"sync"

	"decimal-calc/internal/calculation"
)

// History is an append-only, insertion-ordered log of calculations. Entries
// are only removed all at once by Clear.
type History struct {
	mu    sync.RWMutex
	calcs []calculation.Calculation
}

func New() *History {
	return &History{}
}

func (h *History) Add(calc calculation.Calculation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calcs = append(h.calcs, calc)
}

// Latest returns the most recently added calculation, or false when empty.
func (h *History) Latest() (calculation.Calculation, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.calcs) == 0 {
		return calculation.Calculation{}, false
	}
	return h.calcs[len(h.calcs)-1], true
}

// All returns a copy of the history in insertion order.
func (h *History) All() []calculation.Calculation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]calculation.Calculation{}, h.calcs...)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.calcs)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calcs = nil
}

// FindByOperation returns the calculations registered under name, in
// insertion order. The result is never nil.
func (h *History) FindByOperation(name string) []calculation.Calculation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := []calculation.Calculation{}
	for _, c := range h.calcs {
		if c.OperationName() == name {
			out = append(out, c)
		}
	}
	return out
}
