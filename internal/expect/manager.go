package expect

// Manager is the per-Case stack of currently registered Waiters, in the
// order Wait was called. A Case that calls Wait from within a delegate
// callback of an outer Wait creates a nested Waiter, pushed on top of
// the outer one.
//
// Nested-interrupt semantics (spec.md §4.E): when a Waiter's own
// deadline elapses, it forcibly finishes (as Interrupted) every Waiter
// still registered above it on the stack — the inner waits it is,
// transitively, responsible for.
type Manager struct {
	stack []*Waiter
}

// NewManager constructs an empty Manager, owned by a single Case for
// the duration of that Case's body.
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) register(w *Waiter) {
	queue.lock()
	m.stack = append(m.stack, w)
	queue.unlock()
}

func (m *Manager) deregister(w *Waiter) {
	queue.lock()
	for i, c := range m.stack {
		if c == w {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}
	queue.unlock()
}

// interruptInner forcibly finishes, as Interrupted, every Waiter
// registered after outer in the stack that is still waiting. Called
// when outer's own deadline fires, before outer runs its own timeout
// validation.
func (m *Manager) interruptInner(outer *Waiter) {
	queue.lock()
	idx := -1
	for i, c := range m.stack {
		if c == outer {
			idx = i
			break
		}
	}
	var toInterrupt []*Waiter
	if idx >= 0 {
		for _, c := range m.stack[idx+1:] {
			if c.stateLocked() == waiterWaiting {
				toInterrupt = append(toInterrupt, c)
			}
		}
	}
	queue.unlock()

	for _, w := range toInterrupt {
		w.finishInterrupted(outer)
	}
}
