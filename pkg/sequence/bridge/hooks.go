package bridge

import "sync"

// closeHooks is an ordered registry of zero-argument callbacks fired exactly
// once, when the consumer first observes end-of-input. Hooks registered after
// firing run immediately.
type closeHooks struct {
	mu    sync.Mutex
	fns   []func()
	fired bool
}

func (h *closeHooks) add(fn func()) {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		fn()
		return
	}
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

// fire runs all registered hooks in registration order. Subsequent calls are
// no-ops. The lock is released while hooks run so a hook may register
// further hooks (which then run immediately).
func (h *closeHooks) fire() {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		return
	}
	h.fired = true
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
