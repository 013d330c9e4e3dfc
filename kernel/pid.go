package kernel

import "sync"

// pidAllocator is a process-wide monotonic counter guarded by a dedicated
// lock, separate from every PCB lock (spec §5 lock order rule 2: it is a
// leaf, never held across another acquisition). PIDs start at 1 and are
// never reused; values issued in real-time order are strictly increasing
// (spec invariant 6).
type pidAllocator struct {
	mu   sync.Mutex
	next Pid
}

func newPidAllocator() *pidAllocator {
	return &pidAllocator{next: 1}
}

// allocate returns the current counter value and post-increments it.
// Overflow is treated as a saturating limit: the counter is not allowed to
// wrap back to a previously issued value, and a wrap is a fatal bug, not a
// recoverable error (spec §4.A: "overflow is unspecified... implementers
// may panic").
func (a *pidAllocator) allocate() Pid {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.next == (1<<31 - 1) {
		panic("kernel: pid counter overflow")
	}
	pid := a.next
	a.next++
	return pid
}
