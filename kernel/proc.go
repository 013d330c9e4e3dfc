package kernel

import "sync"

// Pid is a process identifier. PIDs start at 1 and are never reused.
type Pid int32

// Chan is an opaque wait-channel identifier for Sleep/Wakeup. Any stable,
// comparable value is legal; by convention code sleeps on the address of
// the data it's waiting for.
type Chan any

// ProcBody is the "program" a process runs: the stand-in for a user binary
// in a kernel with no real user/supervisor boundary. A body must terminate
// by calling Exit; returning without doing so is a bug in the body,
// not in the kernel, and panics.
type ProcBody func(p *Proc, k *Kernel)

// procContext is the channel pair a process's goroutine and its CPU's
// scheduler goroutine hand control back and forth across — the Go
// analogue of the saved-register context pair swtch toggles between.
// Exactly one side is ever runnable at a time: the scheduler blocks on
// <-parked while the process runs, the process blocks on <-resume while
// the scheduler (or some other CPU, later) runs.
type procContext struct {
	resume chan struct{}
	parked chan struct{}
}

func newProcContext() procContext {
	return procContext{resume: make(chan struct{}), parked: make(chan struct{})}
}

// Proc is one process control block. Its lifetime equals its table slot's
// lifetime; slots are reused, never reallocated. Field grouping mirrors
// spec §3:
//
//   - identity & scheduling fields are guarded by mu, the PCB's own lock
//   - parent and name are guarded by the kernel's global wait lock
//   - files/cwd are guarded by mu while the process is alive
type Proc struct {
	mu       sync.Mutex
	lockHeld bool // set/cleared only while mu is held; backs the sched() invariant check

	state    ProcState
	pid      Pid
	priority int
	waitChan Chan
	killed   bool
	xstate   int32

	trapframe *TrapFrame
	as        *AddressSpace
	sz        uint64
	kstack    uintptr

	parent *Proc
	name   [16]byte

	files *FileTable

	ctx  procContext
	slot int
	cpu  *CPU
	body ProcBody
}

// Name returns the process name as a string, trimmed at the first NUL.
func (p *Proc) Name() string {
	n := 0
	for n < len(p.name) && p.name[n] != 0 {
		n++
	}
	return string(p.name[:n])
}

func (p *Proc) setName(name string) {
	var buf [16]byte
	copy(buf[:], name)
	p.name = buf
}

// Pid returns the process's pid. Safe to call without holding p's lock:
// pid is immutable from allocation until freeproc zeroes it, and callers
// that care about that race already hold the lock or the wait lock.
func (p *Proc) Pid() Pid { return p.pid }

// State returns the current state. Callers wanting a consistent snapshot
// across multiple fields should hold p's lock themselves.
func (p *Proc) State() ProcState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Priority returns the current scheduling priority.
func (p *Proc) Priority() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.priority
}

// Killed reports whether kill has been delivered to this process.
func (p *Proc) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

func (p *Proc) lock() {
	p.mu.Lock()
	p.lockHeld = true
}

func (p *Proc) unlock() {
	p.lockHeld = false
	p.mu.Unlock()
}
