package kernel

import "sync"

// NPROC is the fixed capacity of the process table. Matches xv6's default;
// there is no dynamic resizing (spec §1 Non-goals).
const NPROC = 64

// CPU is a per-CPU record: the PCB currently running here, if any, plus
// the bookkeeping a real kernel keeps for the spinlock layer's interrupt
// discipline (§5). There is no real interrupt hardware to drive Noff/
// IntEna from: Scheduler sets IntEna at the top of each iteration, Noff is
// never updated, and sched checks neither of them (see sched.go).
type CPU struct {
	mu     sync.Mutex
	id     int
	proc   *Proc
	Noff   int
	IntEna bool
}

// ID returns the CPU's logical index.
func (c *CPU) ID() int { return c.id }

// Proc returns the PCB currently running on this CPU, or nil.
func (c *CPU) Proc() *Proc {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proc
}

func (c *CPU) setProc(p *Proc) {
	c.mu.Lock()
	c.proc = p
	c.mu.Unlock()
}

// Config selects the CPU count for a Kernel; the process table capacity is
// fixed at NPROC. Collaborators are constructed fresh per Kernel by New; there is nothing
// here to inject because the in-memory collaborators in this package carry
// no external configuration (no real disk, no real MMU).
type Config struct {
	NumCPU int // number of scheduler goroutines to run; must be >= 1
}

// Kernel owns every piece of global mutable state spec §9 calls out as a
// process-wide singleton: the process table, the PID counter, the wait
// lock, the CPU array, the init-process pointer, and the fsinit-once
// latch. It is constructed once at boot and passed by reference from then
// on — never package-level globals, so a test can stand up as many
// independent kernels as it likes.
type Kernel struct {
	procs    [NPROC]Proc
	pids     *pidAllocator
	waitLock sync.Mutex
	cpus     []*CPU
	clock    *Clock

	initMu   sync.Mutex
	initProc *Proc

	fsInitOnce sync.Once
	onFsInit   func()

	allocFailureInjector func() bool
}

// New constructs a Kernel with every table slot UNUSED and its kernel
// stack address assigned (procinit in xv6: one kstack per slot, assigned
// once at boot, never reused differently). onFsInit, if non-nil, is
// invoked exactly once, the first time any process is ever scheduled
// (forkret's "first" latch, spec §4.E) — the Go stand-in for the
// filesystem collaborator's fsinit(ROOTDEV).
func New(cfg Config, onFsInit func()) *Kernel {
	if cfg.NumCPU < 1 {
		cfg.NumCPU = 1
	}
	k := &Kernel{
		pids:     newPidAllocator(),
		clock:    NewClock(),
		onFsInit: onFsInit,
	}
	for i := range k.procs {
		k.procs[i].state = Unused
		k.procs[i].slot = i
		k.procs[i].kstack = uintptr(i+1) * pageSize * 2
	}
	k.cpus = make([]*CPU, cfg.NumCPU)
	for i := range k.cpus {
		k.cpus[i] = &CPU{id: i}
	}
	return k
}

// NumCPU returns the number of configured CPUs.
func (k *Kernel) NumCPU() int { return len(k.cpus) }

// Clock returns the kernel's tick source, exposed so a driver (cmd/psh, or
// a test) can advance it.
func (k *Kernel) Clock() *Clock { return k.clock }

// CPUs returns the kernel's per-CPU records, for introspection.
func (k *Kernel) CPUs() []*CPU { return k.cpus }
