package kernel

// allocProc scans the table for an UNUSED slot (component B). The first
// UNUSED slot found is transitioned to USED while its lock is held, and
// returned still locked to the caller — matching xv6's allocproc contract
// exactly, so that Fork/Userinit can finish initializing the PCB before
// anyone else can observe it as USED. Slots that don't match are unlocked
// before moving on. If the table is full, no lock is held on return.
func (k *Kernel) allocProc() (*Proc, error) {
	for i := range k.procs {
		p := &k.procs[i]
		p.lock()
		if p.state != Unused {
			p.unlock()
			continue
		}

		p.priority = 0
		p.pid = k.pids.allocate()
		p.state = Used

		if k.allocFails() {
			k.freeProc(p)
			p.unlock()
			return nil, ErrAllocFailed
		}

		p.trapframe = &TrapFrame{}
		p.as = NewAddressSpace()
		p.sz = 0
		p.files = &FileTable{}
		p.killed = false
		p.xstate = 0
		p.waitChan = nil
		p.ctx = newProcContext()
		k.startProcGoroutine(p)
		return p, nil
	}
	return nil, ErrNoFreeSlot
}

// allocFails lets tests deterministically exercise allocproc's partial-
// allocation cleanup path (spec §4.B: failure of the trapframe/pagetable
// steps requires freeproc then lock release). There is no real memory
// exhaustion to trigger this in an in-memory simulation, so the injection
// point is the only way to reach it.
func (k *Kernel) allocFails() bool {
	if k.allocFailureInjector == nil {
		return false
	}
	return k.allocFailureInjector()
}

// SetAllocFailureInjector installs a predicate consulted once per
// allocProc call; when it returns true the allocation is unwound as if a
// collaborator allocation had failed. Intended for tests only.
func (k *Kernel) SetAllocFailureInjector(f func() bool) {
	k.allocFailureInjector = f
}

// freeProc releases a PCB's resources and returns the slot to UNUSED
// (component B). The caller must hold p's lock, and — because it zeroes
// parent, a field guarded by the wait lock — must also hold the wait lock
// whenever parent could already be non-nil (i.e. everywhere except
// allocProc's own failure-cleanup path, where parent was never set).
func (k *Kernel) freeProc(p *Proc) {
	p.trapframe = nil
	if p.as != nil {
		p.as.Free()
		p.as = nil
	}
	p.sz = 0
	p.pid = 0
	p.parent = nil
	p.name = [16]byte{}
	p.waitChan = nil
	p.killed = false
	p.xstate = 0
	p.priority = 0
	p.files = nil
	p.ctx = procContext{}
	p.cpu = nil
	p.state = Unused
}
