package kernel

// ProcSnapshot is one row of the lightweight process listing (ps),
// component I. Every field is copied out while the PCB's lock is held, so
// a caller never observes a torn state.
type ProcSnapshot struct {
	Pid      Pid
	Name     string
	State    string
	Priority int
}

// PsEnumerate returns a snapshot of every non-UNUSED slot in table order.
// The original listing this is modeled on had two bugs spec §4.I calls
// out explicitly, both fixed here: the state field must be copied in
// full (not truncated partway through the 16-byte array), and the scan
// must continue through the entire table rather than stopping at the
// first slot that isn't a match.
func (k *Kernel) PsEnumerate() []ProcSnapshot {
	out := make([]ProcSnapshot, 0, NPROC)
	for i := range k.procs {
		p := &k.procs[i]
		p.lock()
		if p.state != Unused {
			out = append(out, ProcSnapshot{
				Pid:      p.pid,
				Name:     p.Name(),
				State:    p.state.String(),
				Priority: p.priority,
			})
		}
		p.unlock()
	}
	return out
}

// ProcInfo is the richer per-process record (psinfo), adding parent pid
// and address-space size on top of ProcSnapshot.
type ProcInfo struct {
	Pid      Pid
	PPid     Pid
	Name     string
	State    string
	Priority int
	Size     uint64
}

// PsinfoEnumerate returns the extended listing. PPid is read under the
// wait lock since parent is wait-lock-guarded, not PCB-lock-guarded; the
// PCB lock is still taken for every other field so no row is torn.
func (k *Kernel) PsinfoEnumerate() []ProcInfo {
	out := make([]ProcInfo, 0, NPROC)
	for i := range k.procs {
		p := &k.procs[i]

		k.waitLock.Lock()
		var ppid Pid
		if p.parent != nil {
			ppid = p.parent.pid
		}
		k.waitLock.Unlock()

		p.lock()
		if p.state != Unused {
			out = append(out, ProcInfo{
				Pid:      p.pid,
				PPid:     ppid,
				Name:     p.Name(),
				State:    p.state.String(),
				Priority: p.priority,
				Size:     p.sz,
			})
		}
		p.unlock()
	}
	return out
}

// CPUSnapshot is one row of psinfo's per-CPU listing: which CPUs are
// currently running something, and what.
type CPUSnapshot struct {
	CPUNum int
	Name   string
}

// CpusEnumerate returns one record per CPU whose Proc is non-nil, the
// cpu_info half of psinfo (spec §4.I, §6.2). CPUs with no process running
// are omitted, same as the source's "only busy CPUs" behavior.
func (k *Kernel) CpusEnumerate() []CPUSnapshot {
	out := make([]CPUSnapshot, 0, len(k.cpus))
	for _, c := range k.cpus {
		p := c.Proc()
		if p == nil {
			continue
		}
		out = append(out, CPUSnapshot{CPUNum: c.ID(), Name: p.Name()})
	}
	return out
}

// SetPriority changes a live process's scheduling priority (component I).
// The original this is modeled on mutated priority without taking the
// PCB lock; spec §4.I's fix direction is to lock it like every other
// field mutation, which this does.
func (k *Kernel) SetPriority(pid Pid, priority int) error {
	for i := range k.procs {
		p := &k.procs[i]
		p.lock()
		if p.pid == pid && p.state != Unused {
			p.priority = priority
			p.unlock()
			return nil
		}
		p.unlock()
	}
	return ErrNoSuchProcess
}
