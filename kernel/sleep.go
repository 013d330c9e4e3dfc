package kernel

import "sync"

// Sleep puts the calling process to sleep on chan_ (component F). The
// caller must already hold lk, a lock protecting whatever condition it's
// about to wait on; Sleep takes the PCB lock before releasing lk, so no
// wakeup can be missed in the window between the caller's last check of
// its condition and actually going to sleep — the same "lock then
// release" ordering xv6's sleep uses to close that race.
//
// lk is never the PCB's own lock: Sleep always re-acquires it before
// returning, exactly mirroring the caller's lock discipline across the
// call.
func Sleep(p *Proc, chan_ Chan, lk sync.Locker) {
	p.lock()
	lk.Unlock()

	p.waitChan = chan_
	p.state = Sleeping
	p.sched()

	p.waitChan = nil
	p.unlock()

	lk.Lock()
}

// Wakeup scans the whole process table and moves every process sleeping
// on chan_ to RUNNABLE (component F). Per spec it must be called without
// holding any PCB lock; it takes each PCB's lock only for the instant
// needed to check and possibly flip its state, same as xv6's wakeup.
func Wakeup(k *Kernel, chan_ Chan) {
	for i := range k.procs {
		p := &k.procs[i]
		p.lock()
		if p.state == Sleeping && p.waitChan == chan_ {
			p.state = Runnable
		}
		p.unlock()
	}
}
