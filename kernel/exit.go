package kernel

// Exit terminates the calling process with the given status (component
// G). It never returns to its caller: it closes every open file,
// re-parents its children to the init process, wakes whoever might be
// waiting on it, marks itself ZOMBIE, and parks forever via sched — the
// same sequence as xv6's exit, including the flagged bug fix from spec
// §4.G (children are re-parented under the wait lock before the parent's
// own state flips to ZOMBIE, so a racing Wait can never observe a
// reparented-but-still-RUNNING target).
//
// Exit panics if called on the init process (the spec's "panic: init
// exiting" condition) and panics if sched ever returns to it, which by
// construction it cannot: a ZOMBIE is never selected by the scheduler.
func Exit(k *Kernel, p *Proc, status int32) {
	if p == k.InitProc() {
		panic(ErrInitExit)
	}

	p.files.CloseAll()

	k.waitLock.Lock()
	k.reparent(p)
	Wakeup(k, p.parent)

	p.lock()
	p.xstate = status
	p.state = Zombie
	k.waitLock.Unlock()

	p.sched()
	panic("kernel: exited process was rescheduled")
}

// reparent hands every child of p to the init process, waking init in
// case it is blocked in Wait and the reparented child is already a
// zombie waiting to be reaped. Caller must hold k.waitLock.
func (k *Kernel) reparent(p *Proc) {
	init := k.InitProc()
	for i := range k.procs {
		child := &k.procs[i]
		if child.parent == p {
			child.parent = init
			Wakeup(k, init)
		}
	}
}
