package kernel

// Fork creates a child of parent: a fresh PCB with a copy of parent's
// address space, open files, size and trapframe, the child's return
// value patched to 0 (component G). The returned pid is the child's, as
// observed by the parent; the child itself "returns" 0, modeled here by
// zeroing its trapframe's A0 before it ever runs.
//
// childBody is the Go-native stand-in for the child's program image.
// Real fork duplicates the parent's whole address space including its
// program counter, so the child resumes from the very next instruction
// after the fork() call; a goroutine has no program counter to duplicate
// this way. Passing nil makes the child run the identical body value the
// parent is running (the "no exec" case — a preforking worker pool is
// the common real-world example); passing a distinct body is the
// fork-then-exec case, standing in for a child that immediately execs a
// different program, which is the dominant pattern in practice and the
// one every caller in this codebase uses.
func Fork(k *Kernel, parent *Proc, childBody ProcBody) (Pid, error) {
	child, err := k.allocProc()
	if err != nil {
		return 0, err
	}

	child.as = parent.as.Copy()
	child.sz = parent.sz

	*child.trapframe = *parent.trapframe
	child.trapframe.A0 = 0

	child.files = parent.files.Copy()
	child.setName(parent.Name())
	if childBody != nil {
		child.body = childBody
	} else {
		child.body = parent.body
	}

	childPid := child.pid

	// Release the child's own lock before taking the wait lock: spec's lock
	// order requires wait_lock before any PCB lock, and Wait takes
	// waitLock then a child's lock, so holding child's lock across the
	// waitLock acquire here would be a classic lock-order inversion.
	child.unlock()

	k.waitLock.Lock()
	child.parent = parent
	k.waitLock.Unlock()

	child.lock()
	child.state = Runnable
	child.unlock()

	return childPid, nil
}
