package kernel

import "encoding/binary"

// Wait blocks parent until one of its children exits, reaps the first
// zombie child it finds, copies that child's exit status to addr in
// parent's own address space (if addr is non-zero), and returns the
// reaped child's pid (component G). It returns ErrNoChildren if parent
// has no children at all, and ErrKilled if parent has been killed while
// waiting with none yet to reap — both checked only after a full scan
// turns up no zombie, exactly as xv6 orders the checks.
func Wait(k *Kernel, parent *Proc, addr uintptr) (Pid, error) {
	k.waitLock.Lock()
	for {
		haveChildren := false
		for i := range k.procs {
			child := &k.procs[i]
			if child.parent != parent {
				continue
			}
			haveChildren = true

			child.lock()
			if child.state == Zombie {
				pid := child.pid
				if addr != 0 {
					var buf [4]byte
					binary.LittleEndian.PutUint32(buf[:], uint32(child.xstate))
					if err := parent.as.CopyOut(addr, buf[:]); err != nil {
						child.unlock()
						k.waitLock.Unlock()
						return 0, ErrCopyOut
					}
				}
				k.freeProc(child)
				child.unlock()
				k.waitLock.Unlock()
				return pid, nil
			}
			child.unlock()
		}

		if !haveChildren {
			k.waitLock.Unlock()
			return 0, ErrNoChildren
		}
		if parent.Killed() {
			k.waitLock.Unlock()
			return 0, ErrKilled
		}

		Sleep(parent, parent, &k.waitLock)
	}
}
