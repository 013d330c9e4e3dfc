package kernel

// Sbrk implements the sbrk(n) syscall (spec §6.1): grows or shrinks p's
// user memory by n bytes via the address-space collaborator and returns
// the size *before* the change, mirroring growproc/sys_sbrk's "return old
// brk, or -1 on failure" contract. p's own lock guards p.sz (spec §3,
// "address space & kernel stack... guarded by PCB lock").
func Sbrk(p *Proc, n int64) (uint64, error) {
	p.lock()
	defer p.unlock()

	old := p.sz
	newSz, err := p.as.Grow(n)
	if err != nil {
		return 0, err
	}
	p.sz = newSz
	return old, nil
}

// Getpid implements the getpid() syscall. Pid is immutable once assigned,
// so this is exactly Proc.Pid with a name matching the rest of the
// syscall surface in spec §6.1.
func Getpid(p *Proc) Pid { return p.Pid() }
