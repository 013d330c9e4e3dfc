package kernel

import (
	"fmt"
	"sync"
)

// NOFILE is the number of open-file slots a process owns, matching xv6.
const NOFILE = 16

// TrapFrame is the saved user-register snapshot a PCB owns a pointer to.
// Nothing in this package decodes it; it exists so fork's trap-frame copy
// and the bootstrap process's priming (component J) have somewhere to
// write, faithful to the data model in spec §3 even though the trap/
// trampoline machinery itself is out of scope.
type TrapFrame struct {
	EPC uint64 // user program counter
	SP  uint64 // user stack pointer
	A0  uint64 // return-value register; fork zeroes this in the child
}

// AddressSpace stands in for the VM collaborator (create_pagetable,
// map_trampoline, map_trapframe, user_copyout/in, uvmalloc/dealloc/copy/
// free/first). It is a flat, in-memory analogue of a user page table: good
// enough to exercise fork's address-space duplication and wait's
// copy-out-of-status path, including the copyout failure case, without a
// real MMU.
type AddressSpace struct {
	mu   sync.Mutex
	mem  map[uintptr][]byte
	size uint64
	// unmapped, when set, makes CopyOut/CopyIn at that address fail; used
	// to exercise the copyout-failure path (spec §7 class 4).
	unmapped map[uintptr]bool
}

// NewAddressSpace returns an address space with only the trampoline/
// trapframe mappings conceptually present (no user pages), mirroring what
// allocproc's proc_pagetable builds for a freshly allocated PCB.
func NewAddressSpace() *AddressSpace {
	return &AddressSpace{mem: make(map[uintptr][]byte)}
}

// First copies an initial program image into a freshly allocated single
// user page, used only by the first-process bootstrap (component J).
func (a *AddressSpace) First(image []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := make([]byte, len(image))
	copy(buf, image)
	a.mem[0] = buf
	a.size = pageSize
}

// Grow or shrink user memory by n bytes (sbrk), returning the new size.
func (a *AddressSpace) Grow(n int64) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 0 && uint64(-n) > a.size {
		return 0, fmt.Errorf("%w: shrink below zero", ErrAllocFailed)
	}
	a.size = uint64(int64(a.size) + n)
	return a.size, nil
}

// Copy duplicates the address space, the way uvmcopy duplicates a parent's
// user pages into a child's fresh page table during fork.
func (a *AddressSpace) Copy() *AddressSpace {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := NewAddressSpace()
	out.size = a.size
	for k, v := range a.mem {
		cp := make([]byte, len(v))
		copy(cp, v)
		out.mem[k] = cp
	}
	return out
}

// Free releases every user page; called by freeproc.
func (a *AddressSpace) Free() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mem = nil
	a.size = 0
}

// Unmap marks an address as failing CopyOut/CopyIn, simulating a bad user
// pointer (spec §7 class 4).
func (a *AddressSpace) Unmap(addr uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unmapped == nil {
		a.unmapped = make(map[uintptr]bool)
	}
	a.unmapped[addr] = true
}

// CopyOut writes src to addr in this address space, failing if addr was
// explicitly unmapped via Unmap.
func (a *AddressSpace) CopyOut(addr uintptr, src []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unmapped[addr] {
		return fmt.Errorf("%w: address %#x not mapped", ErrCopyOut, addr)
	}
	buf := make([]byte, len(src))
	copy(buf, src)
	a.mem[addr] = buf
	return nil
}

// CopyIn reads len(dst) bytes from addr into dst.
func (a *AddressSpace) CopyIn(addr uintptr, dst []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unmapped[addr] {
		return fmt.Errorf("%w: address %#x not mapped", ErrCopyOut, addr)
	}
	src, ok := a.mem[addr]
	if !ok {
		return fmt.Errorf("%w: address %#x not mapped", ErrCopyOut, addr)
	}
	copy(dst, src)
	return nil
}

const pageSize = 4096

// OpenFile is a refcounted handle standing in for the FS collaborator's
// struct file. Real I/O is out of scope; only the refcounting discipline
// fork/exit depend on is modeled.
type OpenFile struct {
	mu   sync.Mutex
	refs int
	Name string
}

// NewOpenFile returns a file handle with one reference.
func NewOpenFile(name string) *OpenFile {
	return &OpenFile{refs: 1, Name: name}
}

// Dup increments the refcount and returns the same handle, mirroring
// filedup.
func (f *OpenFile) Dup() *OpenFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs++
	return f
}

// Close decrements the refcount, mirroring fileclose.
func (f *OpenFile) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs--
}

// Refs reports the current reference count; exported for tests.
func (f *OpenFile) Refs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refs
}

// FileTable is the NOFILE-wide array of open-file slots plus a working
// directory handle, the FS collaborator surface fork/exit depend on
// (filedup, fileclose, idup, iput, namei).
type FileTable struct {
	Files [NOFILE]*OpenFile
	Cwd   *OpenFile
}

// Namei resolves a path to a directory handle; a stand-in for the real
// filesystem's namei("/"), used only by the bootstrap process.
func Namei(path string) *OpenFile {
	return NewOpenFile(path)
}

// Copy duplicates every occupied slot and the cwd handle via Dup, the way
// fork duplicates the parent's open-file references.
func (t *FileTable) Copy() *FileTable {
	out := &FileTable{}
	for i, f := range t.Files {
		if f != nil {
			out.Files[i] = f.Dup()
		}
	}
	if t.Cwd != nil {
		out.Cwd = t.Cwd.Dup()
	}
	return out
}

// CloseAll closes every occupied slot and releases cwd, mirroring exit's
// file/cwd teardown (begin_op/iput/end_op collapse into a single Close
// here since there is no real filesystem transaction log to guard).
func (t *FileTable) CloseAll() {
	for i, f := range t.Files {
		if f != nil {
			f.Close()
			t.Files[i] = nil
		}
	}
	if t.Cwd != nil {
		t.Cwd.Close()
		t.Cwd = nil
	}
}
