package kernel

import "errors"

var (
	// ErrNoFreeSlot is returned by allocproc when the process table is full.
	ErrNoFreeSlot = errors.New("kernel: no free process slot")

	// ErrAllocFailed is returned by fork/allocproc when a collaborator
	// (address space, trap frame) could not be allocated.
	ErrAllocFailed = errors.New("kernel: allocation failed")

	// ErrNoChildren is returned by Wait when the caller has no children.
	ErrNoChildren = errors.New("kernel: no children")

	// ErrKilled is returned by Wait and SleepTicks when the caller was
	// killed while blocked.
	ErrKilled = errors.New("kernel: process killed")

	// ErrNoSuchProcess is returned by Kill and SetPriority when no PCB
	// matches the given pid.
	ErrNoSuchProcess = errors.New("kernel: no such process")

	// ErrCopyOut is returned by Wait when the status word could not be
	// copied to the caller's address space; the child is deliberately not
	// freed so its exit status isn't lost (spec §7 class 4).
	ErrCopyOut = errors.New("kernel: copyout failed")

	// ErrInitExit is the panic reason when the init process calls Exit.
	ErrInitExit = errors.New("kernel: init exiting")
)
