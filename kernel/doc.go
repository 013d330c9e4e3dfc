// Package kernel implements the process subsystem of a small teaching-grade
// kernel: a fixed-capacity process table, the process state machine, a
// per-CPU priority scheduler, sleep/wakeup on opaque wait channels, and
// fork/exit/wait with re-parenting to the init process.
//
// A process is a goroutine paired with a *Proc control block. A CPU is a
// goroutine running Kernel.Scheduler in a loop. The two communicate through
// a pair of unbuffered channels (see Proc.ctx in proc.go) that stand in for
// the swtch/sched two-point context switch of a real kernel: at any instant
// exactly one side of the pair is executing, the other parked, just as at
// most one of a process's kernel thread and its CPU's scheduler thread runs
// at a time on real hardware.
//
// Virtual memory, the file system, the trap/trampoline machinery and the
// low-level context-switch primitive are out of scope; they are named as
// collaborators (collab.go) with minimal in-memory implementations so the
// lifecycle can actually run and be tested without a real MMU or disk.
package kernel
