package kernel

import (
	"context"
	"time"
)

// startProcGoroutine gives a freshly allocated PCB its kernel thread of
// control: a goroutine parked on ctx.resume, mirroring allocproc pointing
// a fresh context at forkret. The goroutine does not run p.body until the
// scheduler selects it for the first time.
func (k *Kernel) startProcGoroutine(p *Proc) {
	resume, parked := p.ctx.resume, p.ctx.parked
	go func() {
		<-resume
		k.forkret(p)
		p.body(p, k)
		panic("kernel: process body returned without calling Exit")
	}()
	_ = parked // documents that parked is the other half of the same handoff; used inside p.sched
}

// forkret is the entry point every freshly scheduled process lands on
// first. It releases the PCB lock still held from scheduler selection,
// runs the one-time filesystem-equivalent initialization exactly once
// system-wide, and would otherwise return to user space via the
// trampoline — here, that's simply returning control to p.body.
func (k *Kernel) forkret(p *Proc) {
	p.unlock()
	k.fsInitOnce.Do(func() {
		if k.onFsInit != nil {
			k.onFsInit()
		}
	})
}

// sched is the only permitted bridge from a running process back to its
// CPU's scheduler loop (component E). Its contract, straight from spec
// §4.E, panics on violation:
//
//   - the caller holds its own PCB lock (other locks it may hold are not
//     checked)
//   - the caller's state is not RUNNING (already mutated before calling)
//
// For an exiting process sched never returns: the scheduler only ever
// reschedules RUNNABLE processes, and exit leaves this PCB ZOMBIE, so the
// receive on ctx.resume blocks forever. That is intentional and mirrors
// "exit... does not return" — the goroutine simply stays parked, the Go
// analogue of a zombie's kernel stack sitting unused until freeproc
// reclaims the slot for an unrelated process with its own fresh goroutine.
func (p *Proc) sched() {
	if !p.lockHeld {
		panic("kernel: sched called without holding the caller's own PCB lock")
	}
	if p.state == Running {
		panic("kernel: sched called while state is still RUNNING")
	}
	p.ctx.parked <- struct{}{}
	<-p.ctx.resume
}

// Yield gives up the CPU for one scheduling round, returning the process
// to RUNNABLE (RUNNING -> RUNNABLE in the state machine).
func (k *Kernel) Yield(p *Proc) {
	p.lock()
	p.state = Runnable
	p.sched()
	p.unlock()
}

// schedulerTickBackoff bounds how long a CPU with nothing RUNNABLE spins
// before rescanning. Real hardware instead blocks on the next interrupt;
// a goroutine has no such primitive, so this is a pragmatic, non-spec
// concession to keep an idle CPU from pegging a core. It does not change
// any scheduling decision, only how often an empty scan repeats.
const schedulerTickBackoff = 200 * time.Microsecond

// Scheduler is the never-returning per-CPU scheduler loop (component D).
// Each configured CPU calls this once after boot, in its own goroutine.
// Every iteration it enables interrupts (here: simply marks the CPU ready
// to allow e.g. the clock to mark time and kill to proceed, deadlock-
// avoidance, spec step 1), walks the whole table for the highest-priority
// RUNNABLE candidate (ties broken first-match, scan order is table order,
// no aging — spec is explicit there is no fairness guarantee beyond scan
// order), and context-switches into it.
//
// Scheduler only returns early if ctx is cancelled; that is a deployment/
// test affordance layered on top of a loop that is otherwise exactly the
// "never returns" one spec §4.D describes — a kernel proper has no
// concept of shutting its scheduler down, but a Go process embedding one
// does.
func (k *Kernel) Scheduler(ctx context.Context, cpuID int) {
	c := k.cpus[cpuID]
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		c.IntEna = true
		c.mu.Unlock()

		var best *Proc
		for i := range k.procs {
			p := &k.procs[i]
			p.lock()
			if p.state != Runnable {
				p.unlock()
				continue
			}
			switch {
			case best == nil:
				best = p
			case p.priority < best.priority:
				best.unlock()
				best = p
			default:
				p.unlock()
			}
		}

		if best == nil {
			time.Sleep(schedulerTickBackoff)
			continue
		}

		best.state = Running
		best.cpu = c
		c.setProc(best)

		best.ctx.resume <- struct{}{}
		<-best.ctx.parked

		c.setProc(nil)
		best.cpu = nil
		best.unlock()
	}
}
