package kernel

import (
	"context"
	"sync"
	"time"
)

// Clock stands in for xv6's global `ticks` counter and `tickslock`: a
// monotonic tick count advanced by Kernel.Tick. SleepTicks (the sleep(n)
// syscall) and Uptime are built on it.
type Clock struct {
	mu    sync.Mutex
	ticks uint64
}

// NewClock returns a stopped clock at tick 0; call Kernel.Tick to advance
// it.
func NewClock() *Clock {
	return &Clock{}
}

// Uptime returns the current tick count.
func (c *Clock) Uptime() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// tickChan is the wait channel every tick-sleeper blocks on, the Go
// analogue of xv6's sys_sleep sleeping on the address of the global ticks
// variable.
var tickChan = new(struct{})

// Tick advances the kernel's clock by one, mirroring the clock
// collaborator's interrupt handler ("acquire(&tickslock); ticks++;
// wakeup(&ticks); release(&tickslock)"). Any process blocked in SleepTicks
// is a candidate to be woken.
func (k *Kernel) Tick() {
	k.clock.mu.Lock()
	k.clock.ticks++
	k.clock.mu.Unlock()
	Wakeup(k, tickChan)
}

// Uptime returns the current tick count (the uptime() syscall).
func (k *Kernel) Uptime() uint64 { return k.clock.Uptime() }

// SleepTicks implements the sleep(n) syscall (spec §6.1, §5 "Cancellation /
// timeouts"): it blocks p, one clock tick at a time, until n ticks have
// elapsed or it is killed, checking p.Killed() between ticks exactly as
// xv6's sys_sleep loops "while(ticks - ticks0 < n){ if(killed(p)) return
// -1; sleep(&ticks, &tickslock); }". p goes SLEEPING (via Sleep, so the
// scheduler can run other work) rather than busy-waiting. Returns
// ErrKilled if killed before n ticks elapse, nil otherwise.
func SleepTicks(k *Kernel, p *Proc, n uint64) error {
	target := k.clock.Uptime() + n
	for k.clock.Uptime() < target {
		if p.Killed() {
			return ErrKilled
		}
		k.clock.mu.Lock()
		Sleep(p, tickChan, &k.clock.mu)
		k.clock.mu.Unlock()
	}
	if p.Killed() {
		return ErrKilled
	}
	return nil
}

// RunClock drives k's tick source every interval until ctx is cancelled,
// the Go stand-in for the timer-interrupt hardware a real kernel's clock
// collaborator rides on. cmd/psh's boot command runs this in its own
// goroutine alongside the per-CPU schedulers.
func (k *Kernel) RunClock(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.Tick()
		}
	}
}
