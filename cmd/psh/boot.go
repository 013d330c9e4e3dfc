package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-teaching-kernel/procsched/kernel"
)

// liveKernel is a booted Kernel plus the goroutines (schedulers, clock)
// driving it and a func to stop them, the CLI-side equivalent of the
// teacher's cpus_start: one scheduler goroutine per configured CPU, plus
// one clock-tick driver, all cancellable together.
type liveKernel struct {
	k      *kernel.Kernel
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

// bootKernel constructs a Kernel with numCPU schedulers and a tick driver
// running at tickInterval, logging the boot sequence through log through
// slog at Info, the way cmd/consumption in the retrieval pack logs its own
// startup.
func bootKernel(numCPU int, tickInterval time.Duration, log *slog.Logger) *liveKernel {
	k := kernel.New(kernel.Config{NumCPU: numCPU}, func() {
		log.Info("fsinit: filesystem initialized for the first time")
	})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	for i := 0; i < k.NumCPU(); i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			k.Scheduler(ctx, id)
		}(i)
	}
	log.Info("boot: schedulers started", "cpus", numCPU)

	wg.Add(1)
	go func() {
		defer wg.Done()
		k.RunClock(ctx, tickInterval)
	}()
	log.Info("boot: clock started", "interval", tickInterval)

	return &liveKernel{k: k, cancel: cancel, wg: &wg}
}

// shutdown cancels every goroutine bootKernel started and waits for them
// to return.
func (lk *liveKernel) shutdown() {
	lk.cancel()
	lk.wg.Wait()
}

// waitForState polls p until it reaches want or timeout elapses, mirroring
// the kernel package's own awaitState test helper: a CLI driving a
// concurrent scheduler has no other way to learn a process finished.
func waitForState(p *kernel.Proc, want kernel.ProcState, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if p.State() == want {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
