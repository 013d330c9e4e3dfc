package main

import (
	"fmt"
	"log/slog"

	"github.com/go-teaching-kernel/procsched/kernel"
)

// initCodeImage is the fixed byte array every psh run copies into the
// first process's address space (component J). Its bytes are never
// decoded by anything in this package — there is no trap/trampoline layer
// to interpret them — it exists only so Userinit has a real image to
// copy into the bootstrap process's address space, matching xv6's
// initcode.S byte-for-byte-irrelevant role here.
var initCodeImage = []byte{0x13, 0x00, 0x00, 0x00}

// demoConfig controls the shape of the fork/sleep/exit tree psh spins up
// to exercise a live kernel, since the core spec (deliberately) has no
// CLI or real user programs of its own.
type demoConfig struct {
	workers     int
	sleepTicks  uint64
	yieldRounds int
	workerPrio  int
}

// runDemoWorkload is the init process's body: fork workers, wait for all
// of them, report what was reaped. Every worker forked from here is a
// direct child of the process running this body, which on a freshly
// booted kernel is always the init process (pid 1).
func runDemoWorkload(cfg demoConfig, log *slog.Logger) kernel.ProcBody {
	return func(p *kernel.Proc, k *kernel.Kernel) {
		children := make([]kernel.Pid, 0, cfg.workers)
		for i := 0; i < cfg.workers; i++ {
			idx := i
			childPid, err := kernel.Fork(k, p, workerBody(idx, cfg, log))
			if err != nil {
				log.Warn("fork failed", "worker", idx, "err", err)
				continue
			}
			if err := k.SetPriority(childPid, cfg.workerPrio-idx); err != nil {
				log.Warn("set_priority failed", "pid", childPid, "err", err)
			}
			children = append(children, childPid)
			log.Info("forked worker", "pid", childPid, "worker", idx)
		}

		for range children {
			pid, err := kernel.Wait(k, p, 0)
			if err != nil {
				log.Warn("wait failed", "err", err)
				break
			}
			log.Info("reaped worker", "pid", pid)
		}

		kernel.Exit(k, p, 0)
	}
}

// workerBody is a demo worker process: it yields a few rounds to exercise
// the priority scheduler, sleeps on the clock to exercise SleepTicks, then
// exits with its own index as status.
func workerBody(idx int, cfg demoConfig, log *slog.Logger) kernel.ProcBody {
	return func(p *kernel.Proc, k *kernel.Kernel) {
		for i := 0; i < cfg.yieldRounds; i++ {
			k.Yield(p)
		}
		if cfg.sleepTicks > 0 {
			if err := kernel.SleepTicks(k, p, cfg.sleepTicks); err != nil {
				log.Warn("worker killed during sleep", "worker", idx, "err", err)
				kernel.Exit(k, p, -1)
				return
			}
		}
		kernel.Exit(k, p, int32(idx))
	}
}

// shortWorkloadBody is exectime's single timed workload: a worker that
// does a small fixed amount of work with no open-ended sleep, so exectime
// reports a small, bounded tick count.
func shortWorkloadBody() kernel.ProcBody {
	return func(p *kernel.Proc, k *kernel.Kernel) {
		for i := 0; i < 3; i++ {
			k.Yield(p)
		}
		kernel.Exit(k, p, 0)
	}
}

func fmtPid(pid kernel.Pid) string { return fmt.Sprintf("%d", pid) }
