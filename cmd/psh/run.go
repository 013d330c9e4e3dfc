package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-teaching-kernel/procsched/kernel"
)

const (
	tickIntervalDefault = 5 * time.Millisecond
	runDurationDefault  = 2 * time.Second
)

func demoFlags(cmd *cobra.Command) (numCPU int, cfg demoConfig, tickInterval, duration time.Duration) {
	numCPU, _ = cmd.Flags().GetInt("cpus")
	workers, _ := cmd.Flags().GetInt("workers")
	sleepTicks, _ := cmd.Flags().GetUint64("sleep-ticks")
	tickInterval, _ = cmd.Flags().GetDuration("tick-interval")
	duration, _ = cmd.Flags().GetDuration("duration")

	cfg = demoConfig{
		workers:     workers,
		sleepTicks:  sleepTicks,
		yieldRounds: 3,
		workerPrio:  10,
	}
	return
}

// runBoot boots a kernel, runs the demo workload to completion (or until
// duration elapses), and logs the outcome. This is the only place a
// caller can actually watch the scheduler loop, sleep/wakeup and
// fork/exit/wait operate concurrently, since the core spec explicitly
// carries no CLI of its own.
func runBoot(cmd *cobra.Command, _ []string) error {
	log := slog.Default()
	numCPU, cfg, tickInterval, duration := demoFlags(cmd)

	lk := bootKernel(numCPU, tickInterval, log)
	defer lk.shutdown()

	init := lk.k.Userinit(initCodeImage, runDemoWorkload(cfg, log))
	log.Info("userinit: first process created", "pid", init.Pid(), "name", init.Name())

	if !waitForState(init, kernel.Zombie, duration) {
		log.Warn("demo workload did not finish within duration", "duration", duration)
		return nil
	}
	log.Info("demo workload finished", "pid", init.Pid())
	return nil
}

// runPs boots the demo workload, lets it run for the configured duration,
// and prints a ps-style snapshot of whatever is alive at that instant.
func runPs(cmd *cobra.Command, _ []string) error {
	log := slog.Default()
	numCPU, cfg, tickInterval, duration := demoFlags(cmd)

	lk := bootKernel(numCPU, tickInterval, log)
	defer lk.shutdown()

	init := lk.k.Userinit(initCodeImage, runDemoWorkload(cfg, log))
	waitForState(init, kernel.Zombie, duration)

	renderPs(lk.k.PsEnumerate())
	return nil
}

// runPsinfo is runPs plus the per-CPU listing.
func runPsinfo(cmd *cobra.Command, _ []string) error {
	log := slog.Default()
	numCPU, cfg, tickInterval, duration := demoFlags(cmd)

	lk := bootKernel(numCPU, tickInterval, log)
	defer lk.shutdown()

	init := lk.k.Userinit(initCodeImage, runDemoWorkload(cfg, log))
	waitForState(init, kernel.Zombie, duration)

	renderPsinfo(lk.k.PsinfoEnumerate(), lk.k.CpusEnumerate())
	return nil
}

// runSet boots the demo workload, waits for its workers to be forked,
// reprioritizes one of them mid-run (--pid, or the lowest live pid if
// unset), and prints ps before and after so the effect is visible.
func runSet(cmd *cobra.Command, _ []string) error {
	log := slog.Default()
	numCPU, cfg, tickInterval, duration := demoFlags(cmd)
	targetPid, _ := cmd.Flags().GetInt("pid")
	priority, _ := cmd.Flags().GetInt("priority")

	lk := bootKernel(numCPU, tickInterval, log)
	defer lk.shutdown()

	init := lk.k.Userinit(initCodeImage, runDemoWorkload(cfg, log))

	// Give the demo a moment to fork its workers before we try to find one
	// to reprioritize.
	time.Sleep(tickInterval * 4)

	pid := kernel.Pid(targetPid)
	if pid == 0 {
		pid = lowestLivePid(lk.k, init.Pid())
	}
	if pid == 0 {
		fmt.Println("no live worker to reprioritize")
	} else {
		fmt.Println("before:")
		renderPs(lk.k.PsEnumerate())

		if err := lk.k.SetPriority(pid, priority); err != nil {
			log.Warn("set_priority failed", "pid", pid, "err", err)
		} else {
			log.Info("set_priority applied", "pid", pid, "priority", priority)
		}

		fmt.Println("after:")
		renderPs(lk.k.PsEnumerate())
	}

	waitForState(init, kernel.Zombie, duration)
	return nil
}

// lowestLivePid finds the lowest pid in the process table that is not
// excludePid, the demo-friendly stand-in for "the user already knows
// which pid to reprioritize" in a system with no persistent state across
// runs.
func lowestLivePid(k *kernel.Kernel, excludePid kernel.Pid) kernel.Pid {
	var best kernel.Pid
	for _, row := range k.PsEnumerate() {
		if row.Pid == excludePid {
			continue
		}
		if best == 0 || row.Pid < best {
			best = row.Pid
		}
	}
	return best
}

// runExectime times a fork+wait round trip against the kernel's clock,
// the Go-native stand-in for exectime.c's "time a fork+exec+wait" demo.
func runExectime(cmd *cobra.Command, _ []string) error {
	log := slog.Default()
	tickInterval, _ := cmd.Flags().GetDuration("tick-interval")

	lk := bootKernel(1, tickInterval, log)
	defer lk.shutdown()

	done := make(chan struct{})
	body := func(p *kernel.Proc, k *kernel.Kernel) {
		if _, err := kernel.Fork(k, p, shortWorkloadBody()); err != nil {
			log.Warn("fork failed", "err", err)
			kernel.Exit(k, p, 1)
			return
		}
		fmt.Printf("first Current system time: %d\n", k.Uptime())
		if _, err := kernel.Wait(k, p, 0); err != nil {
			log.Warn("wait failed", "err", err)
		}
		fmt.Printf("last Current system time: %d\n", k.Uptime())
		close(done)
		kernel.Exit(k, p, 0)
	}

	init := lk.k.Userinit(initCodeImage, body)
	<-done
	waitForState(init, kernel.Zombie, 2*time.Second)
	return nil
}
