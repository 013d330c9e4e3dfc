package kernel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedPanicsIfCallerDoesNotHoldItsOwnLock(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	p, err := k.allocProc()
	require.NoError(t, err)
	p.state = Runnable
	p.unlock()

	require.Panics(t, func() { p.sched() })
}

func TestSchedPanicsIfStateIsStillRunning(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	p, err := k.allocProc()
	require.NoError(t, err)
	p.state = Running

	require.Panics(t, func() { p.sched() })
	p.unlock()
}

func TestYieldReturnsProcessToRunnableThenRunningAgain(t *testing.T) {
	k, stop := bootTestKernel(t, 1)
	defer stop()

	yields := make(chan struct{})
	done := make(chan struct{})
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		for i := 0; i < 3; i++ {
			k.Yield(p)
			yields <- struct{}{}
		}
		close(done)
		Exit(k, p, 0)
	})

	for i := 0; i < 3; i++ {
		<-yields
	}
	<-done
	awaitState(t, init, Zombie)
}

func TestSchedulerPrefersLowerPriorityNumber(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)

	order := make(chan int, 2)
	lowPrioBody := func(p *Proc, k *Kernel) {
		order <- 1
		Exit(k, p, 0)
	}
	highPrioBody := func(p *Proc, k *Kernel) {
		order <- 2
		Exit(k, p, 0)
	}

	// Allocate both directly and start the scheduler only once both are
	// Runnable. The higher-numbered priority sits first in table order, so
	// priority, not scan order, must be what decides which runs first.
	pHigh, err := k.allocProc()
	require.NoError(t, err)
	pHigh.body = highPrioBody
	pHigh.priority = 10
	pHigh.state = Runnable
	pHigh.unlock()

	pLow, err := k.allocProc()
	require.NoError(t, err)
	pLow.body = lowPrioBody
	pLow.priority = 1
	pLow.state = Runnable
	pLow.unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go k.Scheduler(ctx, 0)

	require.Equal(t, 1, <-order)
	require.Equal(t, 2, <-order)
}
