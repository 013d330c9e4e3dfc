package kernel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSleepTicksReturnsAfterTargetElapses(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	result := make(chan error, 1)
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		result <- SleepTicks(k, p, 3)
		Exit(k, p, 0)
	})

	for i := 0; i < 3; i++ {
		time.Sleep(10 * time.Millisecond)
		k.Tick()
	}

	require.NoError(t, <-result)
	awaitState(t, init, Zombie)
}

func TestSleepTicksReturnsErrKilledWhenKilledMidSleep(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	result := make(chan error, 1)
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		result <- SleepTicks(k, p, 1000)
		Exit(k, p, 0)
	})

	awaitState(t, init, Sleeping)
	require.NoError(t, Kill(k, init.Pid()))

	require.ErrorIs(t, <-result, ErrKilled)
	awaitState(t, init, Zombie)
}

func TestUptimeAdvancesWithTick(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	require.Equal(t, uint64(0), k.Uptime())
	k.Tick()
	k.Tick()
	require.Equal(t, uint64(2), k.Uptime())
}

func TestCpusEnumerateReportsOnlyBusyCPUs(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	var guard sync.Mutex
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		guard.Lock()
		Sleep(p, "park", &guard)
		guard.Unlock()
		Exit(k, p, 0)
	})

	require.Eventually(t, func() bool {
		return len(k.CpusEnumerate()) == 0
	}, 2*time.Second, time.Millisecond, "no process should be RUNNING while init sleeps")

	Wakeup(k, "park")
	awaitState(t, init, Zombie)
}
