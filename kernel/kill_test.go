package kernel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKillWakesSleepingProcess(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	var guard sync.Mutex
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		guard.Lock()
		Sleep(p, "forever", &guard)
		guard.Unlock()
		Exit(k, p, 0)
	})

	awaitState(t, init, Sleeping)

	require.NoError(t, Kill(k, init.Pid()))
	require.True(t, init.Killed())

	awaitState(t, init, Zombie)
}

func TestKillUnknownPid(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	require.ErrorIs(t, Kill(k, Pid(999)), ErrNoSuchProcess)
}

func TestWaitReturnsErrKilledWhenNoZombieChildren(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	childGate := make(chan struct{})
	var childGuard sync.Mutex
	childBody := func(p *Proc, k *Kernel) {
		childGuard.Lock()
		close(childGate)
		Sleep(p, "never-woken", &childGuard)
		childGuard.Unlock()
		Exit(k, p, 0)
	}

	waitErr := make(chan error, 1)
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		if _, err := Fork(k, p, childBody); err != nil {
			Exit(k, p, 1)
			return
		}
		_, err := Wait(k, p, 0)
		waitErr <- err
		Exit(k, p, 0)
	})

	<-childGate
	awaitState(t, init, Sleeping)
	require.NoError(t, Kill(k, init.Pid()))

	require.ErrorIs(t, <-waitErr, ErrKilled)
	awaitState(t, init, Zombie)
}
