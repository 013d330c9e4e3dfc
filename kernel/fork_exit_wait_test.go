package kernel

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForkExitWaitReapsChildAndReportsStatus(t *testing.T) {
	k, stop := bootTestKernel(t, 2)
	defer stop()

	const statusAddr = uintptr(0x1000)
	waitResult := make(chan Pid, 1)
	waitErr := make(chan error, 1)

	childBody := func(p *Proc, k *Kernel) {
		Exit(k, p, 42)
	}

	parentBody := func(p *Proc, k *Kernel) {
		childPid, err := Fork(k, p, childBody)
		if err != nil {
			waitErr <- err
			Exit(k, p, 1)
			return
		}
		_ = childPid

		pid, err := Wait(k, p, statusAddr)
		waitResult <- pid
		waitErr <- err
		Exit(k, p, 0)
	}

	init := k.Userinit([]byte{0x13}, parentBody)

	require.NoError(t, <-waitErr)
	reapedPid := <-waitResult

	require.Greater(t, reapedPid, Pid(0))
	require.NotEqual(t, init.Pid(), reapedPid)

	var buf [4]byte
	require.NoError(t, init.as.CopyIn(statusAddr, buf[:]))
	require.Equal(t, int32(42), int32(binary.LittleEndian.Uint32(buf[:])))

	awaitState(t, init, Zombie)
}

func TestWaitReturnsErrNoChildren(t *testing.T) {
	k, stop := bootTestKernel(t, 1)
	defer stop()

	result := make(chan error, 1)
	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		_, err := Wait(k, p, 0)
		result <- err
		Exit(k, p, 0)
	})

	require.ErrorIs(t, <-result, ErrNoChildren)
	awaitState(t, init, Zombie)
}

func TestExitReparentsOrphansToInit(t *testing.T) {
	k, stop := bootTestKernel(t, 3)
	defer stop()

	grandchildDone := make(chan *Proc, 1)
	var guard sync.Mutex

	grandchildBody := func(p *Proc, k *Kernel) {
		grandchildDone <- p
		guard.Lock()
		Sleep(p, "park", &guard)
		guard.Unlock()
		Exit(k, p, 7)
	}

	childBody := func(p *Proc, k *Kernel) {
		if _, err := Fork(k, p, grandchildBody); err != nil {
			Exit(k, p, 1)
			return
		}
		Exit(k, p, 0)
	}

	init := k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {
		if _, err := Fork(k, p, childBody); err != nil {
			Exit(k, p, 1)
			return
		}
		// Reap both the direct child and the orphaned grandchild once it
		// is eventually handed over to init.
		for reapedCount := 0; reapedCount < 2; {
			if _, err := Wait(k, p, 0); err == nil {
				reapedCount++
			}
		}
		Exit(k, p, 0)
	})

	grandchild := <-grandchildDone
	awaitState(t, grandchild, Sleeping)
	awaitParent(t, k, grandchild, k.InitProc())

	Wakeup(k, "park")
	awaitState(t, init, Zombie)
}
