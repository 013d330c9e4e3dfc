package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocProcAssignsIncreasingPidsAndLeavesSlotLocked(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)

	p1, err := k.allocProc()
	require.NoError(t, err)
	require.Equal(t, Used, p1.state)
	// allocProc takes every scanned slot's lock, so p1's lock must be
	// released before the next allocation can scan past it.
	p1.unlock()

	p2, err := k.allocProc()
	require.NoError(t, err)
	require.Less(t, p1.pid, p2.pid)

	p2.unlock()
}

func TestAllocProcExhaustsTable(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)

	procs := make([]*Proc, 0, NPROC)
	for i := 0; i < NPROC; i++ {
		p, err := k.allocProc()
		require.NoError(t, err)
		procs = append(procs, p)
	}

	// Release every slot lock first: allocProc locks each slot it scans.
	for _, p := range procs {
		p.unlock()
	}

	_, err := k.allocProc()
	require.ErrorIs(t, err, ErrNoFreeSlot)
}

func TestAllocProcInjectedFailureFreesTheSlot(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	k.SetAllocFailureInjector(func() bool { return true })

	_, err := k.allocProc()
	require.ErrorIs(t, err, ErrAllocFailed)

	k.SetAllocFailureInjector(nil)
	p, err := k.allocProc()
	require.NoError(t, err)
	require.Equal(t, Used, p.state)
	p.unlock()
}

func TestFreeProcResetsState(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	p, err := k.allocProc()
	require.NoError(t, err)

	p.setName("probe")
	k.freeProc(p)

	require.Equal(t, Unused, p.state)
	require.Equal(t, Pid(0), p.pid)
	require.Equal(t, "", p.Name())
	require.Nil(t, p.as)
	require.Nil(t, p.files)
	p.unlock()
}
