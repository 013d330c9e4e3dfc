package kernel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPidAllocatorMonotonic(t *testing.T) {
	a := newPidAllocator()
	require.Equal(t, Pid(1), a.allocate())
	require.Equal(t, Pid(2), a.allocate())
	require.Equal(t, Pid(3), a.allocate())
}

func TestPidAllocatorConcurrentAllocationsAreUnique(t *testing.T) {
	a := newPidAllocator()
	const n = 200
	seen := make(chan Pid, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- a.allocate()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[Pid]bool)
	for pid := range seen {
		require.False(t, unique[pid], "pid %d issued twice", pid)
		unique[pid] = true
	}
	require.Len(t, unique, n)
}

func TestPidAllocatorOverflowPanics(t *testing.T) {
	a := &pidAllocator{next: 1<<31 - 1}
	require.Panics(t, func() { a.allocate() })
}
