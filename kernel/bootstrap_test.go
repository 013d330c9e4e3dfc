package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserinitCreatesRunnableNamedInitcode(t *testing.T) {
	k, stop := bootTestKernel(t, 1)
	defer stop()

	done := make(chan struct{})
	init := k.Userinit([]byte{0x13, 0x00, 0x00, 0x00}, func(p *Proc, k *Kernel) {
		close(done)
		Exit(k, p, 0)
	})

	require.Equal(t, "initcode", init.Name())
	require.Same(t, init, k.InitProc())

	<-done
	awaitState(t, init, Zombie)
}

func TestUserinitPanicsIfAllocProcFails(t *testing.T) {
	k := New(Config{NumCPU: 1}, nil)
	for i := 0; i < NPROC; i++ {
		p, err := k.allocProc()
		if err != nil {
			t.Fatalf("unexpected alloc failure: %v", err)
		}
		p.unlock()
	}
	require.Panics(t, func() {
		k.Userinit([]byte{0x13}, func(p *Proc, k *Kernel) {})
	})
}
