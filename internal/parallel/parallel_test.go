package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	const n = 10000
	counts := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForNWorkerCounts(t *testing.T) {
	for _, workers := range []int{-1, 0, 1, 2, 3, 16, 1000} {
		var sum int64
		ForN(workers, 100, func(i int) {
			atomic.AddInt64(&sum, int64(i))
		})
		if sum != 4950 {
			t.Errorf("workers=%d: sum = %d, want 4950", workers, sum)
		}
	}
}

func TestForZeroAndNegative(t *testing.T) {
	called := false
	For(0, func(int) { called = true })
	For(-5, func(int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}
