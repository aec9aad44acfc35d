// Package leaktest reports goroutines a test left running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	stackBufSize  = 1 << 16
)

// Checker compares the goroutine count against a baseline taken at creation
type Checker struct {
	t        testing.TB
	baseline int
}

// New records the current goroutine count as the baseline
func New(t testing.TB) *Checker {
	t.Helper()
	runtime.Gosched()
	return &Checker{t: t, baseline: runtime.NumGoroutine()}
}

// Check waits for the goroutine count to drop to baseline+tolerance and fails
// the test with a stack dump if it does not within the settle timeout.
func (c *Checker) Check(tolerance int) {
	c.t.Helper()
	target := c.baseline + tolerance
	if current, ok := settle(target, settleTimeout); !ok {
		buf := make([]byte, stackBufSize)
		n := runtime.Stack(buf, true)
		c.t.Errorf("goroutine leak: baseline=%d current=%d tolerance=%d\n%s",
			c.baseline, current, tolerance, buf[:n])
	}
}

// Verify checks for leaked goroutines when t finishes
func Verify(t testing.TB) {
	t.Helper()
	c := New(t)
	t.Cleanup(func() { c.Check(0) })
}

// settle polls until at most target goroutines run or timeout passes
func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		current := runtime.NumGoroutine()
		if current <= target {
			return current, true
		}
		if time.Now().After(deadline) {
			return current, false
		}
		runtime.Gosched()
		time.Sleep(pollInterval)
	}
}
