package locks

import (
	"sync"
	"sync/atomic"
)

// WaitGroup is a sync.WaitGroup alternative whose Wait can be called
// concurrently with Add, unlike the standard library's version. The
// broadcast coordinator (C6) uses one per pending transaction to implement
// its validation-notification wait-callback: after commit-mode acceptance
// succeeds it calls AddOne and spawns a notification goroutine, and the
// submitter's Wait blocks until that goroutine calls Done.
type WaitGroup struct {
	counter  int64
	waitCond *sync.Cond
}

// NewWaitGroup returns a new, empty WaitGroup.
func NewWaitGroup() *WaitGroup {
	return &WaitGroup{
		waitCond: sync.NewCond(&sync.Mutex{}),
	}
}

// AddOne increments the WaitGroup counter by one.
func (wg *WaitGroup) AddOne() {
	atomic.AddInt64(&wg.counter, 1)
}

// Done decrements the WaitGroup counter by one, waking any waiter once the
// counter reaches zero.
func (wg *WaitGroup) Done() {
	counter := atomic.AddInt64(&wg.counter, -1)
	if counter < 0 {
		panic("negative values for wg.counter are not allowed. This was likely caused by calling Done() before AddOne()")
	}
	if atomic.LoadInt64(&wg.counter) == 0 {
		wg.waitCond.Broadcast()
	}
}

// Wait blocks until the WaitGroup counter is zero.
func (wg *WaitGroup) Wait() {
	wg.waitCond.L.Lock()
	defer wg.waitCond.L.Unlock()
	for atomic.LoadInt64(&wg.counter) != 0 {
		wg.waitCond.Wait()
	}
}
