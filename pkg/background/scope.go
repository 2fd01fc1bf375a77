// Package background groups goroutines which must be stopped together.
package background

import (
	"context"
	"sync"
	"time"
)

// Scope - abstract concurrency scope: cancelable context joined with a wait group.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	// mu orders Enter against Cancel
	mu sync.Mutex
}

// NewScope - concurrency scope builder. Nil parent means context.Background().
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context - returns scope context, it is done after Cancel.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Expired - reports whether the scope was canceled.
func (s *Scope) Expired() bool {
	return s.ctx.Err() != nil
}

// Add - registers members of the scope. Based on sync.WaitGroup.
func (s *Scope) Add(delta int) {
	s.wg.Add(delta)
}

// Done - notifies scope when a member is done. Based on sync.WaitGroup.
func (s *Scope) Done() {
	s.wg.Done()
}

// Enter - registers single member unless the scope is expired.
// Every successful Enter must be paired with Done.
func (s *Scope) Enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Expired() {
		return false
	}
	s.wg.Add(1)
	return true
}

// Go - runs f as a member of the scope unless the scope is expired.
func (s *Scope) Go(f func(ctx context.Context)) bool {
	if !s.Enter() {
		return false
	}
	go func() {
		defer s.wg.Done()
		f(s.ctx)
	}()
	return true
}

// Cancel - cancels the scope context without waiting.
func (s *Scope) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
}

// Wait - waits for all members no longer than timeout (non-positive timeout means no limit).
// Returns false when timeout is reached.
func (s *Scope) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
