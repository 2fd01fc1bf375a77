package history

import (
	"fmt"
	"sync"
	"time"
)

// Entry - single line of public chat history.
type Entry struct {
	Time time.Time `json:"time"`
	Line string    `json:"line"`
}

// Stack - keeps a limited number of latest entries.
// When stack length reaches max value, the oldest entry is dropped on every push.
type Stack struct {
	max  int
	mu   sync.RWMutex
	data []Entry
}

// NewStack - builds history stack.
func NewStack(max int) (*Stack, error) {
	if max <= 0 {
		return nil, fmt.Errorf("history.NewStack: max (%d) must be greater than 0", max)
	}
	return &Stack{max: max, data: make([]Entry, 0, max)}, nil
}

// Len - returns number of stored entries.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Push - appends line to history with current time.
func (s *Stack) Push(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == s.max {
		copy(s.data, s.data[1:])
		s.data = s.data[:len(s.data)-1]
	}
	s.data = append(s.data, Entry{Time: time.Now().UTC(), Line: line})
}

// Tail - copies last n entries. The first entry in result is the oldest one.
// Negative n is treated as its absolute value.
func (s *Stack) Tail(n int) []Entry {
	if n < 0 {
		n = -n
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := len(s.data)
	if n > l {
		n = l
	}
	tail := make([]Entry, n)
	copy(tail, s.data[l-n:])
	return tail
}
