package history

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func lines(entries []Entry) []string {
	result := []string{}
	for _, e := range entries {
		result = append(result, e.Line)
	}
	return result
}

func TestStack(test *testing.T) {
	if _, err := NewStack(0); err == nil {
		test.Error("NewStack(0):", "expected error got nil")
	}
	if _, err := NewStack(-1); err == nil {
		test.Error("NewStack(-1):", "expected error got nil")
	}

	s, _ := NewStack(2)
	if t := s.Tail(5); len(t) != 0 {
		test.Error("Unexpected Tail(5) of empty stack", t)
	}
	s.Push("1")
	s.Push("2")
	s.Push("3")
	if s.Len() != 2 {
		test.Error("Unexpected Stack len", s.Len())
	}

	cases := []struct {
		n        int
		expected []string
	}{
		{0, []string{}},
		{1, []string{"3"}},
		{2, []string{"2", "3"}},
		{-2, []string{"2", "3"}},
		{100, []string{"2", "3"}},
	}
	for _, c := range cases {
		if t := lines(s.Tail(c.n)); !reflect.DeepEqual(t, c.expected) {
			test.Errorf("Unexpected Tail(%d) result %v", c.n, t)
		}
	}
	if e := s.Tail(1)[0]; e.Time.IsZero() {
		test.Error("Entry time is not set")
	}
}

func TestStack_concurrent(test *testing.T) {
	s, _ := NewStack(10)
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Push(fmt.Sprintf("%d-%d", i, j))
				s.Tail(3)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 10 {
		test.Error("Unexpected Stack len", s.Len())
	}
}
