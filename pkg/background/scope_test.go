package background

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"
)

func randInt() int {
	sign := rand.Intn(100)
	value := rand.Intn(math.MaxInt32)
	if sign < 50 {
		return -value
	}
	return value
}

func producer(id string, data chan<- int) func(ctx context.Context) {
	return func(ctx context.Context) {
		for {
			select {
			case data <- randInt():
			case <-ctx.Done():
				fmt.Println(id, "done")
				return
			}
		}
	}
}

func consumer(id string, data <-chan int) func(ctx context.Context) {
	return func(ctx context.Context) {
		for {
			select {
			case _, ok := <-data:
				if !ok {
					fmt.Println(id, "exited on closed data channel")
					return
				}
			case <-ctx.Done():
				fmt.Println(id, "done")
				return
			}
		}
	}
}

func ExampleScope() {
	data1, data2, data3 := make(chan int), make(chan int), make(chan int)

	write1 := NewScope(context.Background())
	read1 := NewScope(context.Background())
	write2 := NewScope(context.Background())
	read3 := NewScope(context.Background())

	write1.Go(producer("DATA-1 *PRODUCER*", data1))
	read1.Go(consumer("DATA-1 *CONSUMER*", data1))
	write2.Go(producer("DATA-2 *PRODUCER*", data2)) // blocked due to no consumer for data2
	read3.Go(consumer("DATA-3 *CONSUMER*", data3))  // blocked due to no producer for data3

	time.Sleep(50 * time.Millisecond)

	// Stop all background scopes in desired order:
	for _, s := range []*Scope{write2, read3, write1, read1} {
		s.Cancel()
		s.Wait(0)
	}

	// Output:
	//
	// DATA-2 *PRODUCER* done
	// DATA-3 *CONSUMER* done
	// DATA-1 *PRODUCER* done
	// DATA-1 *CONSUMER* done
}

func ExampleScope_severalMembers() {
	data := make(chan int)

	scope := NewScope(context.Background())
	scope.Go(producer("*PRODUCER-1*", data))
	scope.Go(producer("*PRODUCER-2*", data))
	scope.Go(producer("*PRODUCER-3*", data))

	time.Sleep(50 * time.Millisecond)

	scope.Cancel()
	scope.Wait(0)

	// Unordered output:
	//
	// *PRODUCER-1* done
	// *PRODUCER-2* done
	// *PRODUCER-3* done
}

func ExampleScope_Expired() {
	scope1 := NewScope(context.Background())
	defer scope1.Cancel()
	scope2 := NewScope(context.Background())
	scope2.Cancel()
	fmt.Println(scope1.Expired(), scope2.Expired())
	fmt.Println(scope2.Go(func(context.Context) {}))

	// Output:
	// false true
	// false
}

func TestScope_Wait(test *testing.T) {
	scope := NewScope(context.Background())
	release := make(chan struct{})
	scope.Go(func(ctx context.Context) {
		<-release
	})
	if scope.Wait(10 * time.Millisecond) {
		test.Error("Wait must report timeout while member is running")
	}
	close(release)
	if !scope.Wait(time.Second) {
		test.Error("Wait must succeed after member is done")
	}
}

func TestScope_parent(test *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	scope := NewScope(parent)
	cancel()
	select {
	case <-scope.Context().Done():
	case <-time.After(time.Second):
		test.Error("Scope must expire with its parent")
	}
}

func TestScope_Enter(test *testing.T) {
	scope := NewScope(context.Background())
	if !scope.Enter() {
		test.Fatal("Enter must succeed before Cancel")
	}
	scope.Cancel()
	if scope.Enter() {
		test.Error("Enter must fail after Cancel")
	}
	if scope.Wait(10 * time.Millisecond) {
		test.Error("Wait must report timeout while entered member is not done")
	}
	scope.Done()
	if !scope.Wait(time.Second) {
		test.Error("Wait must succeed after Done")
	}
}
