package collection

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/collectionkit/errors"
)

func TestNewPool_InvalidWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := NewPool(n); !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("NewPool(%d): expected INVALID_ARGUMENT, got %v", n, err)
		}
	}
}

func TestPool_RunsHighestPriorityFirst(t *testing.T) {
	pool, err := NewPool(1)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	// Occupy the only worker so that everything below is queued.
	hold := make(chan struct{})
	running := make(chan struct{})
	pool.Launch(PriorityMedium, func() {
		close(running)
		<-hold
	})
	<-running

	var mu sync.Mutex
	var order []string
	var wg sync.WaitGroup
	enqueue := func(p Priority, name string) {
		wg.Add(1)
		pool.Launch(p, func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			wg.Done()
		})
	}
	enqueue(PriorityLow, "low-1")
	enqueue(PriorityBackground, "background")
	enqueue(PriorityUserInitiated, "user")
	enqueue(PriorityLow, "low-2")
	enqueue(Priority(99), "clamped-high")
	enqueue(Priority(-5), "clamped-unspecified")

	if pool.Queued() != 6 {
		t.Errorf("expected 6 queued tasks, got %d", pool.Queued())
	}
	close(hold)
	wg.Wait()

	want := []string{"user", "clamped-high", "low-1", "low-2", "background", "clamped-unspecified"}
	if !slices.Equal(order, want) {
		t.Errorf("expected order %v, got %v", want, order)
	}
}

func TestPool_CapsConcurrencyAcrossCalls(t *testing.T) {
	pool, err := NewPool(3)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	var g gauge
	fn := func(_ context.Context, i int) (int, error) {
		g.enter()
		defer g.leave()
		time.Sleep(5 * time.Millisecond)
		return i * 2, nil
	}

	var wg sync.WaitGroup
	results := make([][]int, 3)
	errs := make([]error, 3)
	for c := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[c], errs[c] = ConcurrentMap(context.Background(), ints(10), fn, WithLauncher(pool), WithPriority(Priority(c)))
		}()
	}
	wg.Wait()

	for c := range 3 {
		if errs[c] != nil {
			t.Fatalf("call %d: %v", c, errs[c])
		}
		for i, v := range results[c] {
			if v != i*2 {
				t.Errorf("call %d: result %d is %d", c, i, v)
			}
		}
	}
	if m := g.max.Load(); m > 3 {
		t.Errorf("pool of 3 ran %d operations at once", m)
	}
}

func TestPool_CloseDrainsQueueAndFallsBack(t *testing.T) {
	pool, err := NewPool(1)
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	ran := 0
	for range 5 {
		pool.Launch(PriorityLow, func() {
			time.Sleep(time.Millisecond)
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	pool.Close()

	mu.Lock()
	if ran != 5 {
		t.Errorf("expected Close to run all 5 queued tasks, ran %d", ran)
	}
	mu.Unlock()

	// A closed pool still runs what it is given.
	got, err := ConcurrentMap(context.Background(), ints(3), func(_ context.Context, i int) (int, error) {
		return i, nil
	}, WithLauncher(pool))
	if err != nil || !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("expected closed pool to fall back to goroutines, got %v, %v", got, err)
	}
}
