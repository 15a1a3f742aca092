package entlock

import (
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	r := New()
	r.Lock("a")
	r.Unlock("a")

	if len(r.locks) != 0 {
		t.Errorf("expected lock map to be empty after release, have %d entries", len(r.locks))
	}
}

func TestSerializesSameKey(t *testing.T) {
	r := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Lock("project-member:user@example.com")
			counter++
			r.Unlock("project-member:user@example.com")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
	if len(r.locks) != 0 {
		t.Errorf("expected lock map to be empty, have %d entries", len(r.locks))
	}
}

func TestIndependentKeys(t *testing.T) {
	r := New()
	r.Lock("a")

	done := make(chan struct{})
	go func() {
		r.Lock("b") // must not block on "a"
		r.Unlock("b")
		close(done)
	}()
	<-done

	r.Unlock("a")
}
