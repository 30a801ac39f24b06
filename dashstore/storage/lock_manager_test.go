package storage

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLockManagerWritesAreExclusive(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.Execute(WriteOperation, func() error {
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 increments, got %d", counter)
	}
}

func TestLockManagerReadsRunConcurrently(t *testing.T) {
	lm := NewLockManager()
	inside := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = lm.Execute(ReadOperation, func() error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	done := make(chan struct{})
	go func() {
		_ = lm.Execute(ReadOperation, func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second reader blocked behind the first one")
	}
	close(release)
}

func TestQuery(t *testing.T) {
	lm := NewLockManager()

	got, err := Query(lm, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("expected 42, nil; got %d, %v", got, err)
	}

	boom := errors.New("boom")
	_, err = Query(lm, func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOperationTypeString(t *testing.T) {
	if ReadOperation.String() != "read" || WriteOperation.String() != "write" {
		t.Errorf("unexpected names %s/%s", ReadOperation, WriteOperation)
	}
}
