package common

import (
	"sync"
	"testing"
	"time"
)

func TestShutdownSignalFire(t *testing.T) {
	s := NewShutdownSignal()

	if s.Fired() {
		t.Fatalf("fresh signal must not be fired")
	}
	select {
	case <-s.Done():
		t.Fatalf("Done must block before Fire")
	default:
	}

	s.Fire()

	if !s.Fired() {
		t.Errorf("signal must report fired after Fire")
	}
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Errorf("Done must be closed after Fire")
	}
}

func TestShutdownSignalFireIsIdempotent(t *testing.T) {
	s := NewShutdownSignal()

	// Concurrent and repeated fires must not panic
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Fire()
		}()
	}
	wg.Wait()
	s.Fire()

	if !s.Fired() {
		t.Errorf("signal must report fired")
	}
}

func TestShutdownSignalWakesAllWaiters(t *testing.T) {
	s := NewShutdownSignal()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-s.Done()
		}()
	}

	s.Fire()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("not all waiters woke up")
	}
}
