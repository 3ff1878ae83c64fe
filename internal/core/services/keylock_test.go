package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := newKeyLock()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("slot-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyLock_UnlockReleases(t *testing.T) {
	locks := newKeyLock()

	unlock := locks.lock("slot-1")
	unlock()

	done := make(chan struct{})
	go func() {
		unlock := locks.lock("slot-1")
		unlock()
		close(done)
	}()

	<-done
}
