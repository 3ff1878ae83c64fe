package services

import (
	"hash/fnv"
	"sync"
)

// keyLock serializes read-modify-write cycles per slot id. The store has no
// transactions, so two concurrent bookings against the same slot must be
// forced through here one at a time. Striping keeps the lock table bounded.
type keyLock struct {
	stripes [64]sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{}
}

// lock acquires the stripe for key and returns the matching unlock.
func (l *keyLock) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}
