package service

import "sync"

// keyedMutex hands out one mutex per key. An entry lives only while someone
// holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		if m.refs--; m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// inFlight tracks keys with an operation running. Begin reports false when
// the key is already busy.
type inFlight struct {
	keys sync.Map
}

func (f *inFlight) Begin(key string) (done func(), ok bool) {
	if _, busy := f.keys.LoadOrStore(key, struct{}{}); busy {
		return nil, false
	}
	return func() { f.keys.Delete(key) }, true
}
