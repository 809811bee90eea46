// Package observable holds a value and notifies subscribers when it changes.
package observable

import (
	"sort"
	"sync"
)

// Value delivers one value at a time. A Set made while subscribers are
// running, from a callback or another goroutine, is handed to the goroutine
// already delivering; subscribers always end on the latest value.
type Value[T any] struct {
	mu      sync.Mutex
	cur     T
	ver     uint64
	nextID  int
	subs    map[int]func(T)
	sending bool
	dirty   bool
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: map[int]func(T){}}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set stores x and calls every subscriber synchronously, outside the lock,
// in subscription order.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	v.ver++
	v.store(x)
}

// Publish is Set for producers that number their snapshots. x is dropped
// when a snapshot numbered ver or later was already stored.
func (v *Value[T]) Publish(ver uint64, x T) bool {
	v.mu.Lock()
	if ver <= v.ver {
		v.mu.Unlock()
		return false
	}
	v.ver = ver
	v.store(x)
	return true
}

// store is called with v.mu held and releases it.
func (v *Value[T]) store(x T) {
	v.cur = x
	if v.sending {
		v.dirty = true
		v.mu.Unlock()
		return
	}
	v.sending = true
	for {
		cur, fns := v.cur, v.snapshot()
		v.dirty = false
		v.mu.Unlock()
		for _, fn := range fns {
			fn(cur)
		}
		v.mu.Lock()
		if !v.dirty {
			v.sending = false
			v.mu.Unlock()
			return
		}
	}
}

// Subscribe registers fn for every later Set. The returned func removes it.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

func (v *Value[T]) snapshot() []func(T) {
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = v.subs[id]
	}
	return fns
}
