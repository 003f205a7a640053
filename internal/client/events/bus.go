// Package events is a small in-process publish/subscribe bus.
package events

import (
	"slices"
	"sync"
	"time"
)

// LocalPublished is emitted after a blueprint was saved to the local store
// because the backend was unreachable.
type LocalPublished struct {
	BlueprintID string
	PublishedAt time.Time
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// Bus delivers values synchronously, in subscription order, to the handlers
// registered at the time Publish is called.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn. The returned func removes it and may be called
// more than once.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscription[T]) bool { return s.id == id })
		})
	}
}

func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	snapshot := slices.Clone(b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(v)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
