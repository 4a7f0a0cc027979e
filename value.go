// value.go implements the cached observable value underpinning the Cache.
package usersettings

import (
	"sync"
)

// Value is a cached, observable container for a single settings value.
//
// A Value starts out unset, becomes set on the first Publish and stays set for
// the rest of its life. Subscribers registered while a value is held receive
// that value immediately; every later Publish is delivered to all active
// subscribers in publish order, with no gaps and no reordering. Close is
// terminal: it detaches all subscribers and turns further publishes into
// no-ops, while Get keeps returning the last held value.
//
// Delivery is synchronous under the Value's lock, which is what provides the
// ordering guarantee. Subscriber callbacks must therefore return quickly and
// must not call back into the same Value, or they will deadlock.
type Value[T any] struct {
	mu     sync.Mutex
	val    T
	set    bool
	closed bool
	nextID int
	subs   map[int]func(T)
}

// NewValue returns an unset Value.
func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]func(T))}
}

// NewValueFrom returns a Value already holding initial, as if it had been
// published once.
func NewValueFrom[T any](initial T) *Value[T] {
	v := NewValue[T]()
	v.val = initial
	v.set = true
	return v
}

// Get returns the last published value. It fails with ErrNoValue while the
// Value is unset. After Close it still returns the last value held.
func (v *Value[T]) Get() (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.set {
		var zero T
		return zero, ErrNoValue
	}
	return v.val, nil
}

// Publish stores val as the current value and notifies every active
// subscriber before returning. Publishing to a closed Value is a no-op.
func (v *Value[T]) Publish(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.val = val
	v.set = true
	for _, fn := range v.subs {
		fn(val)
	}
}

// Subscribe registers fn to receive published values. If a value is currently
// held, fn is invoked with it exactly once before Subscribe returns.
// Subscribing to a closed Value yields a Subscription whose callback is never
// invoked. The returned Subscription detaches fn when cancelled.
func (v *Value[T]) Subscribe(fn func(T)) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return &Subscription{cancel: func() {}}
	}
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	if v.set {
		fn(v.val)
	}
	return &Subscription{cancel: func() { v.unsubscribe(id) }}
}

func (v *Value[T]) unsubscribe(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.subs, id)
}

// Close marks the Value closed and detaches all subscribers. It is idempotent
// and safe to call concurrently with Publish and Subscribe.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.subs = nil
}

// Subscription represents an active subscriber registration on a Value.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel detaches the subscriber. It is idempotent and safe to call from any
// goroutine, but not from inside the subscriber callback itself.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}
