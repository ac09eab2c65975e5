package ioc

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/optimus-hft/lockset"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// slotKey is the identity of one memoized instance: the registration key
// plus the parameter values it was resolved with.
type slotKey struct {
	key  Key
	args [MaxParams]any
}

func newSlotKey(key Key, args []any) slotKey {
	k := slotKey{key: key}
	copy(k.args[:], args)
	return k
}

func (k slotKey) String() string {
	if k.key.arity == 0 {
		return k.key.String()
	}
	return fmt.Sprintf("%s%#v", k.key, k.args[:k.key.arity])
}

// instances is the slot table of one container.
type instances struct {
	slots sync.Map // slotKey -> *slotEntry

	// construction locks, one per slot entry
	lock   func(key string)
	unlock func(key string)
	seq    atomic.Uint64

	closersMu sync.Mutex
	closers   []io.Closer
	drained   bool
}

func newInstances() *instances {
	set := lockset.New()
	return &instances{
		lock:   func(key string) { set.Lock(key) },
		unlock: func(key string) { set.Unlock(key) },
	}
}

// slotEntry pairs a slot with the lockset key guarding its construction.
// Lock keys are numbered, rendered slot keys of distinct types may collide.
type slotEntry struct {
	instanceSlot
	t      *instances
	lockID string
}

func (e *slotEntry) Lock()   { e.t.lock(e.lockID) }
func (e *slotEntry) Unlock() { e.t.unlock(e.lockID) }

// slot returns the entry of k, creating it with newSlot on first use.
func (t *instances) slot(k slotKey, newSlot func() instanceSlot) *slotEntry {
	if e, ok := t.slots.Load(k); ok {
		return e.(*slotEntry)
	}
	e := &slotEntry{
		instanceSlot: newSlot(),
		t:            t,
		lockID:       strconv.FormatUint(t.seq.Add(1), 36),
	}
	actual, _ := t.slots.LoadOrStore(k, e)
	return actual.(*slotEntry)
}

// track remembers instances which have to be closed with the container.
// Once the container drained its closers the instance is closed right away
// and ErrContainerClosed is returned.
func (t *instances) track(v any) error {
	closer, ok := v.(io.Closer)
	if !ok {
		return nil
	}
	t.closersMu.Lock()
	if !t.drained {
		t.closers = append(t.closers, closer)
		t.closersMu.Unlock()
		return nil
	}
	t.closersMu.Unlock()
	return multierr.Append(
		errors.Wrap(ErrContainerClosed, "instance built while closing"),
		closer.Close(),
	)
}

// drain hands over the tracked closers in construction order. Instances
// tracked afterwards are closed by track.
func (t *instances) drain() []io.Closer {
	t.closersMu.Lock()
	defer t.closersMu.Unlock()
	closers := t.closers
	t.closers = nil
	t.drained = true
	return closers
}
