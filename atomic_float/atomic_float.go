// Package atomic_float provides a lock-free float64 counter, used for the
// completed-task tally that concurrently running chain tasks update (see the
// runner package's Progress).
package atomic_float

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Notes:
// - float64 has no native atomic type, so this goes through its uint64 bit
//   pattern via CompareAndSwap.
// - no unsafe pointer here is stored beyond the statement that takes it,
//   since the gc may move the original variable around between loads.

// AtomicFloat64 encapsulates a float64 for non-locking atomic operations.
// Originally built to avoid locking a large per-site value matrix accessed by
// a much smaller number of worker goroutines; reused here for the run-wide
// count of finished tasks that chains running in parallel update without a
// mutex.
type AtomicFloat64 struct {
	val float64
}

// NewAtomicFloat64 encapsulates a float64 for atomic operations.
func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{
		val: val,
	}
}

// AtomicRead atomically reads the float64, so the returned value is
// synchronized with main memory rather than a stale local copy.
func (af *AtomicFloat64) AtomicRead() (value float64) {
	uintVal := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(uintVal)
}

// AtomicAdd adds addend to the float64, reporting whether the CAS succeeded.
// On failure the pointee changed between the read and the swap; the caller
// decides whether to retry (see AtomicIncrement) or drop the update.
func (af *AtomicFloat64) AtomicAdd(addend float64) (newVal float64, succeeded bool) {
	old := af.AtomicRead()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// AtomicSet sets the float64, returns true on success.
func (af *AtomicFloat64) AtomicSet(newVal float64) (succeeded bool) {
	old := af.AtomicRead()
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// AtomicIncrement adds 1.0, retrying until it wins the CAS race. Used for
// monotonic tallies (e.g. proposed/accepted step counts) where silently
// dropping a losing update would under-count.
func (af *AtomicFloat64) AtomicIncrement() (newVal float64) {
	for ok := false; !ok; newVal, ok = af.AtomicAdd(1.0) {
	}
	return
}
