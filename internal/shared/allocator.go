package shared

import "fmt"

// Allocator accounts for the cells held by a collection: one per playlist, one per song, and
// temporary merge buffers while a sort runs.
//
// Once a reservation fails the allocator is latched: Err keeps returning the failure and every
// later Reserve fails with it.
type Allocator interface {
	Reserve(n int) error // Reserve claims n cells or returns a [*FatalError]
	Release(n int)       // Release returns n previously reserved cells
	Err() error          // Err returns the latched failure, if any
}

// Unbounded is an [Allocator] that never fails. It is the default for collections.
type Unbounded struct{}

func (Unbounded) Reserve(int) error { return nil }
func (Unbounded) Release(int)       {}
func (Unbounded) Err() error        { return nil }

// Budget is an [Allocator] with a fixed number of cells.
type Budget struct {
	limit  int
	inUse  int
	failed error
}

// NewBudget returns an [Allocator] holding at most limit cells. A limit <= 0 means unbounded.
func NewBudget(limit int) Allocator {
	if limit <= 0 {
		return Unbounded{}
	}
	return &Budget{limit: limit}
}

func (b *Budget) Reserve(n int) error {
	if b.failed != nil {
		return b.failed
	}
	if n <= 0 {
		return nil
	}
	if b.inUse+n > b.limit {
		b.failed = &FatalError{
			Op:  fmt.Sprintf("reserve %d cells (%d/%d in use)", n, b.inUse, b.limit),
			Err: ErrAllocation,
		}
		return b.failed
	}
	b.inUse += n
	return nil
}

func (b *Budget) Release(n int) {
	b.inUse -= n
	if b.inUse < 0 {
		b.inUse = 0
	}
}

func (b *Budget) Err() error {
	return b.failed
}

// InUse returns the number of reserved cells.
func (b *Budget) InUse() int {
	return b.inUse
}
