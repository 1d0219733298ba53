package task

import (
	"math"
	"time"
)

// idAllocator hands out time-derived ids that strictly increase.
type idAllocator struct {
	last int64
	now  func() time.Time
}

// observe raises the floor so that future ids exceed id.
func (a *idAllocator) observe(id int64) {
	if id > a.last {
		a.last = id
	}
}

// next returns max(now in milliseconds, last+1). Once the id space is
// exhausted it returns the smallest positive id for which taken is false.
func (a *idAllocator) next(taken func(int64) bool) int64 {
	if a.last == math.MaxInt64 {
		id := int64(1)
		for taken(id) {
			id++
		}
		return id
	}
	id := a.now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}
