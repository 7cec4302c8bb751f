package cooling

import (
	"errors"
	"sync"

	"github.com/thermalkit/isp2go/internal/ui"
)

// ErrResourceExhausted indicates that the id pool cannot grow any further.
var ErrResourceExhausted = errors.New("cooling device id pool exhausted")

// IdPool hands out small non-negative integers, unique among live
// allocations. Released ids become eligible for reuse, the smallest free id
// is always allocated first.
type IdPool struct {
	mu    sync.Mutex
	live  map[int]struct{}
	limit int
}

func NewIdPool(limit int) *IdPool {
	return &IdPool{
		live:  map[int]struct{}{},
		limit: limit,
	}
}

// Allocate returns a fresh id or ErrResourceExhausted once the pool limit is
// reached.
func (p *IdPool) Allocate() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id := 0; id < p.limit; id++ {
		if _, taken := p.live[id]; !taken {
			p.live[id] = struct{}{}
			return id, nil
		}
	}

	return -1, ErrResourceExhausted
}

// Release removes an id from the live set. Releasing an id that is not live
// is a caller contract violation and treated as a no-op.
func (p *IdPool) Release(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.live[id]; !taken {
		ui.Debug("Release of id %d which is not allocated", id)
		return
	}

	delete(p.live, id)
}
