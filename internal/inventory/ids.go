package inventory

import "time"

// idGenerator hands out millisecond timestamps, bumped past the last id so two
// items added in the same millisecond (or after a clock step back) never share one.
type idGenerator struct {
	now  func() time.Time
	last int64
}

func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *idGenerator) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
