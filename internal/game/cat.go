package game

import "github.com/vovakirdan/greedycat/internal/core"

// minHeadroom is the least free space reserved in front of the head.
const minHeadroom = 16

// Cat is the player creature: an ordered body with the head at index 0.
//
// body is a window into buf starting at off. The cells before off are free
// room for new heads, so a move writes one cell instead of shifting the
// whole body; buf is rebuilt only when that room runs out.
type Cat struct {
	body      []core.Position
	buf       []core.Position
	off       int
	direction core.Direction
}

// NewCat creates a cat with its head at start, the body trailing behind
// (opposite to dir) for length cells. Length is clamped to at least 1.
func NewCat(start core.Position, length int, dir core.Direction) *Cat {
	length = max(length, 1)
	back := dir.Opposite()

	body := make([]core.Position, length)
	p := start
	for i := range body {
		body[i] = p
		p = p.Step(back)
	}
	c := &Cat{body: body, direction: dir}
	c.reserve()
	return c
}

// reserve moves the body to the back of a fresh buffer with at least as
// much free room in front as the body is long.
func (c *Cat) reserve() {
	n := len(c.body)
	room := max(n, minHeadroom)
	buf := make([]core.Position, room+n)
	copy(buf[room:], c.body)
	c.buf, c.off = buf, room
	c.body = buf[room:]
}

// Head returns the head cell.
func (c *Cat) Head() core.Position {
	return c.body[0]
}

// Tail returns the last body cell.
func (c *Cat) Tail() core.Position {
	return c.body[len(c.body)-1]
}

// Len returns the body length.
func (c *Cat) Len() int {
	return len(c.body)
}

// Direction returns the current heading.
func (c *Cat) Direction() core.Direction {
	return c.direction
}

// Body returns a copy of the body cells, head first.
func (c *Cat) Body() []core.Position {
	out := make([]core.Position, len(c.body))
	copy(out, c.body)
	return out
}

// Contains reports whether p is any body cell.
func (c *Cat) Contains(p core.Position) bool {
	for _, seg := range c.body {
		if seg == p {
			return true
		}
	}
	return false
}

// ContainsExceptTail reports whether p is a body cell other than the tail.
// The tail vacates on a non-growing move, so moving onto it is safe.
func (c *Cat) ContainsExceptTail(p core.Position) bool {
	for _, seg := range c.body[:len(c.body)-1] {
		if seg == p {
			return true
		}
	}
	return false
}

// ChangeDirection sets the heading unless d reverses the current one.
// Reports whether the direction was applied.
func (c *Cat) ChangeDirection(d core.Direction) bool {
	if d == c.direction.Opposite() {
		return false
	}
	c.direction = d
	return true
}

// Move inserts a new head. The tail is dropped unless grow is set.
func (c *Cat) Move(to core.Position, grow bool) {
	n := len(c.body)
	if !grow {
		n--
		c.body = c.body[:n]
	}
	if c.off == 0 {
		c.reserve()
	}
	c.off--
	c.buf[c.off] = to
	c.body = c.buf[c.off : c.off+n+1]
}

// CheckSelfCollision reports whether the head overlaps another body cell.
func (c *Cat) CheckSelfCollision() bool {
	head := c.body[0]
	for _, seg := range c.body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// CheckWallCollision reports whether the head left the w×h grid.
func (c *Cat) CheckWallCollision(w, h int) bool {
	return !c.body[0].InBounds(w, h)
}
