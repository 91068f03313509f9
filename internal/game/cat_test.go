package game

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/greedycat/internal/core"
)

func TestNewCat(t *testing.T) {
	c := NewCat(core.P(10, 10), 3, core.DirRight)

	expected := []core.Position{core.P(10, 10), core.P(9, 10), core.P(8, 10)}
	if !reflect.DeepEqual(c.Body(), expected) {
		t.Errorf("Body() = %v, expected %v", c.Body(), expected)
	}
	if c.Head() != core.P(10, 10) || c.Tail() != core.P(8, 10) {
		t.Errorf("Head()/Tail() = %v/%v", c.Head(), c.Tail())
	}
	if c.Direction() != core.DirRight {
		t.Errorf("Direction() = %v, expected right", c.Direction())
	}

	up := NewCat(core.P(4, 4), 2, core.DirUp)
	if up.Tail() != core.P(4, 5) {
		t.Errorf("Tail() facing up = %v, expected (4,5)", up.Tail())
	}

	if NewCat(core.P(0, 0), 0, core.DirLeft).Len() != 1 {
		t.Error("NewCat with length 0 should clamp to 1")
	}
}

func TestCatNeverReverses(t *testing.T) {
	sequences := [][]core.Direction{
		{core.DirLeft, core.DirLeft, core.DirLeft},
		{core.DirUp, core.DirDown, core.DirLeft, core.DirRight},
		{core.DirDown, core.DirUp, core.DirRight, core.DirLeft, core.DirUp},
	}

	for i, seq := range sequences {
		c := NewCat(core.P(10, 10), 3, core.DirRight)
		for _, d := range seq {
			before := c.Direction()
			c.ChangeDirection(d)
			if c.Direction() == before.Opposite() {
				t.Errorf("sequence %d: direction went from %v to its opposite", i, before)
			}
		}
	}
}

func TestCatMoveGrowth(t *testing.T) {
	c := NewCat(core.P(5, 5), 3, core.DirRight)

	c.Move(core.P(6, 5), false)
	if c.Len() != 3 {
		t.Errorf("Len() after plain move = %d, expected 3", c.Len())
	}
	if c.Tail() != core.P(4, 5) {
		t.Errorf("Tail() after plain move = %v, expected (4,5)", c.Tail())
	}

	c.Move(core.P(7, 5), true)
	if c.Len() != 4 {
		t.Errorf("Len() after growing move = %d, expected 4", c.Len())
	}
	expected := []core.Position{core.P(7, 5), core.P(6, 5), core.P(5, 5), core.P(4, 5)}
	if !reflect.DeepEqual(c.Body(), expected) {
		t.Errorf("Body() = %v, expected %v", c.Body(), expected)
	}
}

func TestCatCollisions(t *testing.T) {
	c := &Cat{
		body:      []core.Position{core.P(5, 5), core.P(4, 5), core.P(3, 5), core.P(3, 6), core.P(4, 6)},
		direction: core.DirRight,
	}

	if !c.ContainsExceptTail(core.P(4, 5)) {
		t.Error("ContainsExceptTail((4,5)) = false, expected true")
	}
	if c.ContainsExceptTail(core.P(4, 6)) {
		t.Error("ContainsExceptTail(tail) = true, expected false")
	}
	if c.CheckSelfCollision() {
		t.Error("CheckSelfCollision() on a clean body = true")
	}

	c.Move(core.P(4, 5), false)
	if !c.CheckSelfCollision() {
		t.Error("CheckSelfCollision() after moving into the body = false")
	}

	w := NewCat(core.P(0, 0), 1, core.DirLeft)
	w.Move(core.P(-1, 0), false)
	if !w.CheckWallCollision(10, 10) {
		t.Error("CheckWallCollision() off the left edge = false")
	}
}

func TestCatBodyIsCopy(t *testing.T) {
	c := NewCat(core.P(5, 5), 3, core.DirRight)
	body := c.Body()
	body[0] = core.P(99, 99)
	if c.Head() != core.P(5, 5) {
		t.Error("mutating Body() result changed the cat")
	}
}

func TestCatLongRunMatchesShift(t *testing.T) {
	tests := []struct {
		name      string
		start     *Cat
		moves     int
		growEvery int
	}{
		{"constructed, no growth", NewCat(core.P(0, 0), 3, core.DirRight), 200, 0},
		{"constructed, growing", NewCat(core.P(0, 0), 3, core.DirRight), 200, 7},
		{"single cell", NewCat(core.P(0, 0), 1, core.DirRight), 50, 3},
		{"literal body", &Cat{body: []core.Position{core.P(2, 0), core.P(1, 0), core.P(0, 0)}, direction: core.DirRight}, 100, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.start
			expected := c.Body()
			for i := 1; i <= tc.moves; i++ {
				to := core.P(c.Head().X+1, 0)
				grow := tc.growEvery > 0 && i%tc.growEvery == 0
				c.Move(to, grow)

				if !grow {
					expected = expected[:len(expected)-1]
				}
				expected = append([]core.Position{to}, expected...)
			}
			if got := c.Body(); !reflect.DeepEqual(got, expected) {
				t.Errorf("Body() = %v, expected %v", got, expected)
			}
			if c.Len() != len(expected) {
				t.Errorf("Len() = %v, expected %v", c.Len(), len(expected))
			}
		})
	}
}

func TestCatMoveReusesBuffer(t *testing.T) {
	c := NewCat(core.P(0, 0), 40, core.DirRight)
	buf := &c.buf[0]
	for i := range 40 {
		c.Move(core.P(i+1, 0), false)
	}
	if &c.buf[0] != buf {
		t.Errorf("Move() reallocated within its headroom")
	}
	if c.Head() != core.P(40, 0) || c.Tail() != core.P(1, 0) {
		t.Errorf("Head()/Tail() = %v/%v, expected (40,0)/(1,0)", c.Head(), c.Tail())
	}
}
