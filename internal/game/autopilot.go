package game

import "github.com/vovakirdan/greedycat/internal/core"

// Autopilot picks a turn for headless runs: the safe direction that gets
// closest to the food, preferring to keep going straight on ties.
// The boolean is false when no turn is needed or every move is fatal.
func Autopilot(s Snapshot) (core.Direction, bool) {
	if len(s.Cat) == 0 || s.State != StatePlaying {
		return s.Direction, false
	}

	blocked := make(map[core.Position]bool, len(s.Cat)+len(s.Obstacles))
	for _, p := range s.Cat[:len(s.Cat)-1] {
		blocked[p] = true
	}
	for _, o := range s.Obstacles {
		blocked[o.Position] = true
	}

	head := s.Head()
	target := s.Food.Position
	if !s.Food.Valid() {
		target = head
	}

	best, bestDist, found := s.Direction, 0, false
	for _, d := range []core.Direction{s.Direction, core.DirUp, core.DirRight, core.DirDown, core.DirLeft} {
		if d == s.Direction.Opposite() {
			continue
		}
		next := head.Step(d)
		if !next.InBounds(s.Width, s.Height) || blocked[next] {
			continue
		}
		dist := next.Manhattan(target)
		if !found || dist < bestDist {
			best, bestDist, found = d, dist, true
		}
	}
	if !found || best == s.Direction {
		return s.Direction, false
	}
	return best, true
}
