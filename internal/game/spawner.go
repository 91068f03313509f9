package game

import (
	"math/rand"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// safeZoneRadius is the half-width of the obstacle-free square at the grid center.
const safeZoneRadius = 3

// Blocked reports whether a cell is unavailable for spawning.
type Blocked func(p core.Position) bool

// Spawner picks random free cells and random entity kinds.
type Spawner struct {
	rng    *rand.Rand
	width  int
	height int
	food   config.FoodTable
}

// NewSpawner creates a spawner for a w×h grid.
func NewSpawner(rng *rand.Rand, w, h int, food config.FoodTable) *Spawner {
	return &Spawner{rng: rng, width: w, height: h, food: food}
}

// pick scans the grid column by column and returns a uniformly random
// cell for which blocked is false.
func (s *Spawner) pick(blocked Blocked) (core.Position, bool) {
	var free []core.Position
	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			p := core.Position{X: x, Y: y}
			if !blocked(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return NoPosition, false
	}
	return free[s.rng.Intn(len(free))], true
}

// FoodCell returns a free cell for food. False means the grid is full.
func (s *Spawner) FoodCell(blocked Blocked) (core.Position, bool) {
	return s.pick(blocked)
}

// ObstacleCell returns a free cell for an obstacle outside the center safe zone.
func (s *Spawner) ObstacleCell(blocked Blocked) (core.Position, bool) {
	return s.pick(func(p core.Position) bool {
		return s.InSafeZone(p) || blocked(p)
	})
}

// PowerUpCell returns a free cell for a power-up.
func (s *Spawner) PowerUpCell(blocked Blocked) (core.Position, bool) {
	return s.pick(blocked)
}

// BossCell returns a boss position away from the head: the first free
// quadrant candidate at ±offset, clamped to the grid, else the grid center.
func (s *Spawner) BossCell(head core.Position, offset int, blocked Blocked) core.Position {
	maxX, maxY := s.width-1, s.height-1
	candidates := []core.Position{
		{X: max(0, head.X-offset), Y: max(0, head.Y-offset)},
		{X: min(maxX, head.X+offset), Y: max(0, head.Y-offset)},
		{X: max(0, head.X-offset), Y: min(maxY, head.Y+offset)},
		{X: min(maxX, head.X+offset), Y: min(maxY, head.Y+offset)},
	}
	for _, p := range candidates {
		if !blocked(p) {
			return p
		}
	}
	return core.Position{X: s.width / 2, Y: s.height / 2}
}

// InSafeZone reports whether p is within the obstacle-free center square.
func (s *Spawner) InSafeZone(p core.Position) bool {
	return core.Abs(p.X-s.width/2) < safeZoneRadius && core.Abs(p.Y-s.height/2) < safeZoneRadius
}

// RandomFoodType draws a fish kind using the configured weights.
func (s *Spawner) RandomFoodType() FoodType {
	total := s.food.Small.Weight + s.food.Medium.Weight + s.food.Large.Weight
	if total <= 0 {
		return FoodSmallFish
	}
	r := s.rng.Intn(total)
	switch {
	case r < s.food.Small.Weight:
		return FoodSmallFish
	case r < s.food.Small.Weight+s.food.Medium.Weight:
		return FoodMediumFish
	default:
		return FoodLargeFish
	}
}

// RandomObstacleType draws an obstacle kind uniformly.
func (s *Spawner) RandomObstacleType() ObstacleType {
	return obstacleTypes[s.rng.Intn(len(obstacleTypes))]
}

// RandomPowerUpType draws a power-up kind uniformly.
func (s *Spawner) RandomPowerUpType() PowerUpType {
	return powerUpTypes[s.rng.Intn(len(powerUpTypes))]
}

// Chance returns true with probability p.
func (s *Spawner) Chance(p float64) bool {
	return s.rng.Float64() < p
}
