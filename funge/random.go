package funge

import (
	"math/rand"
	"time"
)

// RandomSource supplies the direction chosen by the ? command. The engine
// picks among the four terminator targets with it, so a uniform source gives
// a uniform choice of successor blocks.
type RandomSource interface {
	Direction() Direction
}

type randSource struct {
	r *rand.Rand
}

// NewRandomSource returns a seeded uniform source, for reproducible runs.
func NewRandomSource(seed int64) RandomSource {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func newTimeSeededSource() RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (s *randSource) Direction() Direction {
	return Direction(s.r.Intn(int(numDirections)))
}
