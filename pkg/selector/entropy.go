package selector

import (
	"math/rand"
	"sync"
	"time"
)

// Weights applied to the wall-clock components of the temporal entropy.
const (
	weightDay    = 86400
	weightHour   = 3600
	weightMinute = 60
	weightSecond = 1
)

// TitleHash is a 31-based polynomial rolling hash over the runes of title,
// truncated to 32 bits and masked to a non-negative value.
func TitleHash(title string) uint32 {
	var h uint32
	for _, r := range title {
		h = h*31 + uint32(r)
	}
	return h & 0x7fffffff
}

// TemporalEntropy folds day-of-year, hour, minute and second into one number.
func TemporalEntropy(t time.Time) uint64 {
	return uint64(t.YearDay())*weightDay +
		uint64(t.Hour())*weightHour +
		uint64(t.Minute())*weightMinute +
		uint64(t.Second())*weightSecond
}

// Strategy produces the raw selection factor for a request.
type Strategy interface {
	Factor(title string, now time.Time) uint64
}

// TimeHashStrategy blends the clock with the title hash. Same title in the
// same second gives the same factor; anything else usually diverges.
type TimeHashStrategy struct{}

func (TimeHashStrategy) Factor(title string, now time.Time) uint64 {
	return TemporalEntropy(now) + uint64(TitleHash(title))
}

// RandomStrategy ignores its inputs and draws from math/rand.
type RandomStrategy struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rnd: rand.New(rand.NewSource(seed))}
}

func (s *RandomStrategy) Factor(string, time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Uint64() >> 1
}
