package draft

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
)

// RandomSource produces uniform values in [low, high)
type RandomSource interface {
	Uniform(low, high float64) float64
}

// cryptoSource is the default source for live drafts
type cryptoSource struct{}

// NewCryptoSource returns a source backed by crypto/rand
func NewCryptoSource() RandomSource {
	return cryptoSource{}
}

func (cryptoSource) Uniform(low, high float64) float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return scale(rand.Float64(), low, high)
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return scale(float64(u)/(1<<53), low, high)
}

// seededSource is a reproducible source for tests and simulations
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a PCG-backed source; equal seeds give equal sequences
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Uniform(low, high float64) float64 {
	s.mu.Lock()
	f := s.r.Float64()
	s.mu.Unlock()
	return scale(f, low, high)
}

func scale(f, low, high float64) float64 {
	if high <= low {
		return low
	}
	v := low + f*(high-low)
	if v >= high {
		return math.Nextafter(high, low)
	}
	return v
}
