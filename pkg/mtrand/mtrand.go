// Package mtrand implements the 32-bit Mersenne Twister (MT19937) together
// with the range mapping PHP (>= 7.1) applies in mt_rand(min, max).
//
// Given the same seed, Source produces the same values as PHP's
// mt_srand(seed) followed by mt_rand calls, so identifiers derived from
// these draws stay stable across implementations.
package mtrand

import (
	"errors"
	"math"
)

const (
	stateSize  = 624
	shiftSize  = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	initFactor = 1812433253
)

var ErrInvalidRange = errors.New("mtrand: max is smaller than min")

type Source struct {
	state [stateSize]uint32
	index int
}

func New(seed uint32) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator using the init_genrand procedure.
func (s *Source) Seed(seed uint32) {
	s.state[0] = seed
	for i := 1; i < stateSize; i++ {
		prev := s.state[i-1]
		s.state[i] = initFactor*(prev^(prev>>30)) + uint32(i)
	}
	s.index = stateSize
}

func (s *Source) reload() {
	for i := 0; i < stateSize; i++ {
		y := (s.state[i] & upperMask) | (s.state[(i+1)%stateSize] & lowerMask)
		next := s.state[(i+shiftSize)%stateSize] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		s.state[i] = next
	}
	s.index = 0
}

// Uint32 returns the next tempered 32-bit output.
func (s *Source) Uint32() uint32 {
	if s.index >= stateSize {
		s.reload()
	}
	y := s.state[s.index]
	s.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Rand mirrors mt_rand() without arguments.
func (s *Source) Rand() int64 {
	return int64(s.Uint32() >> 1)
}

// Range mirrors mt_rand(min, max): a uniform value in [min, max] obtained by
// rejection sampling. At least one output is consumed even when min == max.
func (s *Source) Range(min, max int64) (int64, error) {
	if max < min {
		return 0, ErrInvalidRange
	}
	umax := uint64(max) - uint64(min)
	if umax > math.MaxUint32 {
		return int64(uint64(min) + s.range64(umax)), nil
	}
	return int64(uint64(min) + uint64(s.range32(uint32(umax)))), nil
}

func (s *Source) range32(umax uint32) uint32 {
	result := s.Uint32()
	if umax == math.MaxUint32 {
		return result
	}
	umax++
	if umax&(umax-1) != 0 {
		limit := math.MaxUint32 - (math.MaxUint32 % umax) - 1
		for result > limit {
			result = s.Uint32()
		}
	}
	return result % umax
}

func (s *Source) range64(umax uint64) uint64 {
	result := s.next64()
	if umax == math.MaxUint64 {
		return result
	}
	umax++
	if umax&(umax-1) != 0 {
		limit := math.MaxUint64 - (math.MaxUint64 % umax) - 1
		for result > limit {
			result = s.next64()
		}
	}
	return result % umax
}

func (s *Source) next64() uint64 {
	hi := uint64(s.Uint32())
	return hi<<32 | uint64(s.Uint32())
}
