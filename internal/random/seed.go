// Package random provides seed generation and seeded generators.
//
// Seeds come from crypto/rand so that two runs started in the same
// nanosecond still diverge; the generators themselves are math/rand so a
// recorded seed replays a run exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a generator for seed. A zero seed draws a fresh one;
// the seed actually used is returned so callers can report it.
func NewRand(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// Derive returns the seed for the n-th child of a seeded run.
// Children of the same parent never share a seed.
func Derive(parent int64, n int) int64 {
	// splitmix64 finalizer
	z := uint64(parent) + uint64(n+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return int64(z)
}
