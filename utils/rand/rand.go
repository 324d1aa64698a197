// Package rand draws secure randoms from the system RNG. Oracle agents use it
// to pick the statuses they report.
//
// Functions in this package may return an error if the underlying system implementation fails
// to read new randoms. When that happens, this package considers it an irrecoverable exception.
package rand

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Uint64 returns a random uint64.
func Uint64() (uint64, error) {
	buffer := make([]byte, 8)
	if _, err := rand.Read(buffer); err != nil {
		return 0, fmt.Errorf("crypto/rand read failed: %w", err)
	}
	return binary.LittleEndian.Uint64(buffer), nil
}

// Uint64n returns a random uint64 strictly less than n, which must be positive.
// Values are drawn by rejection sampling over the smallest bit mask covering
// n-1, so the result is uniform.
func Uint64n(n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("n should be strictly positive, got %d", n)
	}
	max := n - 1
	mask := uint64(0)
	for max&mask != max {
		mask = (mask << 1) | 1
	}

	for {
		random, err := Uint64()
		if err != nil {
			return 0, err
		}
		random &= mask
		if random <= max {
			return random, nil
		}
	}
}

// Uintn returns a random uint strictly less than n, which must be positive.
func Uintn(n uint) (uint, error) {
	r, err := Uint64n(uint64(n))
	return uint(r), err
}

// Shuffle randomly permutes n elements in place using the provided swap
// function (Fisher-Yates).
func Shuffle(n uint, swap func(i, j uint)) error {
	for i := uint(0); i+1 < n; i++ {
		j, err := Uintn(n - i)
		if err != nil {
			return err
		}
		swap(i, i+j)
	}
	return nil
}

// Sample returns a uniformly drawn element of the non-empty slice.
func Sample[T any](elements []T) (T, error) {
	var zero T
	if len(elements) == 0 {
		return zero, fmt.Errorf("cannot sample from an empty slice")
	}
	i, err := Uintn(uint(len(elements)))
	if err != nil {
		return zero, err
	}
	return elements[i], nil
}
