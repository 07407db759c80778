// ABOUTME: Erlang-B capacity calculator for signalling channels
// ABOUTME: Finds the minimal channel count meeting a target blocking probability

package services

import (
	"fmt"
	"math"

	"github.com/ubaidashraf22/RF/backend/models"
)

const (
	// DefaultBlockingProbability is the grade of service used when none is given.
	DefaultBlockingProbability = 0.001
	// DefaultMaxChannels bounds the channel search.
	DefaultMaxChannels = 4096
)

// ErlangB returns the blocking probability for offered load (Erlangs) on the
// given number of channels. It iterates the inverse recurrence
// invB(i) = 1 + (i/A)*invB(i-1), which stays finite far longer than the
// direct factorial form.
func ErlangB(load float64, channels int) float64 {
	if load <= 0 {
		return 0
	}
	if channels <= 0 {
		return 1
	}

	invB := 1.0
	for i := 1; i <= channels; i++ {
		invB = 1.0 + (float64(i)/load)*invB
	}
	return 1.0 / invB
}

// ValidateBlocking checks that p is a usable target blocking probability.
func ValidateBlocking(p float64) error {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return fmt.Errorf("%w: got %v", models.ErrInvalidBlocking, p)
	}
	return nil
}

// CapacityCalculator inverts Erlang-B: load and target in, channels out.
type CapacityCalculator struct {
	maxChannels int
}

// NewCapacityCalculator creates a calculator that gives up after maxChannels.
// A non-positive bound selects DefaultMaxChannels.
func NewCapacityCalculator(maxChannels int) *CapacityCalculator {
	if maxChannels <= 0 {
		maxChannels = DefaultMaxChannels
	}
	return &CapacityCalculator{maxChannels: maxChannels}
}

// MaxChannels returns the search bound.
func (c *CapacityCalculator) MaxChannels() int {
	return c.maxChannels
}

// RequiredChannels returns the smallest N >= 1 with ErlangB(load, N) <= target.
// A load that is zero, negative, or NaN needs no channels.
func (c *CapacityCalculator) RequiredChannels(load, target float64) (int, error) {
	if err := ValidateBlocking(target); err != nil {
		return 0, err
	}
	if !(load > 0) {
		return 0, nil
	}
	if math.IsInf(load, 1) {
		return 0, fmt.Errorf("%w: infinite offered load", models.ErrCapacityOverflow)
	}

	// Same recurrence as ErlangB, advanced one channel per step so the
	// search stays linear in N.
	invB := 1.0
	for n := 1; n <= c.maxChannels; n++ {
		invB = 1.0 + (float64(n)/load)*invB
		if 1.0/invB <= target {
			return n, nil
		}
	}

	return 0, fmt.Errorf("%w: %.3f Erl needs more than %d channels at %v blocking",
		models.ErrCapacityOverflow, load, c.maxChannels, target)
}

// Blocking returns the blocking probability achieved by the given channels.
func (c *CapacityCalculator) Blocking(load float64, channels int) float64 {
	return ErlangB(load, channels)
}
