package topology

import (
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/random"
)

// SelectSeeds picks seedCount distinct ordinals out of [0, nodeCount), returned in ascending order.
// When every node is a seed no randomness is used. Otherwise a partial Fisher-Yates shuffle draws
// exactly seedCount values from src, so the call always terminates.
func SelectSeeds(nodeCount, seedCount int, src random.Source) ([]int, error) {
	if nodeCount <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidNodeCount, "nodeCount=%d", nodeCount)
	}

	if seedCount < 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidSeedCount, "seedCount=%d", seedCount)
	}

	if seedCount > nodeCount {
		return nil, ewrap.Wrapf(sentinel.ErrSeedCountExceedsNodes, "seedCount=%d nodeCount=%d", seedCount, nodeCount)
	}

	if seedCount == 0 {
		return []int{}, nil
	}

	ordinals := make([]int, nodeCount)
	for i := range ordinals {
		ordinals[i] = i
	}

	if seedCount == nodeCount {
		return ordinals, nil
	}

	if src == nil {
		return nil, sentinel.ErrNilRandomSource
	}

	for i := range seedCount {
		j := i + src.IntN(nodeCount-i)
		ordinals[i], ordinals[j] = ordinals[j], ordinals[i]
	}

	seeds := slices.Clone(ordinals[:seedCount])
	slices.Sort(seeds)

	return seeds, nil
}

// ValidateSeedOrdinals checks an explicit seed list: every ordinal must lie in [0, nodeCount)
// and appear once.
func ValidateSeedOrdinals(nodeCount int, ordinals []int) error {
	if nodeCount <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidNodeCount, "nodeCount=%d", nodeCount)
	}

	seen := make(map[int]struct{}, len(ordinals))
	for _, o := range ordinals {
		if o < 0 || o >= nodeCount {
			return ewrap.Wrapf(sentinel.ErrSeedOrdinalOutOfRange, "ordinal %d not in [0,%d)", o, nodeCount)
		}

		if _, dup := seen[o]; dup {
			return ewrap.Wrapf(sentinel.ErrDuplicateSeedOrdinal, "ordinal %d", o)
		}

		seen[o] = struct{}{}
	}

	return nil
}
