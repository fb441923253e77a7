package topology

import (
	"errors"
	"slices"
	"testing"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/random"
)

// failingSource fails the test if it is ever drawn from.
type failingSource struct{ t *testing.T }

func (f failingSource) IntN(int) int {
	f.t.Fatal("random source used when no draw was needed")

	return 0
}

func TestSelectSeeds_AllNodes(t *testing.T) {
	seeds, err := SelectSeeds(5, 5, failingSource{t})
	if err != nil {
		t.Fatalf("SelectSeeds: %v", err)
	}

	if !slices.Equal(seeds, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("expected every ordinal, got %v", seeds)
	}
}

func TestSelectSeeds_Subset(t *testing.T) {
	src := random.NewSeeded(99)

	for nodes := 1; nodes <= 12; nodes++ {
		for count := 0; count < nodes; count++ {
			seeds, err := SelectSeeds(nodes, count, src)
			if err != nil {
				t.Fatalf("SelectSeeds(%d,%d): %v", nodes, count, err)
			}

			if len(seeds) != count {
				t.Fatalf("SelectSeeds(%d,%d) returned %d seeds", nodes, count, len(seeds))
			}

			if !slices.IsSorted(seeds) {
				t.Fatalf("seeds not sorted: %v", seeds)
			}

			for i, s := range seeds {
				if s < 0 || s >= nodes {
					t.Fatalf("seed %d outside [0,%d)", s, nodes)
				}

				if i > 0 && seeds[i-1] == s {
					t.Fatalf("duplicate seed %d in %v", s, seeds)
				}
			}
		}
	}
}

func TestSelectSeeds_ZeroIsEmpty(t *testing.T) {
	seeds, err := SelectSeeds(4, 0, failingSource{t})
	if err != nil {
		t.Fatalf("SelectSeeds: %v", err)
	}

	if len(seeds) != 0 {
		t.Fatalf("expected no seeds, got %v", seeds)
	}
}

func TestSelectSeeds_EveryOrdinalReachable(t *testing.T) {
	src := random.NewSeeded(5)
	hits := map[int]int{}

	for range 400 {
		seeds, err := SelectSeeds(6, 1, src)
		if err != nil {
			t.Fatalf("SelectSeeds: %v", err)
		}

		hits[seeds[0]]++
	}

	for o := range 6 {
		if hits[o] == 0 {
			t.Fatalf("ordinal %d never selected: %v", o, hits)
		}
	}
}

func TestSelectSeeds_Preconditions(t *testing.T) {
	tests := []struct {
		name      string
		nodes     int
		seeds     int
		expectErr error
	}{
		{"more seeds than nodes", 3, 4, sentinel.ErrSeedCountExceedsNodes},
		{"negative seeds", 3, -1, sentinel.ErrInvalidSeedCount},
		{"empty topology", 0, 0, sentinel.ErrInvalidNodeCount},
		{"negative nodes", -2, 1, sentinel.ErrInvalidNodeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectSeeds(tt.nodes, tt.seeds, random.Default())
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestValidateSeedOrdinals(t *testing.T) {
	if err := ValidateSeedOrdinals(4, []int{3, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateSeedOrdinals(4, nil); err != nil {
		t.Fatalf("empty list should be valid: %v", err)
	}

	if err := ValidateSeedOrdinals(4, []int{4}); !errors.Is(err, sentinel.ErrSeedOrdinalOutOfRange) {
		t.Fatalf("expected ErrSeedOrdinalOutOfRange, got %v", err)
	}

	if err := ValidateSeedOrdinals(4, []int{-1}); !errors.Is(err, sentinel.ErrSeedOrdinalOutOfRange) {
		t.Fatalf("expected ErrSeedOrdinalOutOfRange, got %v", err)
	}

	if err := ValidateSeedOrdinals(4, []int{1, 1}); !errors.Is(err, sentinel.ErrDuplicateSeedOrdinal) {
		t.Fatalf("expected ErrDuplicateSeedOrdinal, got %v", err)
	}
}
