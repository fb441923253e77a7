package topology

import (
	"errors"
	"testing"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/random"
)

func TestBasePort_GlobalIsDeterministic(t *testing.T) {
	src := random.NewSeeded(3)

	first, err := BasePort(ScopeGlobal, 7, src)
	if err != nil {
		t.Fatalf("BasePort: %v", err)
	}

	if first != 37000 {
		t.Fatalf("expected 37000, got %d", first)
	}

	for range 20 {
		again, err := BasePort(ScopeGlobal, 7, src)
		if err != nil || again != first {
			t.Fatalf("expected %d, got %d (err=%v)", first, again, err)
		}
	}
}

func TestBasePort_TransientScopesUseSlotsOneToNine(t *testing.T) {
	for _, scope := range []Scope{ScopeSuite, ScopeTest} {
		t.Run(scope.String(), func(t *testing.T) {
			const pid = 65 // 65 mod 60 = 5

			allowed := map[int]bool{}
			for k := 1; k <= 9; k++ {
				allowed[30000+1000*5+100*k] = true
			}

			seen := map[int]bool{}
			src := random.NewSeeded(11)

			for range 500 {
				port, err := BasePort(scope, pid, src)
				if err != nil {
					t.Fatalf("BasePort: %v", err)
				}

				if !allowed[port] {
					t.Fatalf("port %d outside the transient slots", port)
				}

				seen[port] = true
			}

			if len(seen) < 2 {
				t.Fatalf("expected transient base ports to vary, saw %v", seen)
			}
		})
	}
}

func TestBasePort_NegativeProcessID(t *testing.T) {
	port, err := BasePort(ScopeGlobal, -1, nil)
	if err != nil {
		t.Fatalf("BasePort: %v", err)
	}

	if port != 30000+1000*59 {
		t.Fatalf("expected non-negative modulus, got %d", port)
	}
}

func TestBasePort_Errors(t *testing.T) {
	if _, err := BasePort(Scope(42), 1, random.Default()); !errors.Is(err, sentinel.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}

	if _, err := BasePort(ScopeSuite, 1, nil); !errors.Is(err, sentinel.ErrNilRandomSource) {
		t.Fatalf("expected ErrNilRandomSource, got %v", err)
	}
}

func TestParseScope(t *testing.T) {
	tests := map[string]Scope{"global": ScopeGlobal, "Suite": ScopeSuite, " TEST ": ScopeTest}
	for in, want := range tests {
		got, err := ParseScope(in)
		if err != nil || got != want {
			t.Fatalf("ParseScope(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseScope("cluster"); !errors.Is(err, sentinel.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
}

func TestPortWindow(t *testing.T) {
	w := WindowAt(31200)

	if w.Size() != 100 || w.First != 31200 || w.Last != 31299 {
		t.Fatalf("unexpected window %+v", w)
	}

	if !w.Contains(31250) || w.Contains(31300) || w.Contains(31199) {
		t.Fatal("Contains disagrees with bounds")
	}
}
