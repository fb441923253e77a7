package topology

import (
	"slices"

	"github.com/hyp3rd/hypertopo/pkg/random"
	"github.com/hyp3rd/hypertopo/pkg/settings"
)

type options struct {
	extra        settings.Settings
	seedCount    int
	hasSeedCount bool
	seedOrdinals []int
	hasOrdinals  bool
	src          random.Source
	processID    int
	hasProcessID bool
	mode         NodeMode
	hasMode      bool
}

// Option configures a Topology at construction. Seed and port options only affect NewUnicast.
type Option func(*options)

// WithExtraSettings layers s on top of the default settings. Keys in s win over both the
// defaults and every value the topology computes for a node.
func WithExtraSettings(s settings.Settings) Option {
	return func(o *options) { o.extra = settings.Merge(o.extra, s) }
}

// WithSeedCount sets how many randomly chosen nodes act as seeds (default: all of them).
func WithSeedCount(n int) Option {
	return func(o *options) {
		o.seedCount = n
		o.hasSeedCount = true
	}
}

// WithSeedOrdinals fixes the seed nodes explicitly, bypassing random selection. The list is used as given.
func WithSeedOrdinals(ordinals ...int) Option {
	cp := slices.Clone(ordinals)
	if cp == nil {
		cp = []int{}
	}

	return func(o *options) {
		o.seedOrdinals = cp
		o.hasOrdinals = true
	}
}

// WithRandom sets the source used for seed selection and port-slot draws.
func WithRandom(src random.Source) Option {
	return func(o *options) { o.src = src }
}

// WithProcessID overrides the process id used for port range separation (default ProcessID()).
func WithProcessID(id int) Option {
	return func(o *options) {
		o.processID = id
		o.hasProcessID = true
	}
}

// WithDefaultNodeMode sets the mode used when the settings carry no node.mode (default DefaultNodeMode()).
func WithDefaultNodeMode(mode NodeMode) Option {
	return func(o *options) {
		o.mode = mode
		o.hasMode = true
	}
}

func applyOptions(opts []Option) options {
	o := options{src: random.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.hasProcessID {
		o.processID = ProcessID()
	}

	if !o.hasMode {
		o.mode = DefaultNodeMode()
	}

	return o
}
