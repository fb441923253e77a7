// Package sentinel provides standardized error definitions for the hypertopo system.
// This package centralizes all error types used across the topology components,
// ensuring consistent error handling and messaging throughout the module.
//
// The errors defined here cover various scenarios including:
// - Invalid construction parameters (node counts, seed counts, seed ordinals, scopes)
// - Invalid lookups against a built topology (ordinals out of range, unknown node modes)
// - Settings access and encoding failures (malformed values, unknown serializers)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities. Callers match them with errors.Is.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidNodeCount is returned when a topology is requested with zero or negative nodes.
	ErrInvalidNodeCount = ewrap.New("node count must be positive")

	// ErrInvalidSeedCount is returned when a negative seed count is requested.
	ErrInvalidSeedCount = ewrap.New("seed count cannot be negative")

	// ErrSeedCountExceedsNodes is returned when more seeds than nodes are requested.
	ErrSeedCountExceedsNodes = ewrap.New("seed count exceeds node count")

	// ErrSeedOrdinalOutOfRange is returned when an explicit seed ordinal falls outside [0, nodeCount).
	ErrSeedOrdinalOutOfRange = ewrap.New("seed ordinal out of range")

	// ErrDuplicateSeedOrdinal is returned when an explicit seed ordinal list repeats an ordinal.
	ErrDuplicateSeedOrdinal = ewrap.New("duplicate seed ordinal")

	// ErrConflictingSeedOptions is returned when both a seed count and explicit seed ordinals are supplied.
	ErrConflictingSeedOptions = ewrap.New("seed count and seed ordinals are mutually exclusive")

	// ErrOrdinalOutOfRange is returned when settings are requested for an ordinal outside [0, nodeCount).
	ErrOrdinalOutOfRange = ewrap.New("node ordinal out of range")

	// ErrInvalidScope is returned when an unknown execution scope is used.
	ErrInvalidScope = ewrap.New("invalid scope")

	// ErrInvalidNodeMode is returned when the node.mode setting holds an unknown transport mode.
	ErrInvalidNodeMode = ewrap.New("invalid node mode")

	// ErrPortWindowExceeded is returned when a networked topology needs more ports than its reserved window.
	ErrPortWindowExceeded = ewrap.New("node count exceeds the reserved port window")

	// ErrNilRandomSource is returned when a nil random source is supplied.
	ErrNilRandomSource = ewrap.New("nil random source")

	// ErrInvalidSettingValue is returned when a setting cannot be read as the requested type.
	ErrInvalidSettingValue = ewrap.New("invalid setting value")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")
)
