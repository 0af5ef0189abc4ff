// Package engine defines the failure taxonomy shared by the numeric
// core (sample store, statistics, portfolio scoring, projections, tax).
//
// All of these are fail-fast caller errors detected before any
// computation runs; none are retryable and none produce partial
// results. Aggregation functions deliberately never fail on empty
// input - they return zero-valued aggregates with a count the caller
// must check.
package engine

import "errors"

var (
	// ErrInvalidSample rejects samples with an empty name or a
	// non-finite value.
	ErrInvalidSample = errors.New("invalid sample")

	// ErrInvalidHolding rejects holdings with non-positive shares or
	// cost basis, or negative price/dividend. Malformed holdings are
	// rejected outright rather than silently skewing aggregates.
	ErrInvalidHolding = errors.New("invalid holding")

	// ErrInvalidScenario rejects negative income, contribution, or
	// expense components.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrInvalidTimeline rejects retirement timelines that run
	// backwards (retirement before current age, death before
	// retirement).
	ErrInvalidTimeline = errors.New("invalid timeline")

	// ErrUnknownJurisdiction rejects unrecognized filing statuses and
	// state names instead of substituting a default rate.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
)
