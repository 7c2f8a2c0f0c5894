// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package template

import "errors"

// Synthesis failures are always configuration errors: the input describes an
// unsatisfiable or contradictory pipeline and nothing is retried. Every error
// raised during assembly wraps one of these sentinels so callers can classify
// it without parsing the message.
var (
	// ErrOutOfRange reports a numeric input outside its allowed interval.
	ErrOutOfRange = errors.New("value out of range")
	// ErrContradiction reports two inputs that imply mutually exclusive intents.
	ErrContradiction = errors.New("contradictory configuration")
	// ErrCardinality reports a collection with an invalid number of elements.
	ErrCardinality = errors.New("invalid cardinality")
	// ErrLookup reports a reference that cannot be resolved.
	ErrLookup = errors.New("unresolvable reference")
	// ErrDomainValidation reports a destination-specific syntactic rule violation.
	ErrDomainValidation = errors.New("invalid value")
)
