// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination defines the contract every delivery destination
// implements and the shared policies used to build its configuration fragment:
// buffering hints, error logging, record backup and record processing.
package destination
