// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package template models the declarative resource document emitted by
// streamsynth: a set of typed resources keyed by logical ID with explicit
// dependency edges, serializable to JSON or YAML for the orchestration engine.
package template
