// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package storage models the object-store buckets a pipeline delivers to or
// mirrors records into, either owned by the template or imported by ARN.
package storage
