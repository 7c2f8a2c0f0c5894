// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package deliverystream assembles the delivery stream resource: it owns the
// permission principal, the optional source stream and at-rest encryption
// wiring, and merges the configuration fragment of the single bound
// destination into the emitted resource.
package deliverystream
