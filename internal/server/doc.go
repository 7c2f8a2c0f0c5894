// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server exposes the template synthesizer as an HTTP service, so CI
// systems can render pipeline templates without a local installation.
package server
