// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logs models the log groups and log streams a destination writes its
// delivery errors to.
package logs
