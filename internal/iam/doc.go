// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package iam models the permission principal of a pipeline and the access
// grants attached to it during synthesis.
package iam
