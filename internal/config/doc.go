// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config holds the schema of the pipeline definition files accepted by
// streamsynth and the loader that decodes them.
package config
