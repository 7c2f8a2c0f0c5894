// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

// newBindContext returns a bind context over a fresh template with a pipeline
// principal already in place.
func newBindContext(t *testing.T) *BindContext {
	t.Helper()

	tpl := template.New("")
	role, err := iam.NewRole(tpl, "TestRole", "firehose.amazonaws.com")
	require.NoError(t, err)

	return &BindContext{
		Template: tpl,
		Role:     role,
		Scope:    "Test",
	}
}

func boolOf(value bool) *bool {
	return &value
}
