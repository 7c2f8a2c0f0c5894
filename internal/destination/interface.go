// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"
	"slices"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/logs"
	"github.com/mia-platform/streamsynth/internal/template"
)

// Config is the configuration fragment a destination contributes to the
// delivery stream resource. It holds exactly one top-level key, specific to
// the destination kind.
type Config map[string]any

// Binder translates a destination configuration into its Config fragment,
// adding any owned sub-resource to the template held by the bind context.
type Binder interface {
	Bind(ctx context.Context, bctx *BindContext) (Config, error)
}

// BindContext exposes the pipeline state a destination needs while binding:
// the template being assembled, the permission principal, and the logical-ID
// scope its owned resources are named under. It also collects the dependency
// edges the delivery stream resource must wait on.
type BindContext struct {
	Template *template.Template
	Role     *iam.Role
	Scope    string

	dependencies []string
}

// AddDependency records logicalID as a resource the delivery stream must wait
// for. Recording the same ID twice is harmless.
func (c *BindContext) AddDependency(logicalID string) {
	if !slices.Contains(c.dependencies, logicalID) {
		c.dependencies = append(c.dependencies, logicalID)
	}
}

// Dependencies returns the dependency edges collected during the bind.
func (c *BindContext) Dependencies() []string {
	return slices.Clone(c.dependencies)
}

// BindSupport carries the state shared by the binding policies within a single
// binder instance. The zero value is ready to use; instances must not be
// shared between binders.
type BindSupport struct {
	// logGroup is created on the first LoggingOptions call and reused by every
	// later call on the same instance, so repeated calls share one group with
	// a stream each.
	logGroup *logs.Group
}
