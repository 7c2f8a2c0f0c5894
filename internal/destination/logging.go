// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/logs"
	"github.com/mia-platform/streamsynth/internal/template"
)

// LoggingProps configures error logging for a delivery flow. Logging is on by
// default: it is active unless Enabled is explicitly false.
type LoggingProps struct {
	Enabled *bool
	Group   *logs.Group
}

// LoggingOptions builds the logging fragment for the delivery flow identified
// by streamID, provisioning the log group and a dedicated log stream.
//
// The first call on a binder instance resolves the log group, reusing the
// provided one or creating an owned one; later calls reuse it regardless of
// streamID, so one group collects a stream per flow. The write grant for the
// pipeline principal is recorded as a dependency edge on the bind context.
func (s *BindSupport) LoggingOptions(bctx *BindContext, props LoggingProps, streamID string) (map[string]any, error) {
	disabled := props.Enabled != nil && !*props.Enabled
	if disabled && props.Group != nil {
		return nil, fmt.Errorf("%w: logging is disabled but a log group was provided", template.ErrContradiction)
	}
	if disabled {
		return nil, nil
	}

	if s.logGroup == nil {
		group := props.Group
		if group == nil {
			owned, err := logs.NewGroup(bctx.Template, bctx.Scope+"LogGroup")
			if err != nil {
				return nil, err
			}
			group = owned
		}
		s.logGroup = group
	}

	grantID, err := s.logGroup.GrantWrite(bctx.Role)
	if err != nil {
		return nil, err
	}
	bctx.AddDependency(grantID)

	stream, err := s.logGroup.AddStream(bctx.Template, bctx.Scope+streamID+"LogStream", streamID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"Enabled":       true,
		"LogGroupName":  s.logGroup.Name(),
		"LogStreamName": stream.Name(),
	}, nil
}
