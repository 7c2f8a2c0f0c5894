// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logs

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	groupResourceType  = "AWS::Logs::LogGroup"
	streamResourceType = "AWS::Logs::LogStream"
)

var writeActions = []string{
	"logs:CreateLogStream",
	"logs:PutLogEvents",
}

// Group is a log group owned by the template or imported by name.
type Group struct {
	logicalID string
	name      any
	arn       any
}

// Stream is a named log stream inside a Group.
type Stream struct {
	logicalID string
	name      string
}

// Name returns the stream name.
func (s *Stream) Name() string {
	return s.name
}

// NewGroup adds an owned log group to tpl and returns it. The group name is
// left to the orchestration engine to generate.
func NewGroup(tpl *template.Template, logicalID string) (*Group, error) {
	resource := &template.Resource{
		Type:       groupResourceType,
		Properties: map[string]any{},
	}
	if err := tpl.Add(logicalID, resource); err != nil {
		return nil, err
	}

	return &Group{
		logicalID: logicalID,
		name:      template.Ref(logicalID),
		arn:       template.GetAtt(logicalID, "Arn"),
	}, nil
}

// ImportGroup returns a group referencing an existing log group by name.
func ImportGroup(name string) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no log group name provided for import", template.ErrLookup)
	}

	return &Group{
		name: name,
		arn:  template.Sub("arn:${AWS::Partition}:logs:${AWS::Region}:${AWS::AccountId}:log-group:" + name + ":*"),
	}, nil
}

// Name returns the group name, a literal for imported groups or a reference
// for owned ones.
func (g *Group) Name() any {
	return g.name
}

// AddStream adds a log stream named streamName inside the group.
func (g *Group) AddStream(tpl *template.Template, logicalID, streamName string) (*Stream, error) {
	resource := &template.Resource{
		Type: streamResourceType,
		Properties: map[string]any{
			"LogGroupName":  g.name,
			"LogStreamName": streamName,
		},
	}
	if err := tpl.Add(logicalID, resource); err != nil {
		return nil, err
	}

	return &Stream{logicalID: logicalID, name: streamName}, nil
}

// GrantWrite grants role permission to write log events to the group,
// returning the logical ID of the grant for dependency ordering.
func (g *Group) GrantWrite(role *iam.Role) (string, error) {
	return role.Grant(iam.Statement{
		Actions:   writeActions,
		Resources: []any{g.arn},
	})
}
