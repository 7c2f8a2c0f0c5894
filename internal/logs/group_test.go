// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

func TestNewGroup(t *testing.T) {
	t.Parallel()

	tpl := template.New("")
	group, err := NewGroup(tpl, "PipelineLogGroup")
	require.NoError(t, err)

	resource, found := tpl.Resource("PipelineLogGroup")
	require.True(t, found)
	assert.Equal(t, "AWS::Logs::LogGroup", resource.Type)
	assert.Equal(t, template.Ref("PipelineLogGroup"), group.Name())
}

func TestImportGroup(t *testing.T) {
	t.Parallel()

	_, err := ImportGroup("")
	assert.ErrorIs(t, err, template.ErrLookup)
	assert.EqualError(t, err, "unresolvable reference: no log group name provided for import")

	group, err := ImportGroup("/aws/delivery/test")
	require.NoError(t, err)
	assert.Equal(t, "/aws/delivery/test", group.Name())
}

func TestAddStream(t *testing.T) {
	t.Parallel()

	tpl := template.New("")
	group, err := NewGroup(tpl, "PipelineLogGroup")
	require.NoError(t, err)

	stream, err := group.AddStream(tpl, "PipelineDeliveryLogStream", "Delivery")
	require.NoError(t, err)
	assert.Equal(t, "Delivery", stream.Name())

	resource, found := tpl.Resource("PipelineDeliveryLogStream")
	require.True(t, found)
	assert.Equal(t, "AWS::Logs::LogStream", resource.Type)
	assert.Equal(t, template.Ref("PipelineLogGroup"), resource.Properties["LogGroupName"])
	assert.Equal(t, "Delivery", resource.Properties["LogStreamName"])
}

func TestGrantWrite(t *testing.T) {
	t.Parallel()

	tpl := template.New("")
	role, err := iam.NewRole(tpl, "PipelineRole", "firehose.amazonaws.com")
	require.NoError(t, err)

	group, err := NewGroup(tpl, "PipelineLogGroup")
	require.NoError(t, err)

	grantID, err := group.GrantWrite(role)
	require.NoError(t, err)

	policy, found := tpl.Resource(grantID)
	require.True(t, found)

	document := policy.Properties["PolicyDocument"].(map[string]any)
	statement := document["Statement"].([]any)[0].(map[string]any)
	assert.Equal(t, []string{"logs:CreateLogStream", "logs:PutLogEvents"}, statement["Action"])
	assert.Equal(t, []any{template.GetAtt("PipelineLogGroup", "Arn")}, statement["Resource"])
}
