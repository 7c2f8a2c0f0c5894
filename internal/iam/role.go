// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package iam

import (
	"reflect"

	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	roleResourceType   = "AWS::IAM::Role"
	policyResourceType = "AWS::IAM::Policy"

	policySuffix = "DefaultPolicy"
)

// Statement is a single allow statement of a policy document.
type Statement struct {
	Actions   []string
	Resources []any
}

func (s Statement) document() map[string]any {
	return map[string]any{
		"Effect":   "Allow",
		"Action":   s.Actions,
		"Resource": s.Resources,
	}
}

// Role is the principal a pipeline and its processors act as. Grants attached
// to the role accumulate in a single policy resource created on first use.
type Role struct {
	logicalID string
	tpl       *template.Template

	statements []Statement
}

// NewRole adds a role assumable by service to tpl and returns it.
func NewRole(tpl *template.Template, logicalID, service string) (*Role, error) {
	resource := &template.Resource{
		Type: roleResourceType,
		Properties: map[string]any{
			"AssumeRolePolicyDocument": map[string]any{
				"Version": "2012-10-17",
				"Statement": []any{
					map[string]any{
						"Effect":    "Allow",
						"Action":    "sts:AssumeRole",
						"Principal": map[string]any{"Service": service},
					},
				},
			},
		},
	}

	if err := tpl.Add(logicalID, resource); err != nil {
		return nil, err
	}

	return &Role{logicalID: logicalID, tpl: tpl}, nil
}

// LogicalID returns the logical ID of the role resource.
func (r *Role) LogicalID() string {
	return r.logicalID
}

// ARN returns the reference to the role ARN.
func (r *Role) ARN() any {
	return template.GetAtt(r.logicalID, "Arn")
}

// PolicyLogicalID returns the logical ID of the policy resource holding the
// role grants. The policy exists only after the first Grant call.
func (r *Role) PolicyLogicalID() string {
	return r.logicalID + policySuffix
}

// Grant attaches statement to the role policy and returns the logical ID of
// the policy resource, so callers can record it as a dependency of resources
// that need the grant in place. Granting the same statement twice is harmless.
func (r *Role) Grant(statement Statement) (string, error) {
	policyID := r.PolicyLogicalID()

	for _, existing := range r.statements {
		if reflect.DeepEqual(existing, statement) {
			return policyID, nil
		}
	}

	policy, found := r.tpl.Resource(policyID)
	if !found {
		policy = &template.Resource{
			Type: policyResourceType,
			Properties: map[string]any{
				"PolicyName": policyID,
				"Roles":      []any{template.Ref(r.logicalID)},
				"PolicyDocument": map[string]any{
					"Version":   "2012-10-17",
					"Statement": []any{},
				},
			},
		}
		if err := r.tpl.Add(policyID, policy); err != nil {
			return "", err
		}
	}

	document := policy.Properties["PolicyDocument"].(map[string]any)
	document["Statement"] = append(document["Statement"].([]any), statement.document())
	r.statements = append(r.statements, statement)

	return policyID, nil
}
