// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package template

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Resource is a single entry of the resource document.
type Resource struct {
	Type       string
	Properties map[string]any
	DependsOn  []string
}

// Template is an ordered collection of resources keyed by logical ID.
type Template struct {
	description string
	ids         []string
	resources   map[string]*Resource
}

// New returns an empty template with the provided description.
func New(description string) *Template {
	return &Template{
		description: description,
		resources:   make(map[string]*Resource),
	}
}

// Add registers resource under logicalID. Logical IDs must be unique within
// a template.
func (t *Template) Add(logicalID string, resource *Resource) error {
	if logicalID == "" {
		return fmt.Errorf("%w: empty logical ID", ErrLookup)
	}
	if _, found := t.resources[logicalID]; found {
		return fmt.Errorf("%w: logical ID %q already in use", ErrLookup, logicalID)
	}

	t.ids = append(t.ids, logicalID)
	t.resources[logicalID] = resource
	return nil
}

// Resource returns the resource registered under logicalID, if any.
func (t *Template) Resource(logicalID string) (*Resource, bool) {
	resource, found := t.resources[logicalID]
	return resource, found
}

// Len returns the number of registered resources.
func (t *Template) Len() int {
	return len(t.ids)
}

// AddDependency records that the resource registered under logicalID must wait
// for dependencyID. Recording the same edge twice is harmless.
func (t *Template) AddDependency(logicalID, dependencyID string) error {
	resource, found := t.resources[logicalID]
	if !found {
		return fmt.Errorf("%w: unknown logical ID %q", ErrLookup, logicalID)
	}

	if !slices.Contains(resource.DependsOn, dependencyID) {
		resource.DependsOn = append(resource.DependsOn, dependencyID)
		slices.Sort(resource.DependsOn)
	}
	return nil
}

// Definition returns the document as a generic map ready for serialization.
func (t *Template) Definition() map[string]any {
	resources := make(map[string]any, len(t.ids))
	for _, id := range t.ids {
		resource := t.resources[id]
		entry := map[string]any{
			"Type":       resource.Type,
			"Properties": resource.Properties,
		}
		if len(resource.DependsOn) > 0 {
			entry["DependsOn"] = resource.DependsOn
		}
		resources[id] = entry
	}

	definition := map[string]any{
		"Resources": resources,
	}
	if t.description != "" {
		definition["Description"] = t.description
	}

	return definition
}

// JSON serializes the document as indented JSON.
func (t *Template) JSON() ([]byte, error) {
	return json.MarshalIndent(t.Definition(), "", "  ")
}

// YAML serializes the document as YAML.
func (t *Template) YAML() ([]byte, error) {
	return yaml.Marshal(t.Definition())
}
