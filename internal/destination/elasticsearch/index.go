// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package elasticsearch

import (
	"fmt"
	"strings"

	"github.com/mia-platform/streamsynth/internal/template"
)

// forbiddenIndexCharacters are the characters the search engine rejects in an
// index name.
const forbiddenIndexCharacters = ` "*\<|,>/?`

// validateIndexName enforces the index naming rules of the search engine:
// lowercase, no reserved leading character, no forbidden character.
func validateIndexName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: index name must not be empty", template.ErrDomainValidation)
	}

	for _, prefix := range []string{"_", "-", "+"} {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("%w: index name must not start with %q", template.ErrDomainValidation, prefix)
		}
	}

	if strings.ToLower(name) != name {
		return fmt.Errorf("%w: index name must be lowercase", template.ErrDomainValidation)
	}

	if index := strings.IndexAny(name, forbiddenIndexCharacters); index != -1 {
		return fmt.Errorf("%w: index name must not contain %q", template.ErrDomainValidation, string(name[index]))
	}

	return nil
}
