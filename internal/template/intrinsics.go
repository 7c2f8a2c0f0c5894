// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package template

// Ref returns the intrinsic referencing the value of another resource.
func Ref(logicalID string) map[string]any {
	return map[string]any{"Ref": logicalID}
}

// GetAtt returns the intrinsic reading an attribute of another resource.
func GetAtt(logicalID, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{logicalID, attribute}}
}

// Join returns the intrinsic concatenating parts with delimiter.
func Join(delimiter string, parts ...any) map[string]any {
	return map[string]any{"Fn::Join": []any{delimiter, parts}}
}

// Sub returns the intrinsic expanding pseudo parameters inside expression.
func Sub(expression string) map[string]any {
	return map[string]any{"Fn::Sub": expression}
}

// Suffixed appends suffix to value, joining lazily when value is itself an
// intrinsic instead of a literal string.
func Suffixed(value any, suffix string) any {
	if literal, ok := value.(string); ok {
		return literal + suffix
	}

	return Join("", value, suffix)
}
