// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package deliverystream

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/template"
)

// EncryptionMode selects how records at rest inside the delivery stream are
// encrypted.
type EncryptionMode int

const (
	EncryptionUnencrypted EncryptionMode = iota
	EncryptionAWSOwnedKey
	EncryptionCustomerManagedKey
)

// String returns the wire form of the mode.
func (m EncryptionMode) String() string {
	switch m {
	case EncryptionAWSOwnedKey:
		return "AWS_OWNED_CMK"
	case EncryptionCustomerManagedKey:
		return "CUSTOMER_MANAGED_CMK"
	default:
		return "UNENCRYPTED"
	}
}

// ParseEncryptionMode converts the textual form of an encryption mode.
func ParseEncryptionMode(value string) (EncryptionMode, error) {
	switch value {
	case "UNENCRYPTED":
		return EncryptionUnencrypted, nil
	case "AWS_OWNED_CMK":
		return EncryptionAWSOwnedKey, nil
	case "CUSTOMER_MANAGED_CMK":
		return EncryptionCustomerManagedKey, nil
	}

	return EncryptionUnencrypted, fmt.Errorf("%w: unknown encryption mode %q", template.ErrDomainValidation, value)
}

// Encryption configures at-rest encryption of the delivery stream. A key can
// only accompany the customer-managed mode; when the customer-managed mode
// carries no key an owned one is created during synthesis.
type Encryption struct {
	Mode   EncryptionMode
	KeyARN string
}

func (e *Encryption) validate() error {
	if e.Mode != EncryptionCustomerManagedKey && e.KeyARN != "" {
		return fmt.Errorf("%w: an encryption key cannot be provided for the %s encryption mode",
			template.ErrContradiction, e.Mode)
	}

	return nil
}

// active reports whether the configuration emits an encryption input.
func (e *Encryption) active() bool {
	return e != nil && e.Mode != EncryptionUnencrypted
}
