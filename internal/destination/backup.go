// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/storage"
	"github.com/mia-platform/streamsynth/internal/template"
)

// BackupMode is the policy for mirroring records to a secondary object store.
// Each destination kind accepts its own subset of modes.
type BackupMode int

const (
	BackupAll BackupMode = iota
	BackupFailedOnly
	BackupDisabled
)

// String returns the textual form of the mode.
func (m BackupMode) String() string {
	switch m {
	case BackupFailedOnly:
		return "FAILED_ONLY"
	case BackupDisabled:
		return "DISABLED"
	default:
		return "ALL"
	}
}

// ParseBackupMode converts the textual form of a backup mode into a
// BackupMode.
func ParseBackupMode(value string) (BackupMode, error) {
	switch value {
	case "ALL":
		return BackupAll, nil
	case "FAILED_ONLY":
		return BackupFailedOnly, nil
	case "DISABLED":
		return BackupDisabled, nil
	}

	return BackupDisabled, fmt.Errorf("%w: unknown backup mode %q", template.ErrDomainValidation, value)
}

// ValidateBackupMode reports whether mode is one of the modes the destination
// kind accepts. An absent mode is always valid, the destination applies its
// own default.
func ValidateBackupMode(mode *BackupMode, kind string, allowed ...BackupMode) error {
	if mode == nil {
		return nil
	}

	for _, candidate := range allowed {
		if *mode == candidate {
			return nil
		}
	}

	return fmt.Errorf("%w: %s destination does not support the %s backup mode", template.ErrDomainValidation, kind, *mode)
}

// BackupProps configures record mirroring toward a secondary object store.
type BackupProps struct {
	Mode   *BackupMode
	Bucket *storage.Bucket

	S3Props
}

// Active reports whether backup is requested: a non-disabled mode, or a bucket
// with no mode at all.
func (p BackupProps) Active() bool {
	if p.Mode != nil {
		return *p.Mode != BackupDisabled
	}

	return p.Bucket != nil
}

// BackupConfig resolves the backup bucket and builds its object-store
// configuration fragment for the flow identified by streamID. It returns nil
// when backup is not requested. The destination-level backup flag must be
// derived from Active by the caller, from the same inputs validated here.
func (s *BindSupport) BackupConfig(bctx *BindContext, props BackupProps, streamID string) (map[string]any, error) {
	if props.Mode != nil && *props.Mode == BackupDisabled && props.Bucket != nil {
		return nil, fmt.Errorf("%w: backup is disabled but a backup bucket was provided", template.ErrContradiction)
	}
	if !props.Active() {
		return nil, nil
	}

	bucket := props.Bucket
	if bucket == nil {
		owned, err := storage.NewBucket(bctx.Template, bctx.Scope+"BackupBucket")
		if err != nil {
			return nil, err
		}
		bucket = owned
	}

	return s.S3Configuration(bctx, bucket, props.S3Props, streamID)
}
