// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"time"

	"github.com/mia-platform/streamsynth/internal/storage"
)

// S3Props are the generic settings of a delivery flow toward an object store,
// shared by primary delivery, intermediate staging and record backup.
type S3Props struct {
	Prefix            string
	ErrorOutputPrefix string
	BufferingInterval *time.Duration
	BufferingSize     *DataSize
	Compression       Compression
	EncryptionKeyARN  string
	Logging           LoggingProps
}

// S3Configuration builds the object-store configuration fragment for bucket,
// granting the pipeline principal read/write access and wiring buffering,
// compression, encryption and logging for the flow identified by streamID.
func (s *BindSupport) S3Configuration(bctx *BindContext, bucket *storage.Bucket, props S3Props, streamID string) (map[string]any, error) {
	grantID, err := bucket.GrantReadWrite(bctx.Role)
	if err != nil {
		return nil, err
	}
	bctx.AddDependency(grantID)

	config := map[string]any{
		"RoleARN":                 bctx.Role.ARN(),
		"BucketARN":               bucket.ARN(),
		"EncryptionConfiguration": EncryptionConfiguration(props.EncryptionKeyARN),
	}

	hints, err := BufferingHints(props.BufferingInterval, props.BufferingSize)
	if err != nil {
		return nil, err
	}
	if hints != nil {
		config["BufferingHints"] = hints
	}

	if props.Prefix != "" {
		config["Prefix"] = props.Prefix
	}
	if props.ErrorOutputPrefix != "" {
		config["ErrorOutputPrefix"] = props.ErrorOutputPrefix
	}
	if props.Compression != "" {
		config["CompressionFormat"] = string(props.Compression)
	}

	logging, err := s.LoggingOptions(bctx, props.Logging, streamID)
	if err != nil {
		return nil, err
	}
	if logging != nil {
		config["CloudWatchLoggingOptions"] = logging
	}

	return config, nil
}

// EncryptionConfiguration returns the at-rest encryption fragment of an
// object-store flow: a managed key reference when keyARN is provided, the
// explicit no-encryption marker otherwise.
func EncryptionConfiguration(keyARN string) map[string]any {
	if keyARN == "" {
		return map[string]any{"NoEncryptionConfig": "NoEncryption"}
	}

	return map[string]any{
		"KMSEncryptionConfig": map[string]any{"AWSKMSKeyARN": keyARN},
	}
}
