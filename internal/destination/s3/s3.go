// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package s3 implements the object-store delivery destination.
package s3

import (
	"context"
	"time"

	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/logger"
	"github.com/mia-platform/streamsynth/internal/storage"
)

const (
	configurationKey = "ExtendedS3DestinationConfiguration"

	deliveryStreamID = "S3Delivery"
	backupStreamID   = "S3Backup"

	loggerName = "streamsynth:destination:s3"
)

// Props configures an object-store destination. When Bucket is nil an owned
// bucket is created inside the template.
type Props struct {
	Bucket            *storage.Bucket
	Prefix            string
	ErrorOutputPrefix string
	BufferingInterval *time.Duration
	BufferingSize     *destination.DataSize
	Compression       destination.Compression
	EncryptionKeyARN  string
	Logging           destination.LoggingProps
	Processors        []destination.Processor
	Backup            destination.BackupProps
}

// Destination delivers records to an object store bucket.
type Destination struct {
	destination.BindSupport

	props Props
}

var _ destination.Binder = &Destination{}

// New returns a binder for an object-store destination.
func New(props Props) *Destination {
	return &Destination{props: props}
}

// Bind builds the destination configuration fragment. Object-store
// destinations mirror either every record or none, the failed-only backup
// mode is not supported.
func (d *Destination) Bind(ctx context.Context, bctx *destination.BindContext) (destination.Config, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	if err := destination.ValidateBackupMode(d.props.Backup.Mode, "s3", destination.BackupAll, destination.BackupDisabled); err != nil {
		return nil, err
	}

	bucket := d.props.Bucket
	if bucket == nil {
		log.Debug("no bucket provided, creating an owned one", "scope", bctx.Scope)
		owned, err := storage.NewBucket(bctx.Template, bctx.Scope+"Bucket")
		if err != nil {
			return nil, err
		}
		bucket = owned
	}

	config, err := d.S3Configuration(bctx, bucket, destination.S3Props{
		Prefix:            d.props.Prefix,
		ErrorOutputPrefix: d.props.ErrorOutputPrefix,
		BufferingInterval: d.props.BufferingInterval,
		BufferingSize:     d.props.BufferingSize,
		Compression:       d.props.Compression,
		EncryptionKeyARN:  d.props.EncryptionKeyARN,
		Logging:           d.props.Logging,
	}, deliveryStreamID)
	if err != nil {
		return nil, err
	}

	processing, err := d.ProcessingConfig(bctx, d.props.Processors)
	if err != nil {
		return nil, err
	}
	if processing != nil {
		config["ProcessingConfiguration"] = processing
	}

	backup, err := d.BackupConfig(bctx, d.props.Backup, backupStreamID)
	if err != nil {
		return nil, err
	}
	switch {
	case backup != nil:
		config["S3BackupMode"] = "Enabled"
		config["S3BackupConfiguration"] = backup
	case d.props.Backup.Mode != nil:
		config["S3BackupMode"] = "Disabled"
	}

	return destination.Config{configurationKey: config}, nil
}
