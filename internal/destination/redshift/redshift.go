// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package redshift implements the warehouse-cluster delivery destination.
package redshift

import (
	"context"
	"fmt"
	"time"

	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/storage"
	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	configurationKey = "RedshiftDestinationConfiguration"

	deliveryStreamID     = "RedshiftDelivery"
	intermediateStreamID = "IntermediateS3"
	backupStreamID       = "S3Backup"
)

// CopyCommand configures the statement loading staged batches into the
// warehouse table.
type CopyCommand struct {
	TableName string
	Columns   string
	Options   string
}

// IntermediateProps configures the staging flow records traverse before being
// loaded into the cluster. When Bucket is nil an owned bucket is created.
type IntermediateProps struct {
	Bucket            *storage.Bucket
	Prefix            string
	BufferingInterval *time.Duration
	BufferingSize     *destination.DataSize
	Compression       destination.Compression
	EncryptionKeyARN  string
	Logging           destination.LoggingProps
}

// Props configures a warehouse destination.
type Props struct {
	ClusterJDBCURL string
	User           string
	Password       string
	Copy           CopyCommand
	RetryDuration  *time.Duration
	Intermediate   IntermediateProps
	Logging        destination.LoggingProps
	Processors     []destination.Processor
	Backup         destination.BackupProps
}

// Destination delivers records to a warehouse cluster through an intermediate
// object-store staging area.
type Destination struct {
	destination.BindSupport

	props Props
}

var _ destination.Binder = &Destination{}

// New returns a binder for a warehouse destination.
func New(props Props) *Destination {
	return &Destination{props: props}
}

// Bind builds the destination configuration fragment. Warehouse destinations
// mirror either every record or none, the failed-only backup mode is not
// supported, and the staging compression must be readable by the warehouse
// load statement.
func (d *Destination) Bind(_ context.Context, bctx *destination.BindContext) (destination.Config, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	intermediate := d.props.Intermediate
	bucket := intermediate.Bucket
	if bucket == nil {
		owned, err := storage.NewBucket(bctx.Template, bctx.Scope+"IntermediateBucket")
		if err != nil {
			return nil, err
		}
		bucket = owned
	}

	staging, err := d.S3Configuration(bctx, bucket, destination.S3Props{
		Prefix:            intermediate.Prefix,
		BufferingInterval: intermediate.BufferingInterval,
		BufferingSize:     intermediate.BufferingSize,
		Compression:       intermediate.Compression,
		EncryptionKeyARN:  intermediate.EncryptionKeyARN,
		Logging:           intermediate.Logging,
	}, intermediateStreamID)
	if err != nil {
		return nil, err
	}

	copyCommand := map[string]any{"DataTableName": d.props.Copy.TableName}
	if d.props.Copy.Columns != "" {
		copyCommand["DataTableColumns"] = d.props.Copy.Columns
	}
	if d.props.Copy.Options != "" {
		copyCommand["CopyOptions"] = d.props.Copy.Options
	}

	config := map[string]any{
		"RoleARN":         bctx.Role.ARN(),
		"ClusterJDBCURL":  d.props.ClusterJDBCURL,
		"CopyCommand":     copyCommand,
		"Username":        d.props.User,
		"Password":        d.props.Password,
		"S3Configuration": staging,
	}

	retry, err := destination.RetryOptions(d.props.RetryDuration)
	if err != nil {
		return nil, err
	}
	if retry != nil {
		config["RetryOptions"] = retry
	}

	logging, err := d.LoggingOptions(bctx, d.props.Logging, deliveryStreamID)
	if err != nil {
		return nil, err
	}
	if logging != nil {
		config["CloudWatchLoggingOptions"] = logging
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

func (d *Destination) validate() error {
	if d.props.ClusterJDBCURL == "" {
		return fmt.Errorf("%w: no cluster JDBC URL provided for the redshift destination", template.ErrLookup)
	}
	if d.props.User == "" || d.props.Password == "" {
		return fmt.Errorf("%w: no user credentials provided for the redshift destination", template.ErrLookup)
	}
	if d.props.Copy.TableName == "" {
		return fmt.Errorf("%w: no data table name provided for the redshift destination", template.ErrLookup)
	}

	if err := destination.ValidateBackupMode(d.props.Backup.Mode, "redshift", destination.BackupAll, destination.BackupDisabled); err != nil {
		return err
	}

	switch d.props.Intermediate.Compression {
	case destination.CompressionSnappy, destination.CompressionHadoopSnappy, destination.CompressionZip:
		return fmt.Errorf("%w: redshift destination does not support the %s compression format for staging",
			template.ErrDomainValidation, d.props.Intermediate.Compression)
	}

	return nil
}
