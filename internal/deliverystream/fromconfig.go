// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package deliverystream

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/config"
	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/destination/elasticsearch"
	"github.com/mia-platform/streamsynth/internal/destination/redshift"
	"github.com/mia-platform/streamsynth/internal/destination/s3"
	"github.com/mia-platform/streamsynth/internal/logs"
	"github.com/mia-platform/streamsynth/internal/storage"
	"github.com/mia-platform/streamsynth/internal/template"
)

// FromConfig resolves a decoded pipeline definition into a validated delivery
// stream ready for synthesis.
func FromConfig(cfg *config.Pipeline) (*DeliveryStream, error) {
	props := Props{Name: cfg.Name}

	if cfg.Source != nil {
		props.SourceStreamARN = cfg.Source.KinesisStreamARN
	}

	if cfg.Encryption != nil {
		encryption, err := encryptionFromConfig(cfg.Encryption)
		if err != nil {
			return nil, err
		}
		props.Encryption = encryption
	}

	for _, entry := range cfg.Destinations {
		binder, err := binderFromConfig(entry)
		if err != nil {
			return nil, err
		}
		props.Destinations = append(props.Destinations, binder)
	}

	return New(props)
}

// encryptionFromConfig resolves the encryption block; providing a key without
// a mode implies the customer-managed one.
func encryptionFromConfig(cfg *config.Encryption) (*Encryption, error) {
	if cfg.Mode == "" && cfg.KeyARN != "" {
		return &Encryption{Mode: EncryptionCustomerManagedKey, KeyARN: cfg.KeyARN}, nil
	}

	mode, err := ParseEncryptionMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	return &Encryption{Mode: mode, KeyARN: cfg.KeyARN}, nil
}

func binderFromConfig(entry config.Destination) (destination.Binder, error) {
	kinds := 0
	if entry.S3 != nil {
		kinds++
	}
	if entry.Elasticsearch != nil {
		kinds++
	}
	if entry.Redshift != nil {
		kinds++
	}
	if kinds != 1 {
		return nil, fmt.Errorf("%w: a destination entry must configure exactly one destination kind, got %d", template.ErrCardinality, kinds)
	}

	switch {
	case entry.S3 != nil:
		return s3BinderFromConfig(entry.S3)
	case entry.Elasticsearch != nil:
		return elasticsearchBinderFromConfig(entry.Elasticsearch)
	default:
		return redshiftBinderFromConfig(entry.Redshift)
	}
}

func s3BinderFromConfig(cfg *config.S3Destination) (destination.Binder, error) {
	props := s3.Props{
		Prefix:            cfg.Prefix,
		ErrorOutputPrefix: cfg.ErrorOutputPrefix,
		BufferingInterval: cfg.BufferingInterval.Std(),
		BufferingSize:     sizeFromConfig(cfg.BufferingSize),
		EncryptionKeyARN:  cfg.EncryptionKeyARN,
		Processors:        processorsFromConfig(cfg.Processors),
	}

	if cfg.BucketARN != "" {
		bucket, err := storage.ImportBucket(cfg.BucketARN)
		if err != nil {
			return nil, err
		}
		props.Bucket = bucket
	}

	compression, err := compressionFromConfig(cfg.Compression)
	if err != nil {
		return nil, err
	}
	props.Compression = compression

	logging, err := loggingFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}
	props.Logging = logging

	backup, err := backupFromConfig(cfg.Backup)
	if err != nil {
		return nil, err
	}
	props.Backup = backup

	return s3.New(props), nil
}

func elasticsearchBinderFromConfig(cfg *config.ElasticsearchDestination) (destination.Binder, error) {
	props := elasticsearch.Props{
		DomainARN:         cfg.DomainARN,
		IndexName:         cfg.IndexName,
		TypeName:          cfg.TypeName,
		RetryDuration:     cfg.RetryDuration.Std(),
		BufferingInterval: cfg.BufferingInterval.Std(),
		BufferingSize:     sizeFromConfig(cfg.BufferingSize),
		Processors:        processorsFromConfig(cfg.Processors),
	}

	if cfg.IndexRotation != "" {
		rotation, err := elasticsearch.ParseIndexRotationPeriod(cfg.IndexRotation)
		if err != nil {
			return nil, err
		}
		props.IndexRotation = rotation
	}

	logging, err := loggingFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}
	props.Logging = logging

	backup, err := backupFromConfig(cfg.Backup)
	if err != nil {
		return nil, err
	}
	props.Backup = backup

	return elasticsearch.New(props), nil
}

func redshiftBinderFromConfig(cfg *config.RedshiftDestination) (destination.Binder, error) {
	props := redshift.Props{
		ClusterJDBCURL: cfg.ClusterJDBCURL,
		User:           cfg.User,
		Password:       cfg.Password,
		Copy: redshift.CopyCommand{
			TableName: cfg.Table,
			Columns:   cfg.Columns,
			Options:   cfg.CopyOptions,
		},
		RetryDuration: cfg.RetryDuration.Std(),
		Processors:    processorsFromConfig(cfg.Processors),
	}

	if cfg.Intermediate != nil {
		intermediate, err := intermediateFromConfig(cfg.Intermediate)
		if err != nil {
			return nil, err
		}
		props.Intermediate = intermediate
	}

	logging, err := loggingFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}
	props.Logging = logging

	backup, err := backupFromConfig(cfg.Backup)
	if err != nil {
		return nil, err
	}
	props.Backup = backup

	return redshift.New(props), nil
}

func intermediateFromConfig(cfg *config.RedshiftIntermediate) (redshift.IntermediateProps, error) {
	props := redshift.IntermediateProps{
		Prefix:            cfg.Prefix,
		BufferingInterval: cfg.BufferingInterval.Std(),
		BufferingSize:     sizeFromConfig(cfg.BufferingSize),
		EncryptionKeyARN:  cfg.EncryptionKeyARN,
	}

	if cfg.BucketARN != "" {
		bucket, err := storage.ImportBucket(cfg.BucketARN)
		if err != nil {
			return props, err
		}
		props.Bucket = bucket
	}

	compression, err := compressionFromConfig(cfg.Compression)
	if err != nil {
		return props, err
	}
	props.Compression = compression

	logging, err := loggingFromConfig(cfg.Logging)
	if err != nil {
		return props, err
	}
	props.Logging = logging

	return props, nil
}

func backupFromConfig(cfg *config.Backup) (destination.BackupProps, error) {
	props := destination.BackupProps{}
	if cfg == nil {
		return props, nil
	}

	if cfg.Mode != "" {
		mode, err := destination.ParseBackupMode(cfg.Mode)
		if err != nil {
			return props, err
		}
		props.Mode = &mode
	}

	if cfg.BucketARN != "" {
		bucket, err := storage.ImportBucket(cfg.BucketARN)
		if err != nil {
			return props, err
		}
		props.Bucket = bucket
	}

	compression, err := compressionFromConfig(cfg.Compression)
	if err != nil {
		return props, err
	}

	logging, err := loggingFromConfig(cfg.Logging)
	if err != nil {
		return props, err
	}

	props.S3Props = destination.S3Props{
		Prefix:            cfg.Prefix,
		ErrorOutputPrefix: cfg.ErrorOutputPrefix,
		BufferingInterval: cfg.BufferingInterval.Std(),
		BufferingSize:     sizeFromConfig(cfg.BufferingSize),
		Compression:       compression,
		EncryptionKeyARN:  cfg.EncryptionKeyARN,
		Logging:           logging,
	}

	return props, nil
}

func loggingFromConfig(cfg *config.Logging) (destination.LoggingProps, error) {
	if cfg == nil {
		return destination.LoggingProps{}, nil
	}

	props := destination.LoggingProps{Enabled: cfg.Enabled}
	if cfg.LogGroup != "" {
		group, err := logs.ImportGroup(cfg.LogGroup)
		if err != nil {
			return props, err
		}
		props.Group = group
	}

	return props, nil
}

func processorsFromConfig(processors []config.Processor) []destination.Processor {
	if len(processors) == 0 {
		return nil
	}

	converted := make([]destination.Processor, 0, len(processors))
	for _, processor := range processors {
		converted = append(converted, destination.Processor{
			FunctionARN:    processor.LambdaARN,
			BufferInterval: processor.BufferInterval.Std(),
			BufferSize:     sizeFromConfig(processor.BufferSize),
			Retries:        processor.Retries,
		})
	}

	return converted
}

func compressionFromConfig(value string) (destination.Compression, error) {
	if value == "" {
		return "", nil
	}

	return destination.ParseCompression(value)
}

func sizeFromConfig(mebibytes *int64) *destination.DataSize {
	if mebibytes == nil {
		return nil
	}

	size := destination.Mebibytes(*mebibytes)
	return &size
}
