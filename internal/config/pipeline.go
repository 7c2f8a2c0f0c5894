// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParsing reports failures that occur while decoding pipeline definition files.
	ErrParsing = errors.New("error parsing")
)

// Duration wraps time.Duration to decode YAML values like "300s" or "5m".
type Duration time.Duration

// UnmarshalYAML decodes a duration from its textual form.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped duration as a *time.Duration, nil for a nil Duration.
func (d *Duration) Std() *time.Duration {
	if d == nil {
		return nil
	}

	std := time.Duration(*d)
	return &std
}

// Pipeline is the root of a pipeline definition file.
type Pipeline struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description,omitempty"`
	Source       *Source       `yaml:"source,omitempty"`
	Encryption   *Encryption   `yaml:"encryption,omitempty"`
	Destinations []Destination `yaml:"destinations"`
}

// Source configures an existing stream feeding the pipeline instead of direct
// record puts.
type Source struct {
	KinesisStreamARN string `yaml:"kinesisStreamArn"`
}

// Encryption configures at-rest encryption of the buffered records.
type Encryption struct {
	Mode   string `yaml:"mode,omitempty"`
	KeyARN string `yaml:"keyArn,omitempty"`
}

// Destination configures a single sink; exactly one kind must be set.
type Destination struct {
	S3            *S3Destination            `yaml:"s3,omitempty"`
	Elasticsearch *ElasticsearchDestination `yaml:"elasticsearch,omitempty"`
	Redshift      *RedshiftDestination      `yaml:"redshift,omitempty"`
}

// Logging configures error logging for a delivery flow.
type Logging struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	LogGroup string `yaml:"logGroup,omitempty"`
}

// Processor configures the record-transformation hook of a destination.
type Processor struct {
	LambdaARN      string    `yaml:"lambdaArn"`
	BufferInterval *Duration `yaml:"bufferInterval,omitempty"`
	BufferSize     *int64    `yaml:"bufferSize,omitempty"`
	Retries        *int64    `yaml:"retries,omitempty"`
}

// Backup configures record mirroring toward a secondary object store.
type Backup struct {
	Mode              string    `yaml:"mode,omitempty"`
	BucketARN         string    `yaml:"bucketArn,omitempty"`
	Prefix            string    `yaml:"prefix,omitempty"`
	ErrorOutputPrefix string    `yaml:"errorOutputPrefix,omitempty"`
	BufferingInterval *Duration `yaml:"bufferingInterval,omitempty"`
	BufferingSize     *int64    `yaml:"bufferingSize,omitempty"`
	Compression       string    `yaml:"compression,omitempty"`
	EncryptionKeyARN  string    `yaml:"encryptionKeyArn,omitempty"`
	Logging           *Logging  `yaml:"logging,omitempty"`
}

// S3Destination configures an object-store sink.
type S3Destination struct {
	BucketARN         string     `yaml:"bucketArn,omitempty"`
	Prefix            string     `yaml:"prefix,omitempty"`
	ErrorOutputPrefix string     `yaml:"errorOutputPrefix,omitempty"`
	BufferingInterval *Duration  `yaml:"bufferingInterval,omitempty"`
	BufferingSize     *int64     `yaml:"bufferingSize,omitempty"`
	Compression       string     `yaml:"compression,omitempty"`
	EncryptionKeyARN  string     `yaml:"encryptionKeyArn,omitempty"`
	Logging           *Logging   `yaml:"logging,omitempty"`
	Processors        []Processor `yaml:"processors,omitempty"`
	Backup            *Backup    `yaml:"backup,omitempty"`
}

// ElasticsearchDestination configures a search-index sink.
type ElasticsearchDestination struct {
	DomainARN         string     `yaml:"domainArn"`
	IndexName         string     `yaml:"indexName"`
	TypeName          string     `yaml:"typeName,omitempty"`
	IndexRotation     string     `yaml:"indexRotationPeriod,omitempty"`
	RetryDuration     *Duration  `yaml:"retryDuration,omitempty"`
	BufferingInterval *Duration  `yaml:"bufferingInterval,omitempty"`
	BufferingSize     *int64     `yaml:"bufferingSize,omitempty"`
	Logging           *Logging   `yaml:"logging,omitempty"`
	Processors        []Processor `yaml:"processors,omitempty"`
	Backup            *Backup    `yaml:"backup,omitempty"`
}

// RedshiftIntermediate configures the staging flow of a warehouse sink.
type RedshiftIntermediate struct {
	BucketARN         string    `yaml:"bucketArn,omitempty"`
	Prefix            string    `yaml:"prefix,omitempty"`
	BufferingInterval *Duration `yaml:"bufferingInterval,omitempty"`
	BufferingSize     *int64    `yaml:"bufferingSize,omitempty"`
	Compression       string    `yaml:"compression,omitempty"`
	EncryptionKeyARN  string    `yaml:"encryptionKeyArn,omitempty"`
	Logging           *Logging  `yaml:"logging,omitempty"`
}

// RedshiftDestination configures a warehouse sink.
type RedshiftDestination struct {
	ClusterJDBCURL string                `yaml:"clusterJdbcUrl"`
	User           string                `yaml:"user"`
	Password       string                `yaml:"password"`
	Table          string                `yaml:"table"`
	Columns        string                `yaml:"columns,omitempty"`
	CopyOptions    string                `yaml:"copyOptions,omitempty"`
	RetryDuration  *Duration             `yaml:"retryDuration,omitempty"`
	Intermediate   *RedshiftIntermediate `yaml:"intermediate,omitempty"`
	Logging        *Logging              `yaml:"logging,omitempty"`
	Processors     []Processor           `yaml:"processors,omitempty"`
	Backup         *Backup               `yaml:"backup,omitempty"`
}

// NewPipelineFromPath parses the pipeline definition at path. It reports
// failures encountered while reading or decoding the data.
func NewPipelineFromPath(path string) (*Pipeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewPipelineFromReader(file, path)
}

// NewPipelineFromReader parses a pipeline definition from reader; name labels
// the origin of the data in error messages.
func NewPipelineFromReader(reader io.Reader, name string) (*Pipeline, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	pipeline := new(Pipeline)
	if err := decoder.Decode(pipeline); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, name, err)
	}

	if pipeline.Name == "" {
		return nil, fmt.Errorf("%w %q: missing required field: name", ErrParsing, name)
	}

	return pipeline, nil
}
