// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package elasticsearch implements the search-index delivery destination.
package elasticsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	configurationKey = "ElasticsearchDestinationConfiguration"

	deliveryStreamID = "ElasticsearchDelivery"
	backupStreamID   = "S3Backup"
)

// domainActions are the domain management and document indexing calls the
// delivery service performs against the search domain.
var domainActions = []string{
	"es:DescribeElasticsearchDomain",
	"es:DescribeElasticsearchDomains",
	"es:DescribeElasticsearchDomainConfig",
	"es:ESHttpPost",
	"es:ESHttpPut",
}

// IndexRotationPeriod appends a timestamp suffix to the index name on a fixed
// schedule.
type IndexRotationPeriod string

const (
	RotationNone     IndexRotationPeriod = "NoRotation"
	RotationOneHour  IndexRotationPeriod = "OneHour"
	RotationOneDay   IndexRotationPeriod = "OneDay"
	RotationOneWeek  IndexRotationPeriod = "OneWeek"
	RotationOneMonth IndexRotationPeriod = "OneMonth"
)

// ParseIndexRotationPeriod converts the textual form of a rotation period.
func ParseIndexRotationPeriod(value string) (IndexRotationPeriod, error) {
	switch IndexRotationPeriod(value) {
	case RotationNone, RotationOneHour, RotationOneDay, RotationOneWeek, RotationOneMonth:
		return IndexRotationPeriod(value), nil
	}

	return "", fmt.Errorf("%w: unknown index rotation period %q", template.ErrDomainValidation, value)
}

// Props configures a search-index destination.
type Props struct {
	DomainARN         string
	IndexName         string
	TypeName          string
	IndexRotation     IndexRotationPeriod
	RetryDuration     *time.Duration
	BufferingInterval *time.Duration
	BufferingSize     *destination.DataSize
	Logging           destination.LoggingProps
	Processors        []destination.Processor
	Backup            destination.BackupProps
}

// Destination delivers records to a search-index domain. Documents that fail
// indexing are always mirrored to an object store, so the backup flow cannot
// be disabled, only widened to every document.
type Destination struct {
	destination.BindSupport

	props Props
}

var _ destination.Binder = &Destination{}

// New returns a binder for a search-index destination.
func New(props Props) *Destination {
	return &Destination{props: props}
}

// Bind builds the destination configuration fragment.
func (d *Destination) Bind(_ context.Context, bctx *destination.BindContext) (destination.Config, error) {
	if d.props.DomainARN == "" {
		return nil, fmt.Errorf("%w: no domain ARN provided for the elasticsearch destination", template.ErrLookup)
	}
	if err := validateIndexName(d.props.IndexName); err != nil {
		return nil, err
	}
	if err := destination.ValidateBackupMode(d.props.Backup.Mode, "elasticsearch", destination.BackupAll, destination.BackupFailedOnly); err != nil {
		return nil, err
	}

	grantID, err := bctx.Role.Grant(iam.Statement{
		Actions: domainActions,
		Resources: []any{
			d.props.DomainARN,
			// cover the indexes and API paths nested under the domain
			d.props.DomainARN + "/*",
		},
	})
	if err != nil {
		return nil, err
	}
	bctx.AddDependency(grantID)

	config := map[string]any{
		"RoleARN":   bctx.Role.ARN(),
		"DomainARN": d.props.DomainARN,
		"IndexName": d.props.IndexName,
	}
	if d.props.TypeName != "" {
		config["TypeName"] = d.props.TypeName
	}
	if d.props.IndexRotation != "" {
		config["IndexRotationPeriod"] = string(d.props.IndexRotation)
	}

	hints, err := destination.BufferingHints(d.props.BufferingInterval, d.props.BufferingSize)
	if err != nil {
		return nil, err
	}
	if hints != nil {
		config["BufferingHints"] = hints
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

	// the failed-documents flow is mandatory, default the mode so a backup
	// bucket is always resolved
	backupProps := d.props.Backup
	if backupProps.Mode == nil {
		mode := destination.BackupFailedOnly
		backupProps.Mode = &mode
	}

	backup, err := d.BackupConfig(bctx, backupProps, backupStreamID)
	if err != nil {
		return nil, err
	}
	config["S3Configuration"] = backup
	if *backupProps.Mode == destination.BackupAll {
		config["S3BackupMode"] = "AllDocuments"
	} else {
		config["S3BackupMode"] = "FailedDocumentsOnly"
	}

	return destination.Config{configurationKey: config}, nil
}
