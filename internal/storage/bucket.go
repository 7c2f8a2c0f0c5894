// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package storage

import (
	"fmt"
	"strings"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

const bucketResourceType = "AWS::S3::Bucket"

// readWriteActions are the actions needed by the delivery service to write
// batches and to read them back for backup verification.
var readWriteActions = []string{
	"s3:AbortMultipartUpload",
	"s3:GetBucketLocation",
	"s3:GetObject",
	"s3:ListBucket",
	"s3:ListBucketMultipartUploads",
	"s3:PutObject",
}

// Bucket is an object-store destination, either created inside the template or
// imported from an existing ARN.
type Bucket struct {
	logicalID string
	arn       any
}

// NewBucket adds an owned bucket resource to tpl and returns it.
func NewBucket(tpl *template.Template, logicalID string) (*Bucket, error) {
	resource := &template.Resource{
		Type:       bucketResourceType,
		Properties: map[string]any{},
	}
	if err := tpl.Add(logicalID, resource); err != nil {
		return nil, err
	}

	return &Bucket{
		logicalID: logicalID,
		arn:       template.GetAtt(logicalID, "Arn"),
	}, nil
}

// ImportBucket returns a bucket referencing an existing resource by ARN.
func ImportBucket(bucketARN string) (*Bucket, error) {
	if bucketARN == "" {
		return nil, fmt.Errorf("%w: no bucket ARN provided for import", template.ErrLookup)
	}

	segments := strings.Split(bucketARN, ":")
	if len(segments) < 6 || segments[len(segments)-1] == "" {
		return nil, fmt.Errorf("%w: no bucket name could be extracted from ARN %q", template.ErrLookup, bucketARN)
	}

	return &Bucket{arn: bucketARN}, nil
}

// ARN returns the bucket ARN, a literal for imported buckets or a reference
// for owned ones.
func (b *Bucket) ARN() any {
	return b.arn
}

// ObjectsARN returns the ARN matching every object inside the bucket.
func (b *Bucket) ObjectsARN() any {
	return template.Suffixed(b.arn, "/*")
}

// LogicalID returns the logical ID of an owned bucket; imported buckets report
// false.
func (b *Bucket) LogicalID() (string, bool) {
	return b.logicalID, b.logicalID != ""
}

// GrantReadWrite grants role read and write access to the bucket and its
// objects, returning the logical ID of the grant for dependency ordering.
func (b *Bucket) GrantReadWrite(role *iam.Role) (string, error) {
	return role.Grant(iam.Statement{
		Actions:   readWriteActions,
		Resources: []any{b.ARN(), b.ObjectsARN()},
	})
}
