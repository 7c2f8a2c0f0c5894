// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineFromPath(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		path          string
		assertions    func(t *testing.T, pipeline *Pipeline)
		expectedError string
	}{
		"object store pipeline": {
			path: filepath.Join("testdata", "s3.yaml"),
			assertions: func(t *testing.T, pipeline *Pipeline) {
				t.Helper()

				assert.Equal(t, "events", pipeline.Name)
				assert.Equal(t, "object store delivery pipeline", pipeline.Description)
				require.Len(t, pipeline.Destinations, 1)

				s3 := pipeline.Destinations[0].S3
				require.NotNil(t, s3)
				assert.Equal(t, "arn:aws:s3:::delivery-bucket", s3.BucketARN)
				assert.Equal(t, "records/", s3.Prefix)
				assert.Equal(t, "failures/", s3.ErrorOutputPrefix)
				assert.Equal(t, 5*time.Minute, *s3.BufferingInterval.Std())
				assert.Equal(t, int64(16), *s3.BufferingSize)
				assert.Equal(t, "GZIP", s3.Compression)

				require.NotNil(t, s3.Logging)
				assert.True(t, *s3.Logging.Enabled)
				assert.Equal(t, "/aws/delivery/events", s3.Logging.LogGroup)

				require.Len(t, s3.Processors, 1)
				processor := s3.Processors[0]
				assert.Equal(t, "arn:aws:lambda:eu-west-1:123456789012:function:transform", processor.LambdaARN)
				assert.Equal(t, 2*time.Minute, *processor.BufferInterval.Std())
				assert.Equal(t, int64(3), *processor.BufferSize)
				assert.Equal(t, int64(4), *processor.Retries)

				require.NotNil(t, s3.Backup)
				assert.Equal(t, "ALL", s3.Backup.Mode)
				assert.Equal(t, "arn:aws:s3:::backup-bucket", s3.Backup.BucketARN)
			},
		},
		"search index pipeline with source": {
			path: filepath.Join("testdata", "elasticsearch.yaml"),
			assertions: func(t *testing.T, pipeline *Pipeline) {
				t.Helper()

				require.NotNil(t, pipeline.Source)
				assert.Equal(t, "arn:aws:kinesis:eu-west-1:123456789012:stream/source", pipeline.Source.KinesisStreamARN)

				require.Len(t, pipeline.Destinations, 1)
				es := pipeline.Destinations[0].Elasticsearch
				require.NotNil(t, es)
				assert.Equal(t, "logs", es.IndexName)
				assert.Equal(t, "event", es.TypeName)
				assert.Equal(t, "OneDay", es.IndexRotation)
				assert.Equal(t, 300*time.Second, *es.RetryDuration.Std())
			},
		},
		"warehouse pipeline with encryption": {
			path: filepath.Join("testdata", "redshift.yaml"),
			assertions: func(t *testing.T, pipeline *Pipeline) {
				t.Helper()

				require.NotNil(t, pipeline.Encryption)
				assert.Equal(t, "CUSTOMER_MANAGED_CMK", pipeline.Encryption.Mode)
				assert.Equal(t, "arn:aws:kms:eu-west-1:123456789012:key/abc", pipeline.Encryption.KeyARN)

				require.Len(t, pipeline.Destinations, 1)
				redshift := pipeline.Destinations[0].Redshift
				require.NotNil(t, redshift)
				assert.Equal(t, "loader", redshift.User)
				assert.Equal(t, "events", redshift.Table)
				assert.Equal(t, "id,payload,created_at", redshift.Columns)
				assert.Equal(t, "json 'auto'", redshift.CopyOptions)

				require.NotNil(t, redshift.Intermediate)
				assert.Equal(t, "staging/", redshift.Intermediate.Prefix)
				assert.Equal(t, "GZIP", redshift.Intermediate.Compression)
			},
		},
		"unknown field is rejected": {
			path:          filepath.Join("testdata", "unknown-field.yaml"),
			expectedError: "field destination not found",
		},
		"missing name": {
			path:          filepath.Join("testdata", "missing-name.yaml"),
			expectedError: "missing required field: name",
		},
		"invalid duration": {
			path:          filepath.Join("testdata", "invalid-duration.yaml"),
			expectedError: `invalid duration "five minutes"`,
		},
		"missing file": {
			path:          filepath.Join("testdata", "missing.yaml"),
			expectedError: "no such file or directory",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipeline, err := NewPipelineFromPath(test.path)
			if test.expectedError != "" {
				assert.ErrorContains(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			test.assertions(t, pipeline)
		})
	}
}

func TestNewPipelineFromReader(t *testing.T) {
	t.Parallel()

	pipeline, err := NewPipelineFromReader(strings.NewReader("name: events\ndestinations: []\n"), "request body")
	require.NoError(t, err)
	assert.Equal(t, "events", pipeline.Name)
	assert.Empty(t, pipeline.Destinations)

	_, err = NewPipelineFromReader(strings.NewReader("destinations: []\n"), "request body")
	assert.ErrorIs(t, err, ErrParsing)
	assert.EqualError(t, err, `error parsing "request body": missing required field: name`)

	_, err = NewPipelineFromReader(strings.NewReader("{not yaml"), "request body")
	assert.ErrorIs(t, err, ErrParsing)
}

func TestDurationStd(t *testing.T) {
	t.Parallel()

	var nilDuration *Duration
	assert.Nil(t, nilDuration.Std())

	duration := Duration(time.Minute)
	assert.Equal(t, time.Minute, *duration.Std())
}
