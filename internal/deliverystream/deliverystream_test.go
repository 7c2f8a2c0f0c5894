// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package deliverystream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/destination/s3"
	"github.com/mia-platform/streamsynth/internal/template"
)

const testSourceARN = "arn:aws:kinesis:eu-west-1:123456789012:stream/source"

func TestNewValidation(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		props         Props
		expectedError string
	}{
		"valid props": {
			props: Props{Name: "events", Destinations: []destination.Binder{s3.New(s3.Props{})}},
		},
		"name with every accepted character class": {
			props: Props{Name: "events_2026.08-a", Destinations: []destination.Binder{s3.New(s3.Props{})}},
		},
		"empty name": {
			props:         Props{Destinations: []destination.Binder{s3.New(s3.Props{})}},
			expectedError: `invalid value: delivery stream name "" must be 1 to 64 alphanumeric, dot, underscore or dash characters`,
		},
		"name with forbidden character": {
			props:         Props{Name: "my events", Destinations: []destination.Binder{s3.New(s3.Props{})}},
			expectedError: `invalid value: delivery stream name "my events" must be 1 to 64 alphanumeric, dot, underscore or dash characters`,
		},
		"no destinations": {
			props:         Props{Name: "events"},
			expectedError: "invalid cardinality: exactly one destination is required, got 0",
		},
		"two destinations": {
			props: Props{
				Name:         "events",
				Destinations: []destination.Binder{s3.New(s3.Props{}), s3.New(s3.Props{})},
			},
			expectedError: "invalid cardinality: exactly one destination is required, got 2",
		},
		"malformed source ARN": {
			props: Props{
				Name:            "events",
				Destinations:    []destination.Binder{s3.New(s3.Props{})},
				SourceStreamARN: "source",
			},
			expectedError: `unresolvable reference: no stream name could be extracted from ARN "source"`,
		},
		"source with active encryption": {
			props: Props{
				Name:            "events",
				Destinations:    []destination.Binder{s3.New(s3.Props{})},
				SourceStreamARN: testSourceARN,
				Encryption:      &Encryption{Mode: EncryptionAWSOwnedKey},
			},
			expectedError: "contradictory configuration: stream encryption cannot be combined with a source stream",
		},
		"source with inactive encryption is fine": {
			props: Props{
				Name:            "events",
				Destinations:    []destination.Binder{s3.New(s3.Props{})},
				SourceStreamARN: testSourceARN,
				Encryption:      &Encryption{Mode: EncryptionUnencrypted},
			},
		},
		"key with owned key mode": {
			props: Props{
				Name:         "events",
				Destinations: []destination.Binder{s3.New(s3.Props{})},
				Encryption: &Encryption{
					Mode:   EncryptionAWSOwnedKey,
					KeyARN: "arn:aws:kms:eu-west-1:123456789012:key/abc",
				},
			},
			expectedError: "contradictory configuration: an encryption key cannot be provided for the AWS_OWNED_CMK encryption mode",
		},
		"key with unencrypted mode": {
			props: Props{
				Name:         "events",
				Destinations: []destination.Binder{s3.New(s3.Props{})},
				Encryption: &Encryption{
					KeyARN: "arn:aws:kms:eu-west-1:123456789012:key/abc",
				},
			},
			expectedError: "contradictory configuration: an encryption key cannot be provided for the UNENCRYPTED encryption mode",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream, err := New(test.props)
			if test.expectedError != "" {
				assert.Nil(t, stream)
				assert.EqualError(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, stream)
		})
	}
}

func TestLogicalScope(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		name          string
		expectedScope string
	}{
		"plain name":          {name: "events", expectedScope: "Events"},
		"dashed name":         {name: "my-event-stream", expectedScope: "MyEventStream"},
		"dots and underscore": {name: "audit_logs.v2", expectedScope: "AuditLogsV2"},
		"already capitalized": {name: "Events", expectedScope: "Events"},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream, err := New(Props{
				Name:         test.name,
				Destinations: []destination.Binder{s3.New(s3.Props{})},
			})
			require.NoError(t, err)
			assert.Equal(t, test.expectedScope, stream.Scope())
		})
	}
}

func TestSynthesizeDirectPut(t *testing.T) {
	t.Parallel()

	stream, err := New(Props{
		Name:         "events",
		Destinations: []destination.Binder{s3.New(s3.Props{})},
	})
	require.NoError(t, err)

	tpl := template.New("")
	require.NoError(t, stream.Synthesize(t.Context(), tpl))

	resource, found := tpl.Resource("Events")
	require.True(t, found)
	assert.Equal(t, "AWS::KinesisFirehose::DeliveryStream", resource.Type)
	assert.Equal(t, "events", resource.Properties["DeliveryStreamName"])
	assert.Equal(t, "DirectPut", resource.Properties["DeliveryStreamType"])
	assert.NotContains(t, resource.Properties, "KinesisStreamSourceConfiguration")
	assert.NotContains(t, resource.Properties, "DeliveryStreamEncryptionConfigurationInput")
	assert.Contains(t, resource.Properties, "ExtendedS3DestinationConfiguration")

	_, found = tpl.Resource("EventsRole")
	assert.True(t, found)
	assert.Equal(t, []string{"EventsRoleDefaultPolicy"}, resource.DependsOn)
}

func TestSynthesizeKinesisSource(t *testing.T) {
	t.Parallel()

	stream, err := New(Props{
		Name:            "events",
		Destinations:    []destination.Binder{s3.New(s3.Props{})},
		SourceStreamARN: testSourceARN,
	})
	require.NoError(t, err)

	tpl := template.New("")
	require.NoError(t, stream.Synthesize(t.Context(), tpl))

	resource, found := tpl.Resource("Events")
	require.True(t, found)
	assert.Equal(t, "KinesisStreamAsSource", resource.Properties["DeliveryStreamType"])
	assert.Equal(t, map[string]any{
		"KinesisStreamARN": testSourceARN,
		"RoleARN":          template.GetAtt("EventsRole", "Arn"),
	}, resource.Properties["KinesisStreamSourceConfiguration"])

	policy, found := tpl.Resource("EventsRoleDefaultPolicy")
	require.True(t, found)

	document := policy.Properties["PolicyDocument"].(map[string]any)
	statement := document["Statement"].([]any)[0].(map[string]any)
	assert.Equal(t, []string{
		"kinesis:DescribeStream",
		"kinesis:GetRecords",
		"kinesis:GetShardIterator",
		"kinesis:ListShards",
	}, statement["Action"])
}

func TestSynthesizeAWSOwnedKeyEncryption(t *testing.T) {
	t.Parallel()

	stream, err := New(Props{
		Name:         "events",
		Destinations: []destination.Binder{s3.New(s3.Props{})},
		Encryption:   &Encryption{Mode: EncryptionAWSOwnedKey},
	})
	require.NoError(t, err)

	tpl := template.New("")
	require.NoError(t, stream.Synthesize(t.Context(), tpl))

	resource, found := tpl.Resource("Events")
	require.True(t, found)
	assert.Equal(t, map[string]any{
		"KeyType": "AWS_OWNED_CMK",
	}, resource.Properties["DeliveryStreamEncryptionConfigurationInput"])

	_, found = tpl.Resource("EventsKey")
	assert.False(t, found, "no owned key for the service-owned mode")
}

func TestSynthesizeCustomerManagedKeyEncryption(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		keyARN      string
		expectedKey any
		ownedKey    bool
	}{
		"provided key": {
			keyARN:      "arn:aws:kms:eu-west-1:123456789012:key/abc",
			expectedKey: "arn:aws:kms:eu-west-1:123456789012:key/abc",
		},
		"owned key": {
			expectedKey: template.GetAtt("EventsKey", "Arn"),
			ownedKey:    true,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream, err := New(Props{
				Name:         "events",
				Destinations: []destination.Binder{s3.New(s3.Props{})},
				Encryption: &Encryption{
					Mode:   EncryptionCustomerManagedKey,
					KeyARN: test.keyARN,
				},
			})
			require.NoError(t, err)

			tpl := template.New("")
			require.NoError(t, stream.Synthesize(t.Context(), tpl))

			resource, found := tpl.Resource("Events")
			require.True(t, found)
			assert.Equal(t, map[string]any{
				"KeyType": "CUSTOMER_MANAGED_CMK",
				"KeyARN":  test.expectedKey,
			}, resource.Properties["DeliveryStreamEncryptionConfigurationInput"])

			key, found := tpl.Resource("EventsKey")
			assert.Equal(t, test.ownedKey, found)
			if test.ownedKey {
				assert.Equal(t, "AWS::KMS::Key", key.Type)
			}
		})
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	t.Parallel()

	synthesize := func() map[string]any {
		stream, err := New(Props{
			Name:            "events",
			Destinations:    []destination.Binder{s3.New(s3.Props{})},
			SourceStreamARN: testSourceARN,
		})
		require.NoError(t, err)

		tpl := template.New("pipeline template")
		require.NoError(t, stream.Synthesize(t.Context(), tpl))
		return tpl.Definition()
	}

	assert.Equal(t, synthesize(), synthesize())
}

func TestParseEncryptionMode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value         string
		expectedMode  EncryptionMode
		expectedError string
	}{
		"unencrypted":      {value: "UNENCRYPTED", expectedMode: EncryptionUnencrypted},
		"aws owned":        {value: "AWS_OWNED_CMK", expectedMode: EncryptionAWSOwnedKey},
		"customer managed": {value: "CUSTOMER_MANAGED_CMK", expectedMode: EncryptionCustomerManagedKey},
		"unknown mode": {
			value:         "SSE",
			expectedError: `invalid value: unknown encryption mode "SSE"`,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mode, err := ParseEncryptionMode(test.value)
			if test.expectedError != "" {
				assert.ErrorIs(t, err, template.ErrDomainValidation)
				assert.EqualError(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedMode, mode)
		})
	}
}
