// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package deliverystream

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mia-platform/streamsynth/internal/destination"
	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/logger"
	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	resourceType     = "AWS::KinesisFirehose::DeliveryStream"
	keyResourceType  = "AWS::KMS::Key"
	servicePrincipal = "firehose.amazonaws.com"

	loggerName = "streamsynth:deliverystream"
)

var (
	// nameExpression is the name syntax accepted by the delivery service.
	nameExpression = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

	notAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

	sourceStreamActions = []string{
		"kinesis:DescribeStream",
		"kinesis:GetRecords",
		"kinesis:GetShardIterator",
		"kinesis:ListShards",
	}

	encryptionKeyActions = []string{
		"kms:Encrypt",
		"kms:Decrypt",
		"kms:GenerateDataKey*",
	}
)

// Props configures a delivery stream.
type Props struct {
	Name            string
	Destinations    []destination.Binder
	SourceStreamARN string
	Encryption      *Encryption
}

// DeliveryStream is the assembled pipeline definition, validated and ready to
// be synthesized into a template.
type DeliveryStream struct {
	props Props
	scope string
}

// New validates props eagerly and returns the delivery stream. Every
// configuration contradiction is reported here or during Synthesize, never
// deferred to template emission.
func New(props Props) (*DeliveryStream, error) {
	if !nameExpression.MatchString(props.Name) {
		return nil, fmt.Errorf("%w: delivery stream name %q must be 1 to 64 alphanumeric, dot, underscore or dash characters",
			template.ErrDomainValidation, props.Name)
	}

	if count := len(props.Destinations); count != 1 {
		return nil, fmt.Errorf("%w: exactly one destination is required, got %d", template.ErrCardinality, count)
	}

	if props.SourceStreamARN != "" {
		if segments := strings.Split(props.SourceStreamARN, ":"); len(segments) < 6 || segments[len(segments)-1] == "" {
			return nil, fmt.Errorf("%w: no stream name could be extracted from ARN %q", template.ErrLookup, props.SourceStreamARN)
		}
		if props.Encryption.active() {
			return nil, fmt.Errorf("%w: stream encryption cannot be combined with a source stream", template.ErrContradiction)
		}
	}

	if props.Encryption != nil {
		if err := props.Encryption.validate(); err != nil {
			return nil, err
		}
	}

	return &DeliveryStream{
		props: props,
		scope: logicalScope(props.Name),
	}, nil
}

// Scope returns the logical-ID prefix derived from the stream name.
func (d *DeliveryStream) Scope() string {
	return d.scope
}

// Synthesize creates the permission principal, binds the destination and adds
// the delivery stream resource to tpl, recording every grant produced during
// the bind as a dependency edge of the resource.
func (d *DeliveryStream) Synthesize(ctx context.Context, tpl *template.Template) error {
	log := logger.FromContext(ctx).WithName(loggerName)
	log.Debug("synthesizing delivery stream", "name", d.props.Name)

	role, err := iam.NewRole(tpl, d.scope+"Role", servicePrincipal)
	if err != nil {
		return err
	}

	bctx := &destination.BindContext{
		Template: tpl,
		Role:     role,
		Scope:    d.scope,
	}

	properties := map[string]any{
		"DeliveryStreamName": d.props.Name,
		"DeliveryStreamType": "DirectPut",
	}

	if d.props.SourceStreamARN != "" {
		properties["DeliveryStreamType"] = "KinesisStreamAsSource"
		properties["KinesisStreamSourceConfiguration"] = map[string]any{
			"KinesisStreamARN": d.props.SourceStreamARN,
			"RoleARN":          role.ARN(),
		}

		grantID, err := role.Grant(iam.Statement{
			Actions:   sourceStreamActions,
			Resources: []any{d.props.SourceStreamARN},
		})
		if err != nil {
			return err
		}
		bctx.AddDependency(grantID)
	}

	if d.props.Encryption.active() {
		input, err := d.encryptionInput(tpl, role, bctx)
		if err != nil {
			return err
		}
		properties["DeliveryStreamEncryptionConfigurationInput"] = input
	}

	config, err := d.props.Destinations[0].Bind(ctx, bctx)
	if err != nil {
		return err
	}
	for key, value := range config {
		properties[key] = value
	}

	dependencies := bctx.Dependencies()
	slices.Sort(dependencies)

	log.Debug("delivery stream synthesized", "scope", d.scope, "dependencies", dependencies)
	return tpl.Add(d.scope, &template.Resource{
		Type:       resourceType,
		Properties: properties,
		DependsOn:  dependencies,
	})
}

// encryptionInput builds the at-rest encryption input, creating an owned key
// when the customer-managed mode carries none.
func (d *DeliveryStream) encryptionInput(tpl *template.Template, role *iam.Role, bctx *destination.BindContext) (map[string]any, error) {
	encryption := d.props.Encryption
	if encryption.Mode == EncryptionAWSOwnedKey {
		return map[string]any{"KeyType": encryption.Mode.String()}, nil
	}

	keyARN := any(encryption.KeyARN)
	if encryption.KeyARN == "" {
		keyID := d.scope + "Key"
		if err := tpl.Add(keyID, &template.Resource{
			Type:       keyResourceType,
			Properties: map[string]any{},
		}); err != nil {
			return nil, err
		}
		keyARN = template.GetAtt(keyID, "Arn")
	}

	grantID, err := role.Grant(iam.Statement{
		Actions:   encryptionKeyActions,
		Resources: []any{keyARN},
	})
	if err != nil {
		return nil, err
	}
	bctx.AddDependency(grantID)

	return map[string]any{
		"KeyType": encryption.Mode.String(),
		"KeyARN":  keyARN,
	}, nil
}

// logicalScope derives the logical-ID prefix from the stream name, keeping
// alphanumeric runs and capitalizing each of them.
func logicalScope(name string) string {
	var builder strings.Builder
	for _, chunk := range notAlphanumeric.Split(name, -1) {
		if chunk == "" {
			continue
		}
		builder.WriteString(strings.ToUpper(chunk[:1]))
		builder.WriteString(chunk[1:])
	}

	return builder.String()
}
