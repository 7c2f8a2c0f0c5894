// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mia-platform/streamsynth/internal/iam"
	"github.com/mia-platform/streamsynth/internal/template"
)

const processorType = "Lambda"

var invokeActions = []string{
	"lambda:InvokeFunction",
	"lambda:GetFunctionConfiguration",
}

// Processor is an external compute hook transforming records before delivery.
type Processor struct {
	FunctionARN    string
	BufferInterval *time.Duration
	BufferSize     *DataSize
	Retries        *int64
}

// ProcessingConfig builds the record-transformation fragment. At most one
// processor is accepted per destination.
//
// The parameter list is a wire contract: it always starts with the pipeline
// principal ARN and the processor function ARN, followed by the optional
// parameters that were actually supplied, in fixed order (buffer interval,
// buffer size, retries), each serialized as its decimal string form.
func (s *BindSupport) ProcessingConfig(bctx *BindContext, processors []Processor) (map[string]any, error) {
	switch len(processors) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: only one processor is allowed per destination, got %d", template.ErrCardinality, len(processors))
	}

	processor := processors[0]
	if processor.FunctionARN == "" {
		return nil, fmt.Errorf("%w: no function ARN provided for the processor", template.ErrLookup)
	}

	grantID, err := bctx.Role.Grant(iam.Statement{
		Actions: invokeActions,
		Resources: []any{
			processor.FunctionARN,
			// cover qualified invocations of versions and aliases
			processor.FunctionARN + ":*",
		},
	})
	if err != nil {
		return nil, err
	}
	bctx.AddDependency(grantID)

	hints, err := BufferingHints(processor.BufferInterval, processor.BufferSize)
	if err != nil {
		return nil, err
	}

	parameters := []any{
		parameter("RoleArn", bctx.Role.ARN()),
		parameter("LambdaArn", processor.FunctionARN),
	}
	if seconds, found := hints["IntervalInSeconds"]; found {
		parameters = append(parameters, parameter("BufferIntervalInSeconds", strconv.FormatInt(seconds.(int64), 10)))
	}
	if mebibytes, found := hints["SizeInMBs"]; found {
		parameters = append(parameters, parameter("BufferSizeInMBs", strconv.FormatInt(mebibytes.(int64), 10)))
	}
	if processor.Retries != nil {
		if *processor.Retries < 0 {
			return nil, fmt.Errorf("%w: processor retries must be at least 0, got %d", template.ErrOutOfRange, *processor.Retries)
		}
		parameters = append(parameters, parameter("NumberOfRetries", strconv.FormatInt(*processor.Retries, 10)))
	}

	return map[string]any{
		"Enabled": true,
		"Processors": []any{
			map[string]any{
				"Type":       processorType,
				"Parameters": parameters,
			},
		},
	}, nil
}

func parameter(name string, value any) map[string]any {
	return map[string]any{
		"ParameterName":  name,
		"ParameterValue": value,
	}
}
