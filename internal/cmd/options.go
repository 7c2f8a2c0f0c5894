// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mia-platform/streamsynth/internal/config"
	"github.com/mia-platform/streamsynth/internal/deliverystream"
	"github.com/mia-platform/streamsynth/internal/logger"
	"github.com/mia-platform/streamsynth/internal/template"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	outputFileMode = 0o644

	loggerName = "streamsynth:synth"
)

// options configures a template synthesis run.
type options struct {
	definitionPath string
	outputPath     string
	outputFormat   string
	out            io.Writer
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if o.definitionPath == "" {
		return errNoDefinition
	}

	if o.outputFormat != formatJSON && o.outputFormat != formatYAML {
		return fmt.Errorf("%w: %s", errInvalidFormat, o.outputFormat)
	}

	return nil
}

// executeSynth loads the pipeline definition, synthesizes the template and
// writes it to the configured output.
func (o *options) executeSynth(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	pipeline, err := config.NewPipelineFromPath(o.definitionPath)
	if err != nil {
		return err
	}

	log.Debug("pipeline definition loaded", "path", o.definitionPath, "name", pipeline.Name)
	tpl, err := synthesize(ctx, pipeline)
	if err != nil {
		return err
	}

	var data []byte
	switch o.outputFormat {
	case formatYAML:
		data, err = tpl.YAML()
	default:
		data, err = tpl.JSON()
	}
	if err != nil {
		return err
	}

	if o.outputPath != "" {
		log.Debug("writing template", "path", o.outputPath, "format", o.outputFormat)
		return os.WriteFile(o.outputPath, data, outputFileMode)
	}

	_, err = o.out.Write(data)
	return err
}

// synthesize assembles and renders the template of a pipeline definition.
func synthesize(ctx context.Context, pipeline *config.Pipeline) (*template.Template, error) {
	stream, err := deliverystream.FromConfig(pipeline)
	if err != nil {
		return nil, err
	}

	tpl := template.New(pipeline.Description)
	if err := stream.Synthesize(ctx, tpl); err != nil {
		return nil, err
	}

	return tpl, nil
}
