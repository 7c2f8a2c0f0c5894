// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/streamsynth/internal/server"
)

const (
	synthCmdUsage = "synth"
	synthCmdShort = "synthesize the template of a delivery pipeline"
	synthCmdLong  = `Synthesize the resource template of a delivery pipeline.
	The pipeline definition file describes the record source, the at-rest
	encryption and the delivery destination; the resulting template is written
	as JSON or YAML to stdout or to a file.`

	synthCmdExample = `# Synthesize pipeline.yaml and print the template to stdout
	streamsynth synth --definition-file pipeline.yaml

	# Synthesize to a YAML template file
	streamsynth synth -f pipeline.yaml -o template.yaml --output-format yaml`

	serveCmdUsage = "serve"
	serveCmdShort = "expose the synthesizer as an HTTP service"
	serveCmdLong  = `Expose the synthesizer as an HTTP service.
	The service accepts pipeline definitions on POST /synth and answers with
	the synthesized JSON template, so CI pipelines can render templates
	without a local installation.`

	serveCmdExample = `# Start the service on the port set via HTTP_PORT
	streamsynth serve`
)

// SynthCmd returns the Cobra command that synthesizes a pipeline template.
func SynthCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     synthCmdUsage,
		Short:   heredoc.Doc(synthCmdShort),
		Long:    heredoc.Doc(synthCmdLong),
		Example: heredoc.Doc(synthCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.toOptions(cmd)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executeSynth(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ServeCmd returns the Cobra command that runs the synthesizer HTTP service.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.NewServer(ctx)
			if err != nil {
				return handleError(cmd, err)
			}

			srv.StartAsync(ctx)
			<-ctx.Done()
			return srv.Stop()
		},
	}
}
