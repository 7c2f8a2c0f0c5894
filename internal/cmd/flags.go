// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"
)

const (
	definitionPathFlagName  = "definition-file"
	definitionPathFlagShort = "f"
	definitionPathFlagUsage = "Path to the pipeline definition file to synthesize."

	outputPathFlagName  = "output"
	outputPathFlagShort = "o"
	outputPathFlagUsage = "Write the template to this path instead of stdout."

	outputFormatFlagName    = "output-format"
	outputFormatFlagUsage   = "Serialization format of the template (json or yaml)."
	outputFormatFlagDefault = formatJSON
)

// flags collects the CLI options of the synth command.
type flags struct {
	definitionPath string
	outputPath     string
	outputFormat   string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&f.definitionPath,
		definitionPathFlagName,
		definitionPathFlagShort,
		"",
		definitionPathFlagUsage)

	cmd.Flags().StringVarP(
		&f.outputPath,
		outputPathFlagName,
		outputPathFlagShort,
		"",
		outputPathFlagUsage)

	cmd.Flags().StringVar(
		&f.outputFormat,
		outputFormatFlagName,
		outputFormatFlagDefault,
		outputFormatFlagUsage)
}

// toOptions builds an options instance from the parsed flags.
func (f *flags) toOptions(cmd *cobra.Command) *options {
	return &options{
		definitionPath: f.definitionPath,
		outputPath:     f.outputPath,
		outputFormat:   f.outputFormat,
		out:            cmd.OutOrStdout(),
	}
}
