/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

func ResolveCmdRun(cmd *cobra.Command, args []string) {
	format, err := cmd.Flags().GetString(FormatArg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n", FormatArg)
		os.Exit(2)
	}

	verbose, err := cmd.Flags().GetBool(VerboseArg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n", VerboseArg)
		os.Exit(2)
	}

	loaded, config, err := loadConfig(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid resolver configuration: %s\n", err.Error())
		os.Exit(10)
	}

	store, overrides, err := buildSources(cmd, loaded)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to access host inventory: %s\n", err.Error())
		os.Exit(20)
	}

	report, err := vswitch.Resolve(store, overrides, config)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to resolve vswitch configuration: %s\n", err.Error())
		os.Exit(30)
	}

	if err = writeReport(os.Stdout, report, format, verbose); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %s\n", err.Error())
		os.Exit(40)
	}
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Display the vswitch labels currently in effect",
	Long: `The resolve subcommand displays the vswitch labels currently in effect.
A persisted Helm override takes precedence over host labels.  An empty list is
reported when no host is eligible or when the eligible hosts do not agree.`,
	Args: cobra.NoArgs,
	Run:  ResolveCmdRun,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP(FormatArg, "o", FormatYAML, "Output format; one of yaml or csv")
	resolveCmd.Flags().BoolP(VerboseArg, "v", false, "Include the classification of every eligible host")
}
