/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

const (
	// Exit code reported when the hosts disagree on their vswitch configuration.
	ConflictExitCode = 3

	// Exit code reported when the configuration or the hosts could not be read.
	ValidateErrorExitCode = 1
)

// validateExitCode maps the outcome of a validation to the process exit code.
func validateExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case common.IsSemanticCheckFailure(err):
		return ConflictExitCode
	default:
		return ValidateErrorExitCode
	}
}

// writeMetrics exports the resolver metrics for the node exporter textfile
// collector.  An empty path disables the export.
func writeMetrics(path string) {
	if path == "" {
		return
	}

	if err := prometheus.WriteToTextfile(path, metrics.Registry); err != nil {
		log.Error(err, "failed to write metrics", "path", path)
	}
}

// validateOnce validates the current state of the hosts.  Persisted
// overrides are ignored since the actual labels of the hosts are verified.
func validateOnce(cmd *cobra.Command) (*vswitch.Resolution, error) {
	loaded, config, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store, _, err := buildSources(cmd, loaded)
	if err != nil {
		return nil, err
	}

	return vswitch.Validate(store, config)
}

func ValidateCmdRun(cmd *cobra.Command, args []string) {
	verbose, err := cmd.Flags().GetBool(VerboseArg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n", VerboseArg)
		os.Exit(2)
	}

	metricsFile, err := cmd.Flags().GetString(MetricsFileArg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n", MetricsFileArg)
		os.Exit(2)
	}

	report, err := validateOnce(cmd)
	writeMetrics(metricsFile)

	if report != nil && verbose {
		_ = writeReport(os.Stdout, report, FormatYAML, true)
	}

	switch code := validateExitCode(err); code {
	case 0:
	case ConflictExitCode:
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "failed to validate vswitch configuration: %s\n", err.Error())
		os.Exit(code)
	}

	if report.Result.Outcome() == vswitch.NoEligibleHosts {
		fmt.Printf("no eligible hosts.\n")
		return
	}

	fmt.Printf("vswitch configuration is consistent: %s\n", strings.Join(vswitch.TokenStrings(report.Result.Labels()), ","))
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Verify that all compute nodes agree on their vswitch configuration",
	Long: `The validate subcommand verifies that every eligible compute node carries
the same allowed vswitch label combination.  It exits with a non-zero status
and describes the missing or conflicting configurations when they do not.`,
	Args: cobra.NoArgs,
	Run:  ValidateCmdRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolP(VerboseArg, "v", false, "Display the classification of every eligible host")
	validateCmd.Flags().String(MetricsFileArg, "", "Write resolver metrics to a node exporter textfile")
}
