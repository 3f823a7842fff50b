/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

// monitor revalidates the hosts each interval, or as soon as the config file
// changes, until the context is cancelled.
func monitor(ctx context.Context, cmd *cobra.Command, interval time.Duration, metricsFile string) {
	logger := logr.FromContextOrDiscard(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := validateOnce(cmd)
		writeMetrics(metricsFile)

		switch {
		case common.IsSemanticCheckFailure(err):
			logger.Info("vswitch configuration is inconsistent", "reason", err.Error())
		case err != nil:
			logger.Error(err, "failed to validate vswitch configuration")
		case report.Result.Outcome() == vswitch.NoEligibleHosts:
			logger.Info("no eligible hosts")
		default:
			logger.Info("vswitch configuration is consistent",
				"labels", vswitch.TokenStrings(report.Result.Labels()), "hosts", len(report.Hosts))
		}

		select {
		case <-ctx.Done():
			return
		case <-common.ConfigChanged():
			logger.Info("configuration changed; revalidating")
		case <-ticker.C:
		}
	}
}

func MonitorCmdRun(cmd *cobra.Command, args []string) {
	interval, err := cmd.Flags().GetDuration(IntervalArg)
	if err != nil || interval <= 0 {
		_, _ = fmt.Fprintf(os.Stderr, "%q must be a positive duration\n", IntervalArg)
		os.Exit(2)
	}

	metricsFile, err := cmd.Flags().GetString(MetricsFileArg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n", MetricsFileArg)
		os.Exit(2)
	}

	// Reload the config file and keep watching it for changes.
	if err = common.ReadConfig(true); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to watch resolver configuration: %s\n", err.Error())
		os.Exit(10)
	}

	ctx := signals.SetupSignalHandler()

	logger := log.WithValues("interval", interval.String())
	logger.Info("monitoring vswitch configuration")
	monitor(logr.NewContext(ctx, logger), cmd, interval, metricsFile)
}

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Periodically verify the vswitch configuration of the compute nodes",
	Long: `The monitor subcommand repeats the validation at a fixed interval and
whenever the resolver configuration file changes.  Results are logged and may
be exported to a node exporter textfile.`,
	Args: cobra.NoArgs,
	Run:  MonitorCmdRun,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().Duration(IntervalArg, 5*time.Minute, "Time between validations")
	monitorCmd.Flags().String(MetricsFileArg, "", "Write resolver metrics to a node exporter textfile")
}
