/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package cmd

import (
	"flag"
	"os"

	perrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

var log = logf.Log.WithName("vswitchctl")

const (
	ConfigFileArg     = "config"
	SnapshotFileArg   = "snapshot"
	EndpointSecretArg = "endpoint-secret"
	NoOverrideArg     = "no-override"
	FormatArg         = "format"
	VerboseArg        = "verbose"
	MetricsFileArg    = "metrics-textfile"
	IntervalArg       = "interval"
)

var zapOptions = zap.Options{
	Development: true,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vswitchctl",
	Short: "A utility to resolve the vswitch configuration of a system.",
	Long: `This is a helper tool which determines which vswitch technology is
configured across the openstack compute nodes of a system.  The configuration
is taken from the persisted Helm override when one is recorded; otherwise it
is inferred from the labels of every eligible host, which must all agree.
Hosts are read from the system API using the Openstack credentials sourced to
the current environment, from an endpoint secret, or from a snapshot file.`,
	PersistentPreRunE: setup,
}

// setup configures logging and loads the resolver configuration before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	logf.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	path, err := cmd.Flags().GetString(ConfigFileArg)
	if err != nil {
		return err
	}

	if path != "" {
		if err := common.SetConfigFile(path); err != nil {
			return err
		}

		// An explicit config file must exist; the default one is optional.
		if _, err := os.Stat(common.ConfigFileUsed()); err != nil {
			return perrors.Wrap(err, "config file is not accessible")
		}
	}

	return common.ReadConfig(false)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	goflags := flag.NewFlagSet("zap", flag.ExitOnError)
	zapOptions.BindFlags(goflags)
	rootCmd.PersistentFlags().AddGoFlagSet(goflags)

	rootCmd.PersistentFlags().StringP(ConfigFileArg, "c", "", "Path of the resolver configuration file")
	rootCmd.PersistentFlags().StringP(SnapshotFileArg, "s", "", "Read hosts, labels and overrides from a snapshot file instead of the system API")
	rootCmd.PersistentFlags().StringP(EndpointSecretArg, "e", "", "Read the system API credentials from a Secret manifest instead of the environment")
	rootCmd.PersistentFlags().Bool(NoOverrideArg, false, "Ignore any persisted vswitch override")
}
