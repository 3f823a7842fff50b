/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func CatalogCmdRun(cmd *cobra.Command, args []string) {
	_, config, err := loadConfig(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid resolver configuration: %s\n", err.Error())
		os.Exit(10)
	}

	if err = writeCatalog(os.Stdout, config); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write catalog: %s\n", err.Error())
		os.Exit(40)
	}
}

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Display the allowed vswitch label combinations",
	Args:  cobra.NoArgs,
	Run:   CatalogCmdRun,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
