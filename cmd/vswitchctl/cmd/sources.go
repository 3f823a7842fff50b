/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/platform"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

// loadConfig returns the resolver configuration with the command line
// overrides applied.
func loadConfig(cmd *cobra.Command) (common.ResolverConfig, vswitch.Config, error) {
	loaded, err := common.LoadResolverConfig()
	if err != nil {
		return common.ResolverConfig{}, vswitch.Config{}, err
	}

	noOverride, err := cmd.Flags().GetBool(NoOverrideArg)
	if err != nil {
		return common.ResolverConfig{}, vswitch.Config{}, err
	}

	if noOverride {
		loaded.Override.Enabled = false
	}

	config, err := vswitch.NewConfig(loaded)
	if err != nil {
		return common.ResolverConfig{}, vswitch.Config{}, err
	}

	return loaded, config, nil
}

// buildSources returns the host and override stores selected by the command
// line.  The override store is nil when overrides are disabled.
func buildSources(cmd *cobra.Command, loaded common.ResolverConfig) (vswitch.HostStore, vswitch.OverrideStore, error) {
	snapshotPath, err := cmd.Flags().GetString(SnapshotFileArg)
	if err != nil {
		return nil, nil, err
	}

	if snapshotPath != "" {
		snapshot, err := platform.LoadSnapshot(snapshotPath)
		if err != nil {
			return nil, nil, err
		}

		if !loaded.Override.Enabled {
			return snapshot, nil, nil
		}

		return snapshot, snapshot, nil
	}

	secretPath, err := cmd.Flags().GetString(EndpointSecretArg)
	if err != nil {
		return nil, nil, err
	}

	credentials := platform.CredentialsFromEnv()
	if secretPath != "" {
		secret, err := platform.LoadSecret(secretPath)
		if err != nil {
			return nil, nil, err
		}

		credentials = platform.CredentialsFromSecret(secret)
	}

	client, err := platform.BuildPlatformClient(credentials)
	if err != nil {
		return nil, nil, err
	}

	store := platform.NewInventoryStore(client)
	if !loaded.Override.Enabled {
		return store, nil, nil
	}

	return store, platform.NewHelmOverrideStore(client, loaded.Override.Namespace, loaded.Override.Application), nil
}
