/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2023-2026 Wind River Systems, Inc. */

package common

// Defaults for the Helm override that records the operator's vswitch choice.
const DefaultOverrideChart = "openvswitch"
const DefaultOverrideNamespace = "openstack"
const DefaultOverrideApplication = "stx-openstack"
const DefaultOverridePath = "conf.vswitch.labels"

// DefaultComputeLabel is the label which marks a host as an openstack
// compute node.
const DefaultComputeLabel = "openstack-compute-node=enabled"

// Production vswitch labels.
const DefaultOpenvswitchLabel = "openvswitch=enabled"
const DefaultDPDKLabel = "dpdk=enabled"

// DefaultCombinations is the production list of allowed vswitch label
// combinations.
var DefaultCombinations = [][]string{
	{DefaultOpenvswitchLabel},
	{DefaultOpenvswitchLabel, DefaultDPDKLabel},
}
