/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

// IsEligible returns whether a host takes part in vswitch consensus.  The host
// must be labelled as a compute node, have the worker sub-function, and be
// either provisioned, being provisioned, or about to be unlocked.
func IsEligible(host Host, hostLabels sets.Set[LabelToken], computeLabel LabelToken) bool {
	if !hostLabels.Has(computeLabel) {
		return false
	}

	if !common.ContainsString(host.SubFunctions, SubFunctionWorker) {
		return false
	}

	switch host.Provisioning {
	case Provisioned, Provisioning:
		return true
	}

	return host.Action == ActionUnlock || host.Action == ActionForceUnlock
}
