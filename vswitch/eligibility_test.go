/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Eligibility filter", func() {
	worker := Host{
		ID:           "uuid",
		Hostname:     "compute-0",
		Provisioning: Provisioned,
		Action:       ActionNone,
		SubFunctions: []string{SubFunctionWorker},
	}
	labels := tokenSet(computeLabel, ovsLabel)

	It("should accept provisioned compute workers", func() {
		Expect(IsEligible(worker, labels, computeLabel)).To(BeTrue())
	})

	It("should require the compute label", func() {
		Expect(IsEligible(worker, tokenSet(ovsLabel), computeLabel)).To(BeFalse())
		Expect(IsEligible(worker, nil, computeLabel)).To(BeFalse())
	})

	It("should require the worker sub-function", func() {
		host := worker
		host.SubFunctions = []string{SubFunctionController, SubFunctionStorage}
		Expect(IsEligible(host, labels, computeLabel)).To(BeFalse())

		host.SubFunctions = []string{SubFunctionController, SubFunctionWorker}
		Expect(IsEligible(host, labels, computeLabel)).To(BeTrue())
	})

	It("should consider the provisioning state and pending action", func() {
		tests := []struct {
			name         string
			provisioning ProvisionState
			action       HostAction
			want         bool
		}{
			{name: "provisioned", provisioning: Provisioned, action: ActionNone, want: true},
			{name: "provisioning", provisioning: Provisioning, action: ActionNone, want: true},
			{name: "provisioned-locking", provisioning: Provisioned, action: ActionLock, want: true},
			{name: "unprovisioned", provisioning: Unprovisioned, action: ActionNone, want: false},
			{name: "unprovisioned-unlock", provisioning: Unprovisioned, action: ActionUnlock, want: true},
			{name: "unprovisioned-force-unlock", provisioning: Unprovisioned, action: ActionForceUnlock, want: true},
			{name: "unprovisioned-lock", provisioning: Unprovisioned, action: ActionLock, want: false},
			{name: "unknown-state", provisioning: "", action: ActionForceLock, want: false},
		}
		for _, tt := range tests {
			host := worker
			host.Provisioning = tt.provisioning
			host.Action = tt.action
			Expect(IsEligible(host, labels, computeLabel)).To(Equal(tt.want), tt.name)
		}
	})
})
