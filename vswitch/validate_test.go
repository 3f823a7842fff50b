/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

var _ = Describe("Semantic validator", func() {
	config := DefaultConfig()

	validate := func(f *fleet, c Config) error {
		return ValidateForApply(f.hosts, f.labels, c)
	}

	It("should accept a fleet without eligible hosts", func() {
		Expect(validate(&fleet{}, config)).To(Succeed())
	})

	It("should accept a unanimous fleet", func() {
		Expect(validate((&fleet{}).compute(ovsLabel).compute(ovsLabel), config)).To(Succeed())
	})

	It("should report hosts without vswitch configuration", func() {
		err := validate((&fleet{}).compute(), config)
		Expect(err).To(Equal(common.NewSemanticCheckFailure(
			"There are openstack-enabled compute nodes with no vswitch configuration")))
	})

	It("should report conflicting configurations", func() {
		err := validate((&fleet{}).compute(ovsLabel).compute(ovsLabel, dpdkLabel), config)
		Expect(err).To(MatchError(
			"There are conflicting vswitch configurations: dpdk=enabled,openvswitch=enabled"))
		Expect(common.IsSemanticCheckFailure(err)).To(BeTrue())
	})

	It("should report a foreign technology on a single host", func() {
		err := validate((&fleet{}).compute(ovsLabel, dpdkLabel, avsLabel), testConfig(extendedCatalog()))
		Expect(err).To(MatchError(
			"There are conflicting vswitch configurations: avs=enabled,dpdk=enabled,openvswitch=enabled"))
	})

	It("should report a single divergent label as a conflict", func() {
		err := validate((&fleet{}).compute(dpdkLabel), config)
		Expect(err).To(MatchError("There are conflicting vswitch configurations: dpdk=enabled"))
	})

	It("should report missing and conflicting configurations together", func() {
		err := validate((&fleet{}).compute(ovsLabel).compute(), config)
		Expect(err).To(MatchError(
			"There are openstack-enabled compute nodes with no vswitch configuration " +
				"and there are conflicting vswitch configurations: openvswitch=enabled"))
	})

	It("should validate a snapshot read from the store", func() {
		store := (&fleet{}).compute()
		_, err := Validate(store, config)
		Expect(common.IsSemanticCheckFailure(err)).To(BeTrue())
	})

	It("should return the report along with the failure", func() {
		report, err := Validate((&fleet{}).compute(ovsLabel).compute(dpdkLabel, ovsLabel), config)
		Expect(err).To(HaveOccurred())
		Expect(report).ToNot(BeNil())
		Expect(report.Result.Outcome()).To(Equal(Unresolved))
		Expect(report.Hosts).To(HaveLen(2))
	})

	It("should keep read failures distinct from semantic failures", func() {
		_, err := Validate(failingStore{hostErr: errors.New("unreachable")}, config)
		Expect(err).To(HaveOccurred())
		Expect(common.IsSemanticCheckFailure(err)).To(BeFalse())
	})
})
