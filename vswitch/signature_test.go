/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Per-host classifier", func() {
	catalog := DefaultCatalog()

	It("should classify an allowed combination as valid", func() {
		s := ClassifyHost(tokenSet(computeLabel, ovsLabel), catalog)
		Expect(s.Kind()).To(Equal(SignatureValid))
		c, ok := s.Combination()
		Expect(ok).To(BeTrue())
		Expect(c.Tokens()).To(Equal(tokens(ovsLabel)))
	})

	It("should ignore labels unrelated to the vswitch", func() {
		s := ClassifyHost(tokenSet(computeLabel, ovsLabel, dpdkLabel, "ceph-mon-placement=enabled", "sriov=enabled"), catalog)
		Expect(s.Kind()).To(Equal(SignatureValid))
		Expect(s.String()).To(Equal("dpdk=enabled,openvswitch=enabled"))
	})

	It("should classify a host without vswitch labels as empty", func() {
		s := ClassifyHost(tokenSet(computeLabel), catalog)
		Expect(s.Kind()).To(Equal(SignatureEmpty))
		Expect(s.Tokens()).To(Equal([]LabelToken{NoneMarker}))
		_, ok := s.Combination()
		Expect(ok).To(BeFalse())
	})

	It("should classify a partial combination as divergent", func() {
		s := ClassifyHost(tokenSet(computeLabel, dpdkLabel), catalog)
		Expect(s.Kind()).To(Equal(SignatureDivergent))
		Expect(s.Tokens()).To(Equal(tokens(dpdkLabel)))
	})

	It("should classify a foreign technology mixed with an allowed combination as divergent", func() {
		s := ClassifyHost(tokenSet(computeLabel, ovsLabel, dpdkLabel, avsLabel), extendedCatalog())
		Expect(s.Kind()).To(Equal(SignatureDivergent))
		Expect(s.Tokens()).To(Equal(tokens(avsLabel, dpdkLabel, ovsLabel)))
	})

	It("should depend only on its arguments", func() {
		labels := tokenSet(computeLabel, dpdkLabel)
		first := ClassifyHost(labels, catalog)
		ClassifyHost(tokenSet(computeLabel, ovsLabel), catalog)
		second := ClassifyHost(labels, catalog)
		Expect(second).To(Equal(first))
		Expect(labels.Len()).To(Equal(2))
	})
})
