/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

const conflictingSnapshot = `
hosts:
- hostname: compute-0
  provisioning: provisioned
  subfunctions: [worker]
  labels: {openstack-compute-node: enabled, openvswitch: enabled}
- hostname: compute-1
  provisioning: provisioned
  subfunctions: [worker]
  labels: {openstack-compute-node: enabled, openvswitch: enabled, dpdk: enabled}
overrides:
  openvswitch:
    conf: {vswitch: {labels: [openvswitch=enabled]}}
`

// snapshotCommand returns a command whose source flags select a snapshot.
func snapshotCommand(path string) *cobra.Command {
	c := &cobra.Command{}
	c.Flags().String(SnapshotFileArg, path, "")
	c.Flags().String(EndpointSecretArg, "", "")
	c.Flags().Bool(NoOverrideArg, false, "")
	return c
}

var _ = Describe("Validation sources", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte(conflictingSnapshot), 0600)).To(Succeed())
	})

	AfterEach(func() {
		common.ResetConfig()
	})

	It("should validate host labels without consulting the override", func() {
		report, err := validateOnce(snapshotCommand(filepath.Join(dir, "snapshot.yaml")))
		Expect(common.IsSemanticCheckFailure(err)).To(BeTrue())
		Expect(err.Error()).To(Equal(vswitch.ConflictingConfigurationMsg + "dpdk=enabled,openvswitch=enabled"))
		Expect(report.Hosts).To(HaveLen(2))
	})

	It("should resolve from the snapshot override unless disabled", func() {
		c := snapshotCommand(filepath.Join(dir, "snapshot.yaml"))

		loaded, config, err := loadConfig(c)
		Expect(err).ToNot(HaveOccurred())
		store, overrides, err := buildSources(c, loaded)
		Expect(err).ToNot(HaveOccurred())
		Expect(overrides).ToNot(BeNil())

		got, err := vswitch.ResolveCurrent(store, overrides, config)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal([]vswitch.LabelToken{common.DefaultOpenvswitchLabel}))

		Expect(c.Flags().Set(NoOverrideArg, "true")).To(Succeed())
		loaded, config, err = loadConfig(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(config.Override).To(Equal(vswitch.OverrideLocation{}))
		_, overrides, err = buildSources(c, loaded)
		Expect(err).ToNot(HaveOccurred())
		Expect(overrides).To(BeNil())
	})

	It("should report an invalid configuration", func() {
		common.SetOption(common.ComputeLabel, " ")
		_, _, err := loadConfig(snapshotCommand(""))
		Expect(err).To(HaveOccurred())
	})

	It("should export metrics while monitoring", func() {
		metricsFile := filepath.Join(dir, "vswitch.prom")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		monitor(ctx, snapshotCommand(filepath.Join(dir, "snapshot.yaml")), time.Hour, metricsFile)

		content, err := os.ReadFile(metricsFile)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("vswitch_validation_failures_total"))
	})

	It("should stop monitoring once the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		go func() {
			defer GinkgoRecover()
			defer close(done)
			monitor(ctx, snapshotCommand(filepath.Join(dir, "snapshot.yaml")), time.Hour, "")
		}()

		Consistently(done, 100*time.Millisecond).ShouldNot(BeClosed())
		cancel()
		Eventually(done, 5*time.Second).Should(BeClosed())
	})
})
