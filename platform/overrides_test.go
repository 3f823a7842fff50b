/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"net/http"

	th "github.com/gophercloud/gophercloud/testhelper"
	gcClient "github.com/gophercloud/gophercloud/testhelper/client"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

const chartBody = `
{
    "name": "openvswitch",
    "namespace": "openstack",
    "system_overrides": {
        "conf": {
            "vswitch": {"labels": ["openvswitch=enabled"]},
            "neutron": {"enabled": true}
        }
    },
    "user_overrides": "conf:\n  vswitch:\n    labels:\n    - openvswitch=enabled\n    - dpdk=enabled\n"
}
`

// handleChart serves a chart and records the query it was requested with.
func handleChart(status int, body string, query *map[string]string) {
	th.Mux.HandleFunc("/helm_charts/openvswitch", func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		Expect(r.Method).To(Equal(http.MethodGet))
		if query != nil {
			*query = map[string]string{
				"namespace": r.URL.Query().Get("namespace"),
				"app_name":  r.URL.Query().Get("app_name"),
			}
		}
		writeJSON(w, status, body)
	})
}

var _ = Describe("Helm overrides", func() {
	Context("when merging overrides", func() {
		It("should apply user overrides over system overrides", func() {
			system := map[string]interface{}{
				"conf": map[string]interface{}{
					"vswitch": map[string]interface{}{"labels": []interface{}{"openvswitch=enabled"}},
					"neutron": map[string]interface{}{"enabled": true},
				},
			}
			user := "conf:\n  vswitch:\n    labels: dpdk=enabled,openvswitch=enabled\n"

			got, err := MergeOverrides(system, user)
			Expect(err).ToNot(HaveOccurred())

			value, ok := common.LookupPath(got, "conf.vswitch.labels")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("dpdk=enabled,openvswitch=enabled"))

			enabled, ok := common.LookupPath(got, "conf.neutron.enabled")
			Expect(ok).To(BeTrue())
			Expect(enabled).To(BeTrue())
		})

		It("should copy system overrides when there are no user overrides", func() {
			system := map[string]interface{}{"conf": "value"}
			got, err := MergeOverrides(system, "  \n")
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal(system))
		})

		It("should reject user overrides which are not a YAML map", func() {
			_, err := MergeOverrides(nil, "- a\n- b\n")
			Expect(err).To(HaveOccurred())
		})

		It("should prefer the combined overrides reported by the system", func() {
			chart := HelmChart{
				SystemOverrides:   map[string]interface{}{"a": "system"},
				CombinedOverrides: map[string]interface{}{"a": "combined"},
			}
			got, err := chart.Effective()
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveKeyWithValue("a", "combined"))
		})
	})

	Context("when decoding label lists", func() {
		It("should accept lists and comma separated strings", func() {
			tests := []struct {
				name     string
				value    interface{}
				expected []string
				ok       bool
			}{
				{name: "string", value: "openvswitch=enabled, dpdk=enabled", expected: []string{"openvswitch=enabled", "dpdk=enabled"}, ok: true},
				{name: "strings", value: []string{"openvswitch=enabled"}, expected: []string{"openvswitch=enabled"}, ok: true},
				{name: "interfaces", value: []interface{}{"openvswitch=enabled"}, expected: []string{"openvswitch=enabled"}, ok: true},
				{name: "mixed", value: []interface{}{"openvswitch=enabled", 1}, ok: false},
				{name: "map", value: map[string]interface{}{"a": "b"}, ok: false},
				{name: "number", value: 12, ok: false},
			}
			for _, tt := range tests {
				got, ok := decodeLabelList(tt.value)
				Expect(ok).To(Equal(tt.ok), tt.name)
				if tt.ok {
					Expect(got).To(Equal(tt.expected), tt.name)
				}
			}
		})
	})

	Context("when reading overrides from the system API", func() {
		BeforeEach(func() {
			th.SetupHTTP()
		})

		AfterEach(func() {
			th.TeardownHTTP()
		})

		It("should query the chart of the configured application", func() {
			var query map[string]string
			handleChart(http.StatusOK, chartBody, &query)

			chart, err := GetHelmChart(gcClient.ServiceClient(), "openvswitch", "openstack", "stx-openstack")
			Expect(err).ToNot(HaveOccurred())
			Expect(chart.Name).To(Equal("openvswitch"))
			Expect(query).To(Equal(map[string]string{"namespace": "openstack", "app_name": "stx-openstack"}))
		})

		It("should return the labels recorded in the user overrides", func() {
			handleChart(http.StatusOK, chartBody, nil)

			store := NewHelmOverrideStore(gcClient.ServiceClient(), common.DefaultOverrideNamespace, common.DefaultOverrideApplication)
			got, found, err := store.GetOverride(common.DefaultOverrideChart, common.DefaultOverridePath)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(got).To(Equal([]string{"openvswitch=enabled", "dpdk=enabled"}))
		})

		It("should report a missing chart as a missing resource", func() {
			handleChart(http.StatusNotFound, `{"error_message": "chart not found"}`, nil)

			_, err := GetHelmChart(gcClient.ServiceClient(), "openvswitch", "openstack", "stx-openstack")
			Expect(err).To(BeAssignableToTypeOf(common.ErrMissingSystemResource{}))
		})

		It("should report a missing chart as no override", func() {
			handleChart(http.StatusNotFound, `{"error_message": "chart not found"}`, nil)

			store := NewHelmOverrideStore(gcClient.ServiceClient(), "", "")
			_, found, err := store.GetOverride(common.DefaultOverrideChart, common.DefaultOverridePath)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeFalse())
		})

		It("should report a missing path as no override", func() {
			handleChart(http.StatusOK, `{"name": "openvswitch", "system_overrides": {"conf": {}}}`, nil)

			store := NewHelmOverrideStore(gcClient.ServiceClient(), "", "")
			_, found, err := store.GetOverride(common.DefaultOverrideChart, common.DefaultOverridePath)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeFalse())
		})

		It("should return other API failures", func() {
			handleChart(http.StatusInternalServerError, `{"error_message": "boom"}`, nil)

			store := NewHelmOverrideStore(gcClient.ServiceClient(), "", "")
			_, _, err := store.GetOverride(common.DefaultOverrideChart, common.DefaultOverridePath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to get overrides of chart openvswitch"))
		})

		It("should let a persisted choice settle conflicting hosts", func() {
			handleChart(http.StatusOK, chartBody, nil)
			handleInventory(map[string][]string{
				controllerID: {common.DefaultComputeLabel, common.DefaultOpenvswitchLabel},
				computeID:    {common.DefaultComputeLabel, common.DefaultDPDKLabel},
			})

			client := gcClient.ServiceClient()
			overrides := NewHelmOverrideStore(client, common.DefaultOverrideNamespace, common.DefaultOverrideApplication)
			got, err := vswitch.ResolveCurrent(NewInventoryStore(client), overrides, vswitch.DefaultConfig())
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal([]vswitch.LabelToken{common.DefaultDPDKLabel, common.DefaultOpenvswitchLabel}))
		})
	})
})
