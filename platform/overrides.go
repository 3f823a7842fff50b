/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gophercloud/gophercloud"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

// HelmChart defines the overrides of a single Helm chart as returned by the
// system API.
type HelmChart struct {
	// Name is the name of the chart.
	Name string `json:"name"`

	// Namespace is the namespace the chart is deployed into.
	Namespace string `json:"namespace"`

	// SystemOverrides are the overrides generated by the system.
	SystemOverrides map[string]interface{} `json:"system_overrides,omitempty"`

	// UserOverrides are the overrides supplied by the operator as a YAML
	// document.
	UserOverrides string `json:"user_overrides,omitempty"`

	// CombinedOverrides are the user overrides applied on top of the system
	// overrides.
	CombinedOverrides map[string]interface{} `json:"combined_overrides,omitempty"`
}

// helmChartQuery defines the query parameters of a chart lookup.
type helmChartQuery struct {
	Namespace   string `q:"namespace"`
	Application string `q:"app_name"`
}

// GetHelmChart retrieves the overrides of a chart.  An ErrMissingSystemResource
// is returned when the chart does not exist.
func GetHelmChart(client *gophercloud.ServiceClient, chart, namespace, application string) (*HelmChart, error) {
	query, err := gophercloud.BuildQueryString(helmChartQuery{
		Namespace:   namespace,
		Application: application,
	})
	if err != nil {
		return nil, err
	}

	var r gophercloud.Result
	url := client.ServiceURL("helm_charts", chart) + query.String()
	_, r.Err = client.Get(url, &r.Body, &gophercloud.RequestOpts{
		OkCodes: []int{200},
	})
	if r.Err != nil {
		if _, ok := r.Err.(gophercloud.ErrDefault404); ok {
			msg := fmt.Sprintf("helm chart %s is not available in namespace %q", chart, namespace)
			return nil, common.NewMissingSystemResource(msg)
		}
		return nil, r.Err
	}

	var result HelmChart
	err = r.ExtractInto(&result)
	return &result, err
}

// MergeOverrides applies a YAML document of user overrides on top of the
// system overrides.
func MergeOverrides(system map[string]interface{}, user string) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	if err := mergo.Merge(&result, system); err != nil {
		return nil, errors.Wrap(err, "failed to copy system overrides")
	}

	if strings.TrimSpace(user) == "" {
		return result, nil
	}

	userValues := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(user), &userValues); err != nil {
		return nil, errors.Wrap(err, "failed to parse user overrides")
	}

	if err := mergo.Merge(&result, userValues, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "failed to merge user overrides")
	}

	return result, nil
}

// Effective returns the overrides that are applied to the chart.
func (in *HelmChart) Effective() (map[string]interface{}, error) {
	if len(in.CombinedOverrides) > 0 {
		return in.CombinedOverrides, nil
	}

	return MergeOverrides(in.SystemOverrides, in.UserOverrides)
}

// decodeLabelList converts an override value into a list of labels.  Lists and
// comma separated strings are accepted.
func decodeLabelList(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return common.SplitList(v), true
	case []string:
		return v, true
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, s)
		}
		return result, true
	}

	return nil, false
}

// lookupLabelList finds a list of labels at a dotted path within a set of
// overrides.
func lookupLabelList(values map[string]interface{}, path string) ([]string, bool) {
	value, ok := common.LookupPath(values, path)
	if !ok {
		return nil, false
	}

	result, ok := decodeLabelList(value)
	if !ok {
		log.Info("override value is not a list of labels", "path", path, "value", fmt.Sprintf("%v", value))
	}

	return result, ok
}

// HelmOverrideStore reads persisted choices from the Helm overrides stored by
// the system API.
type HelmOverrideStore struct {
	client      *gophercloud.ServiceClient
	namespace   string
	application string
}

// NewHelmOverrideStore returns an override store for the charts of an
// application deployed in a namespace.
func NewHelmOverrideStore(client *gophercloud.ServiceClient, namespace, application string) *HelmOverrideStore {
	return &HelmOverrideStore{
		client:      client,
		namespace:   namespace,
		application: application,
	}
}

// GetOverride implements the vswitch.OverrideStore interface.  A chart which
// does not exist is reported as not found rather than as an error.
func (in *HelmOverrideStore) GetOverride(chart, path string) ([]string, bool, error) {
	result, err := GetHelmChart(in.client, chart, in.namespace, in.application)
	if err != nil {
		if _, ok := err.(common.ErrMissingSystemResource); ok {
			log.V(2).Info("vswitch override chart not found", "chart", chart)
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "failed to get overrides of chart %s", chart)
	}

	values, err := result.Effective()
	if err != nil {
		return nil, false, err
	}

	labels, found := lookupLabelList(values, path)
	return labels, found, nil
}
