/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

// SnapshotHost defines a host as recorded in a snapshot file.
type SnapshotHost struct {
	// ID is the unique identifier of the host.  The hostname is used when
	// it is not provided.
	ID string `json:"id,omitempty"`

	Hostname string `json:"hostname"`

	Provisioning string `json:"provisioning,omitempty"`

	Action string `json:"action,omitempty"`

	SubFunctions []string `json:"subfunctions,omitempty"`

	Labels map[string]string `json:"labels,omitempty"`
}

// Snapshot is a point-in-time record of hosts, their labels, and the Helm
// overrides of a system.  It allows a planned or exported deployment to be
// analyzed without access to the system API.
type Snapshot struct {
	Hosts []SnapshotHost `json:"hosts"`

	// Overrides holds the effective Helm overrides of each chart, keyed by
	// chart name.
	Overrides map[string]map[string]interface{} `json:"overrides,omitempty"`
}

// LoadSnapshot reads a YAML or JSON snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	filename, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand snapshot path %q", path)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot file %q", filename)
	}

	return ParseSnapshot(data)
}

// ParseSnapshot decodes a YAML or JSON snapshot.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var result Snapshot
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse snapshot")
	}

	for i, h := range result.Hosts {
		if h.Hostname == "" {
			msg := "snapshot hosts must have a hostname"
			return nil, common.NewUserDataError(msg)
		}

		if h.ID == "" {
			result.Hosts[i].ID = h.Hostname
		}
	}

	duplicates := lo.FindDuplicatesBy(result.Hosts, func(h SnapshotHost) string {
		return h.ID
	})
	if len(duplicates) > 0 {
		return nil, common.NewUserDataError("snapshot host " + duplicates[0].ID + " is defined more than once")
	}

	return &result, nil
}

// ListHosts implements the vswitch.HostStore interface.
func (in *Snapshot) ListHosts() ([]vswitch.Host, error) {
	result := make([]vswitch.Host, 0, len(in.Hosts))
	for _, h := range in.Hosts {
		action := vswitch.HostAction(h.Action)
		if action == "" {
			action = vswitch.ActionNone
		}

		result = append(result, vswitch.Host{
			ID:           h.ID,
			Hostname:     h.Hostname,
			Provisioning: vswitch.ProvisionState(h.Provisioning),
			Action:       action,
			SubFunctions: common.DedupeSlice(h.SubFunctions),
		})
	}

	return result, nil
}

// ListLabels implements the vswitch.HostStore interface.
func (in *Snapshot) ListLabels() ([]vswitch.HostLabel, error) {
	result := make([]vswitch.HostLabel, 0)
	for _, h := range in.Hosts {
		keys := lo.Keys(h.Labels)
		sort.Strings(keys)

		for _, k := range keys {
			result = append(result, vswitch.HostLabel{HostID: h.ID, Key: k, Value: h.Labels[k]})
		}
	}

	return result, nil
}

// GetOverride implements the vswitch.OverrideStore interface.
func (in *Snapshot) GetOverride(chart, path string) ([]string, bool, error) {
	values, ok := in.Overrides[chart]
	if !ok {
		return nil, false, nil
	}

	labels, found := lookupLabelList(values, path)
	return labels, found, nil
}
