/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package platform

import (
	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/starlingx/inventory/v1/hosts"
	"github.com/gophercloud/gophercloud/starlingx/inventory/v1/labels"
	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

var log = logf.Log.WithName("platform")

// HostInfo defines the host attributes that are collected thru the system
// API.  The inventory library does not decode the provisioning state or the
// pending action therefore they are extracted alongside the standard
// attributes.
type HostInfo struct {
	hosts.Host

	// Provisioning is the inventory provisioning state of the host.
	Provisioning string `json:"invprovision"`

	// Action is the lifecycle action pending on the host.
	Action *string `json:"ihost_action,omitempty"`

	Labels []labels.Label `json:"-"`
}

// ToHost converts the system API representation to the resolver's view of a
// host.
func (in *HostInfo) ToHost() vswitch.Host {
	action := vswitch.ActionNone
	if in.Action != nil && *in.Action != "" {
		action = vswitch.HostAction(*in.Action)
	}

	return vswitch.Host{
		ID:           in.ID,
		Hostname:     in.Hostname,
		Provisioning: vswitch.ProvisionState(in.Provisioning),
		Action:       action,
		SubFunctions: common.DedupeSlice(common.SplitList(in.SubFunctions)),
	}
}

// ToLabels converts the system API labels of the host.
func (in *HostInfo) ToLabels() []vswitch.HostLabel {
	result := make([]vswitch.HostLabel, 0, len(in.Labels))
	for _, l := range in.Labels {
		hostID := l.HostUUID
		if hostID == "" {
			hostID = in.ID
		}
		result = append(result, vswitch.HostLabel{HostID: hostID, Key: l.Key, Value: l.Value})
	}

	return result
}

// ListHostInfo returns every host known to the system API.
func ListHostInfo(client *gophercloud.ServiceClient) ([]HostInfo, error) {
	pages, err := hosts.List(client, nil).AllPages()
	if err != nil {
		return nil, err
	}

	var s struct {
		Hosts []HostInfo `json:"ihosts"`
	}

	err = pages.(hosts.HostPage).ExtractInto(&s)
	if err != nil {
		return nil, err
	}

	return s.Hosts, nil
}

// PopulateHostInfo collects the labels of the host.
func (in *HostInfo) PopulateHostInfo(client *gophercloud.ServiceClient) error {
	var err error

	in.Labels, err = labels.ListLabels(client, in.ID)
	if err != nil {
		err = errors.Wrapf(err, "failed to get labels for host %s", in.Hostname)
		return err
	}

	return nil
}

// InventoryStore reads hosts and labels from the system API.
type InventoryStore struct {
	client *gophercloud.ServiceClient
}

// NewInventoryStore returns a store which queries the given inventory client.
func NewInventoryStore(client *gophercloud.ServiceClient) *InventoryStore {
	return &InventoryStore{client: client}
}

// ListHosts implements the vswitch.HostStore interface.
func (in *InventoryStore) ListHosts() ([]vswitch.Host, error) {
	objs, err := ListHostInfo(in.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get host list")
	}

	result := make([]vswitch.Host, 0, len(objs))
	for i := range objs {
		result = append(result, objs[i].ToHost())
	}

	return result, nil
}

// ListLabels implements the vswitch.HostStore interface.  The system API
// only lists labels per host therefore each host is queried in turn.
func (in *InventoryStore) ListLabels() ([]vswitch.HostLabel, error) {
	objs, err := ListHostInfo(in.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get host list")
	}

	result := make([]vswitch.HostLabel, 0)
	for i := range objs {
		host := &objs[i]
		if err := host.PopulateHostInfo(in.client); err != nil {
			return nil, err
		}

		log.V(2).Info("collected host labels", "host", host.Hostname, "count", len(host.Labels))
		result = append(result, host.ToLabels()...)
	}

	return result, nil
}
