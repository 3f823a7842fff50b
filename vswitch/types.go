/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/util/sets"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

var log = logf.Log.WithName("vswitch")

// LabelToken is the canonical "key=value" form of a host label.  The value
// portion is always lower case.
type LabelToken string

// NoneMarker represents a host which carries none of the known vswitch
// labels.  It is never a member of an allowed combination.
const NoneMarker LabelToken = "none"

// NewLabelToken returns the canonical token for a label key and value.
func NewLabelToken(key, value string) LabelToken {
	return LabelToken(fmt.Sprintf("%s=%s", strings.TrimSpace(key), strings.ToLower(strings.TrimSpace(value))))
}

// ParseLabelToken converts a "key=value" string into its canonical token.
func ParseLabelToken(value string) (LabelToken, error) {
	key, val, found := strings.Cut(value, "=")
	if !found || strings.TrimSpace(key) == "" || strings.TrimSpace(val) == "" {
		msg := fmt.Sprintf("label %q is not of the form key=value", value)
		return "", common.NewValidationError(msg)
	}

	return NewLabelToken(key, val), nil
}

// ParseLabelTokens converts a list of "key=value" strings into a token set.
func ParseLabelTokens(values []string) (sets.Set[LabelToken], error) {
	result := sets.New[LabelToken]()
	for _, value := range values {
		token, err := ParseLabelToken(value)
		if err != nil {
			return nil, err
		}
		result.Insert(token)
	}

	return result, nil
}

// JoinTokens returns the sorted, comma separated form of a token set.
func JoinTokens(tokens sets.Set[LabelToken]) string {
	return strings.Join(TokenStrings(sets.List(tokens)), ",")
}

// TokenStrings converts a list of tokens to plain strings.
func TokenStrings(tokens []LabelToken) []string {
	return lo.Map(tokens, func(t LabelToken, _ int) string {
		return string(t)
	})
}

// ProvisionState is the inventory provisioning state of a host.
type ProvisionState string

const (
	Unprovisioned ProvisionState = "unprovisioned"
	Provisioning  ProvisionState = "provisioning"
	Provisioned   ProvisionState = "provisioned"
)

// HostAction is the lifecycle action pending on a host.
type HostAction string

const (
	ActionNone        HostAction = "none"
	ActionUnlock      HostAction = "unlock"
	ActionForceUnlock HostAction = "force-unlock"
	ActionLock        HostAction = "lock"
	ActionForceLock   HostAction = "force-lock"
)

// Defines the host sub-functions that are relevant to the resolver.
const (
	SubFunctionController = "controller"
	SubFunctionWorker     = "worker"
	SubFunctionStorage    = "storage"
)

// Host is the resolver's read-only view of an inventory host.
type Host struct {
	ID           string
	Hostname     string
	Provisioning ProvisionState
	Action       HostAction
	SubFunctions []string
}

// HostLabel is a single label assigned to a host.
type HostLabel struct {
	HostID string
	Key    string
	Value  string
}

// Token returns the canonical form of the label.
func (in HostLabel) Token() LabelToken {
	return NewLabelToken(in.Key, in.Value)
}

// HostStore is the source of host and label records.  Each call returns a
// snapshot that is valid at the time of the call.
type HostStore interface {
	ListHosts() ([]Host, error)
	ListLabels() ([]HostLabel, error)
}

// OverrideStore returns a previously recorded list of labels stored at a path
// within the overrides of a Helm chart.  The boolean result is false when no
// override is recorded.
type OverrideStore interface {
	GetOverride(chart, path string) ([]string, bool, error)
}

// hostLabelSets groups labels by host ID and converts them to token sets.
func hostLabelSets(labels []HostLabel) map[string]sets.Set[LabelToken] {
	grouped := lo.GroupBy(labels, func(l HostLabel) string {
		return l.HostID
	})

	return lo.MapValues(grouped, func(items []HostLabel, _ string) sets.Set[LabelToken] {
		return sets.New(lo.Map(items, func(l HostLabel, _ int) LabelToken {
			return l.Token()
		})...)
	})
}
