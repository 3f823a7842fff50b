/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"strings"

	"github.com/samber/lo"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

// Operator facing messages reported by ValidateForApply.
const (
	MissingConfigurationMsg     = "There are openstack-enabled compute nodes with no vswitch configuration"
	ConflictingConfigurationMsg = "There are conflicting vswitch configurations: "
	MissingAndConflictingMsg    = MissingConfigurationMsg + " and there are conflicting vswitch configurations: "
)

// semanticFailure builds the operator facing error for a set of sorted
// conflict tokens.
func semanticFailure(conflicts []LabelToken) error {
	others := lo.Without(conflicts, NoneMarker)
	joined := strings.Join(TokenStrings(others), ",")

	var msg string
	switch {
	case len(others) == 0:
		msg = MissingConfigurationMsg
	case len(others) < len(conflicts):
		msg = MissingAndConflictingMsg + joined
	default:
		msg = ConflictingConfigurationMsg + joined
	}

	return common.NewSemanticCheckFailure(msg)
}

// ValidateResolution returns a SemanticCheckFailure when a report is unresolved.
func ValidateResolution(report Resolution) error {
	if report.Result.Outcome() != Unresolved {
		return nil
	}

	validationFailuresTotal.Inc()
	return semanticFailure(report.Result.Conflicts())
}

// ValidateForApply checks that every eligible host agrees on an allowed vswitch
// combination.  Persisted overrides are ignored since the actual state of the
// hosts is being verified.
func ValidateForApply(hosts []Host, labels []HostLabel, config Config) error {
	return ValidateResolution(Evaluate(hosts, labels, config))
}

// Validate reads a snapshot from the store and validates it.  Read failures
// are returned as-is and are distinct from a SemanticCheckFailure.
func Validate(store HostStore, config Config) (*Resolution, error) {
	hosts, labels, err := readSnapshot(store)
	if err != nil {
		return nil, err
	}

	report := Evaluate(hosts, labels, config)
	return &report, ValidateResolution(report)
}
