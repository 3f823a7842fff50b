/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Outcome is the shape of a fleet-wide consensus result.
type Outcome int

const (
	// NoEligibleHosts means there was nothing to agree upon.
	NoEligibleHosts Outcome = iota
	// Resolved means every eligible host carries the same allowed
	// combination.
	Resolved
	// Unresolved means at least one host diverges from the others.
	Unresolved
)

func (in Outcome) String() string {
	switch in {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	default:
		return "no_eligible_hosts"
	}
}

// ConsensusResult is the fleet-wide verdict.  A resolved result never has
// conflicts and an unresolved result always has at least one.
type ConsensusResult struct {
	outcome     Outcome
	combination Combination
	conflicts   sets.Set[LabelToken]
}

// Outcome returns the shape of the result.
func (in ConsensusResult) Outcome() Outcome {
	return in.outcome
}

// Combination returns the winning combination of a resolved result.
func (in ConsensusResult) Combination() (Combination, bool) {
	return in.combination, in.outcome == Resolved
}

// Conflicts returns the sorted conflict tokens of an unresolved result.
func (in ConsensusResult) Conflicts() []LabelToken {
	return sets.List(in.conflicts)
}

// Labels returns the winning tokens, or an empty list when the result is not
// resolved.
func (in ConsensusResult) Labels() []LabelToken {
	if in.outcome != Resolved {
		return []LabelToken{}
	}

	return in.combination.Tokens()
}

// Aggregate merges per-host signatures into a fleet-wide verdict.  Once any
// divergence is seen every distinct configuration observed is reported,
// including otherwise valid ones, since none of them can be declared
// authoritative.
func Aggregate(signatures []Signature) ConsensusResult {
	if len(signatures) == 0 {
		return ConsensusResult{outcome: NoEligibleHosts}
	}

	valid := make(map[string]Combination)
	invalid := make(map[string]Signature)
	for _, s := range signatures {
		if c, ok := s.Combination(); ok {
			valid[c.String()] = c
		} else {
			invalid[s.String()] = s
		}
	}

	if len(invalid) == 0 && len(valid) == 1 {
		for _, c := range valid {
			return ConsensusResult{outcome: Resolved, combination: c}
		}
	}

	conflicts := sets.New[LabelToken]()
	for _, c := range valid {
		conflicts = conflicts.Union(c.tokens)
	}
	for _, s := range invalid {
		conflicts = conflicts.Union(s.reported())
	}

	return ConsensusResult{outcome: Unresolved, conflicts: conflicts}
}

// HostSignature associates a host with its classification.
type HostSignature struct {
	Hostname  string
	Signature Signature
}

// Resolution is a consensus result along with the classification of every
// eligible host, ordered by hostname.
type Resolution struct {
	Result ConsensusResult
	Hosts  []HostSignature
	Source ResolutionSource
}

// ResolutionSource identifies where a reported combination was taken from.
type ResolutionSource string

const (
	SourceLabels   ResolutionSource = "labels"
	SourceOverride ResolutionSource = "override"
)

// Evaluate filters, classifies and aggregates a snapshot of hosts and labels.
func Evaluate(hosts []Host, labels []HostLabel, config Config) Resolution {
	byHost := hostLabelSets(labels)

	report := Resolution{Hosts: make([]HostSignature, 0), Source: SourceLabels}
	signatures := make([]Signature, 0, len(hosts))
	for _, h := range hosts {
		hostLabels := byHost[h.ID]
		if !IsEligible(h, hostLabels, config.ComputeLabel) {
			log.V(2).Info("host is not eligible for vswitch consensus",
				"host", h.Hostname, "provisioning", h.Provisioning, "action", h.Action)
			continue
		}

		s := ClassifyHost(hostLabels, config.Catalog)
		log.V(2).Info("host classified", "host", h.Hostname,
			"kind", s.Kind().String(), "labels", s.String())

		signatures = append(signatures, s)
		report.Hosts = append(report.Hosts, HostSignature{Hostname: h.Hostname, Signature: s})
	}

	sort.SliceStable(report.Hosts, func(i, j int) bool {
		return report.Hosts[i].Hostname < report.Hosts[j].Hostname
	})

	report.Result = Aggregate(signatures)

	return report
}
