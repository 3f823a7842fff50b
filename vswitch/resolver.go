/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	perrors "github.com/pkg/errors"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

// OverrideLocation identifies where the operator's persisted vswitch choice
// is stored.  An empty chart disables the override lookup.
type OverrideLocation struct {
	Chart string
	Path  string
}

// Config holds the parameters of a resolver invocation.
type Config struct {
	Catalog      *Catalog
	ComputeLabel LabelToken
	Override     OverrideLocation
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Catalog:      DefaultCatalog(),
		ComputeLabel: LabelToken(common.DefaultComputeLabel),
		Override: OverrideLocation{
			Chart: common.DefaultOverrideChart,
			Path:  common.DefaultOverridePath,
		},
	}
}

// NewConfig converts the loaded resolver configuration into its typed form.
func NewConfig(in common.ResolverConfig) (Config, error) {
	catalog, err := ParseCatalog(in.Combinations)
	if err != nil {
		return Config{}, err
	}

	computeLabel, err := ParseLabelToken(in.ComputeLabel)
	if err != nil {
		return Config{}, err
	}

	result := Config{
		Catalog:      catalog,
		ComputeLabel: computeLabel,
	}

	if in.Override.Enabled {
		result.Override = OverrideLocation{
			Chart: in.Override.Chart,
			Path:  in.Override.Path,
		}
	}

	return result, nil
}

// lookupOverride returns the persisted combination if one is recorded and it
// is allowed by the catalog.  Any problem reading or decoding the override is
// treated as if there were no override.
func lookupOverride(overrides OverrideStore, config Config) (Combination, bool) {
	if overrides == nil || config.Override.Chart == "" {
		return Combination{}, false
	}

	values, found, err := overrides.GetOverride(config.Override.Chart, config.Override.Path)
	if err != nil {
		log.Info("unable to read vswitch override; using host labels",
			"chart", config.Override.Chart, "path", config.Override.Path, "error", err.Error())
		return Combination{}, false
	} else if !found {
		return Combination{}, false
	}

	tokens, err := ParseLabelTokens(values)
	if err != nil {
		log.Info("ignoring malformed vswitch override", "values", values, "error", err.Error())
		return Combination{}, false
	}

	c, ok := config.Catalog.Match(tokens)
	if !ok {
		log.Info("ignoring vswitch override which is not an allowed combination", "values", values)
		return Combination{}, false
	}

	return c, true
}

// Resolve determines the active vswitch combination.  A valid persisted
// override always wins over the state inferred from host labels.
func Resolve(store HostStore, overrides OverrideStore, config Config) (*Resolution, error) {
	if c, ok := lookupOverride(overrides, config); ok {
		log.Info("vswitch combination taken from override", "labels", c.String())
		consensusTotal.WithLabelValues(outcomeOverride).Inc()
		return &Resolution{
			Result: ConsensusResult{outcome: Resolved, combination: c},
			Hosts:  []HostSignature{},
			Source: SourceOverride,
		}, nil
	}

	hosts, labels, err := readSnapshot(store)
	if err != nil {
		return nil, err
	}

	report := Evaluate(hosts, labels, config)
	consensusTotal.WithLabelValues(report.Result.Outcome().String()).Inc()

	switch report.Result.Outcome() {
	case Resolved:
		log.Info("vswitch combination resolved from host labels",
			"labels", report.Result.combination.String(), "hosts", len(report.Hosts))
	case Unresolved:
		log.Info("vswitch configuration is inconsistent",
			"conflicts", TokenStrings(report.Result.Conflicts()), "hosts", len(report.Hosts))
	default:
		log.Info("no eligible hosts for vswitch consensus")
	}

	return &report, nil
}

// ResolveCurrent returns the active vswitch labels, or an empty list when
// there is no eligible host or the fleet does not agree.
func ResolveCurrent(store HostStore, overrides OverrideStore, config Config) ([]LabelToken, error) {
	report, err := Resolve(store, overrides, config)
	if err != nil {
		return nil, err
	}

	return report.Result.Labels(), nil
}

func readSnapshot(store HostStore) ([]Host, []HostLabel, error) {
	hosts, err := store.ListHosts()
	if err != nil {
		return nil, nil, perrors.Wrap(err, "failed to list hosts")
	}

	labels, err := store.ListLabels()
	if err != nil {
		return nil, nil, perrors.Wrap(err, "failed to list host labels")
	}

	return hosts, labels, nil
}
