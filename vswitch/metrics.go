/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const outcomeOverride = "override"

var (
	consensusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vswitch_consensus_total",
			Help: "Number of vswitch resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	validationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vswitch_validation_failures_total",
			Help: "Number of validations which found conflicting vswitch configurations.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(consensusTotal, validationFailuresTotal)
}
