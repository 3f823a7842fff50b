/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"strings"

	"github.com/samber/lo"
)

// SplitList is a utility function which splits a comma separated list of
// values as returned by the system API (e.g., "controller,worker").  Blank
// entries are dropped and surrounding whitespace is removed.
func SplitList(value string) []string {
	parts := lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})

	return lo.Compact(parts)
}

// ContainsString is a utility function that determines whether a string is
// included in the list of elements of a slice.
func ContainsString(slice []string, s string) bool {
	return lo.Contains(slice, s)
}

// DedupeSlice is a utility function that removes a duplicated element from
// a slice while preserving the order of first appearance.
func DedupeSlice[T comparable](sliceList []T) []T {
	return lo.Uniq(sliceList)
}

// LookupPath walks a nested map of values (e.g., decoded YAML) following a
// dot separated path and returns the leaf value.
func LookupPath(values map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = values

	for _, key := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}

		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
