/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

// Combination is one legal set of vswitch labels.  It is immutable once
// created.
type Combination struct {
	tokens sets.Set[LabelToken]
}

// NewCombination returns the combination of the given tokens.
func NewCombination(tokens ...LabelToken) Combination {
	return Combination{tokens: sets.New(tokens...)}
}

// Tokens returns the sorted list of tokens in the combination.
func (in Combination) Tokens() []LabelToken {
	return sets.List(in.tokens)
}

// Matches returns whether the combination is exactly equal to a token set.
func (in Combination) Matches(tokens sets.Set[LabelToken]) bool {
	return in.tokens.Equal(tokens)
}

// IsEmpty returns whether the combination holds no tokens; the zero value is
// empty.
func (in Combination) IsEmpty() bool {
	return in.tokens.Len() == 0
}

func (in Combination) String() string {
	return JoinTokens(in.tokens)
}

// Catalog is the ordered list of allowed vswitch label combinations.
type Catalog struct {
	combinations []Combination
	known        sets.Set[LabelToken]
}

// NewCatalog returns a catalog of the given combinations.
func NewCatalog(combinations ...Combination) *Catalog {
	known := sets.New[LabelToken]()
	for _, c := range combinations {
		known = known.Union(c.tokens)
	}

	return &Catalog{
		combinations: combinations,
		known:        known,
	}
}

// ParseCatalog builds a catalog from lists of "key=value" labels as found in
// the resolver configuration.
func ParseCatalog(combinations [][]string) (*Catalog, error) {
	if len(combinations) == 0 {
		return nil, common.NewValidationError("at least one vswitch label combination is required")
	}

	result := make([]Combination, 0, len(combinations))
	for _, labels := range combinations {
		tokens, err := ParseLabelTokens(labels)
		if err != nil {
			return nil, err
		}

		combination := Combination{tokens: tokens}
		if combination.IsEmpty() {
			return nil, common.NewValidationError("vswitch label combinations must not be empty")
		}

		result = append(result, combination)
	}

	return NewCatalog(result...), nil
}

// DefaultCatalog returns the production catalog.
func DefaultCatalog() *Catalog {
	catalog, err := ParseCatalog(common.DefaultCombinations)
	if err != nil {
		panic(err)
	}

	return catalog
}

// AllowedCombinations returns the allowed combinations in catalog order.
func (in *Catalog) AllowedCombinations() []Combination {
	result := make([]Combination, len(in.combinations))
	copy(result, in.combinations)
	return result
}

// KnownLabelTokens returns the sorted union of all allowed combinations.
func (in *Catalog) KnownLabelTokens() []LabelToken {
	return sets.List(in.known)
}

// Relevant reduces a host's labels to the tokens known by the catalog.
func (in *Catalog) Relevant(labels sets.Set[LabelToken]) sets.Set[LabelToken] {
	return in.known.Intersection(labels)
}

// Match returns the allowed combination which is exactly equal to the token
// set.
func (in *Catalog) Match(tokens sets.Set[LabelToken]) (Combination, bool) {
	for _, c := range in.combinations {
		if c.Matches(tokens) {
			return c, true
		}
	}

	return Combination{}, false
}
