/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package vswitch

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// SignatureKind classifies the vswitch labels found on a single host.
type SignatureKind int

const (
	// SignatureValid means the host labels match an allowed combination.
	SignatureValid SignatureKind = iota
	// SignatureEmpty means the host carries none of the known labels.
	SignatureEmpty
	// SignatureDivergent means the host carries known labels which do not
	// form an allowed combination.
	SignatureDivergent
)

func (in SignatureKind) String() string {
	switch in {
	case SignatureValid:
		return "valid"
	case SignatureEmpty:
		return "empty"
	default:
		return "divergent"
	}
}

// Signature is the classification of a single host.
type Signature struct {
	kind        SignatureKind
	combination Combination
	tokens      sets.Set[LabelToken]
}

// Kind returns the classification of the host.
func (in Signature) Kind() SignatureKind {
	return in.kind
}

// Combination returns the matched combination of a valid signature.
func (in Signature) Combination() (Combination, bool) {
	return in.combination, in.kind == SignatureValid
}

// Tokens returns the sorted tokens that represent the signature in conflict
// reports.  An empty signature is represented by the NoneMarker.
func (in Signature) Tokens() []LabelToken {
	return sets.List(in.reported())
}

func (in Signature) reported() sets.Set[LabelToken] {
	switch in.kind {
	case SignatureValid:
		return in.combination.tokens
	case SignatureEmpty:
		return sets.New(NoneMarker)
	default:
		return in.tokens
	}
}

func (in Signature) String() string {
	return JoinTokens(in.reported())
}

// ClassifyHost reduces a host's labels to the tokens known by the catalog and
// classifies the result.  It depends only on its arguments.
func ClassifyHost(hostLabels sets.Set[LabelToken], catalog *Catalog) Signature {
	relevant := catalog.Relevant(hostLabels)

	if c, ok := catalog.Match(relevant); ok {
		return Signature{kind: SignatureValid, combination: c}
	}

	if relevant.Len() == 0 {
		return Signature{kind: SignatureEmpty}
	}

	return Signature{kind: SignatureDivergent, tokens: relevant}
}
