// Copyright 2025 ccxguard contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ccxguard

// Hint tells a Storage which query path to take for a given Checker,
// without the storage needing to type-switch over concrete checker types
// (spec.md §9's "prefer the explicit hint to avoid type-switch coupling").
type Hint int

const (
	HintExact Hint = iota
	HintFuzzy
	HintRegex
	HintRules
)

// Checker decides whether a Policy matches an Inquiry. Guard holds exactly
// one Checker for its lifetime (spec.md §2: "Checker choice is fixed per
// Guard"). Checkers are stateless after construction except for
// RegexChecker's internally-synchronized pattern cache.
type Checker interface {
	Fits(p *Policy, inq *Inquiry) bool
	Hint() Hint
}

// matchField implements the universal field-match semantics of spec.md
// §4.2.1: the field matches iff any element matches (OR-across-elements).
func matchField(elements []MatchElement, value Value, inq *Inquiry, matchOne func(MatchElement, Value, *Inquiry) bool) bool {
	for _, el := range elements {
		if matchOne(el, value, inq) {
			return true
		}
	}
	return false
}

// matchContext implements context matching, which is always Rule-based and
// checker-independent (spec.md §4.2.1): every key in ctx must be present
// in inquiryCtx and satisfy its Rule. A missing key is a non-match, never
// an error.
func matchContext(ctx map[string]Rule, inquiryCtx map[string]Value, inq *Inquiry) bool {
	for attr, rule := range ctx {
		v, ok := inquiryCtx[attr]
		if !ok {
			return false
		}
		if !rule.Satisfied(v, inq) {
			return false
		}
	}
	return true
}

// matchObjectElement implements the AND-across-attributes semantics an
// Object match element carries (spec.md §4.2.1): every attribute in the
// element must be present in the inquiry's mapping and match.
func matchObjectElement(object map[string]attrValue, value Value, inq *Inquiry) bool {
	m, ok := value.AsMap()
	if !ok {
		return false
	}
	for attr, av := range object {
		v, ok := m[attr]
		if !ok {
			return false
		}
		if !av.satisfied(v, inq) {
			return false
		}
	}
	return true
}
