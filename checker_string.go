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

import "strings"

// StringExactChecker matches literal-string policy elements against
// inquiry values by case-sensitive equality. It never matches a
// RULE_BASED policy (spec.md §4.2.2).
type StringExactChecker struct{}

// NewStringExactChecker builds a StringExactChecker.
func NewStringExactChecker() *StringExactChecker { return &StringExactChecker{} }

func (c *StringExactChecker) Hint() Hint { return HintExact }

func (c *StringExactChecker) Fits(p *Policy, inq *Inquiry) bool {
	if p.Type() != StringBased {
		return false
	}
	return fitsStringPolicy(p, inq, exactMatch)
}

// StringFuzzyChecker matches literal-string policy elements against
// inquiry values by case-sensitive substring containment (needle in
// haystack, where the policy element is the needle). It never matches a
// RULE_BASED policy.
type StringFuzzyChecker struct{}

// NewStringFuzzyChecker builds a StringFuzzyChecker.
func NewStringFuzzyChecker() *StringFuzzyChecker { return &StringFuzzyChecker{} }

func (c *StringFuzzyChecker) Hint() Hint { return HintFuzzy }

func (c *StringFuzzyChecker) Fits(p *Policy, inq *Inquiry) bool {
	if p.Type() != StringBased {
		return false
	}
	return fitsStringPolicy(p, inq, fuzzyMatch)
}

func exactMatch(needle string, inqValue Value) bool {
	s, ok := inqValue.AsString()
	return ok && s == needle
}

func fuzzyMatch(needle string, inqValue Value) bool {
	s, ok := inqValue.AsString()
	return ok && strings.Contains(s, needle)
}

// fitsStringPolicy runs the four-field match (subject/action/resource all
// through elementMatch, context always through the Rule-based
// matchContext) shared by StringExactChecker and StringFuzzyChecker.
func fitsStringPolicy(p *Policy, inq *Inquiry, elementMatch func(needle string, inqValue Value) bool) bool {
	one := func(el MatchElement, v Value, _ *Inquiry) bool {
		return elementMatch(el.literal, v)
	}
	return matchField(p.Subjects, inq.Subject, inq, one) &&
		matchField(p.Actions, inq.Action, inq, one) &&
		matchField(p.Resources, inq.Resource, inq, one) &&
		matchContext(p.Context, inq.Context, inq)
}
