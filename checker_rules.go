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

// RulesChecker matches Rule and Object match elements against inquiry
// values. It never matches a STRING_BASED policy (spec.md §4.2.2) — a
// policy built entirely from Literal elements has nothing for a Rule to
// evaluate.
type RulesChecker struct{}

// NewRulesChecker builds a RulesChecker.
func NewRulesChecker() *RulesChecker { return &RulesChecker{} }

func (c *RulesChecker) Hint() Hint { return HintRules }

func (c *RulesChecker) Fits(p *Policy, inq *Inquiry) bool {
	if p.Type() != RuleBased {
		return false
	}
	one := func(el MatchElement, v Value, inq *Inquiry) bool {
		switch el.kind {
		case elementRule:
			return el.rule.Satisfied(v, inq)
		case elementObject:
			return matchObjectElement(el.object, v, inq)
		default:
			// A literal element inside a RULE_BASED policy arises when
			// one field holds Rule/Object elements and another holds
			// literals (Policy.Validate only rejects mixing within one
			// field); it matches a string candidate by exact equality.
			s, ok := v.AsString()
			return ok && s == el.literal
		}
	}
	return matchField(p.Subjects, inq.Subject, inq, one) &&
		matchField(p.Actions, inq.Action, inq, one) &&
		matchField(p.Resources, inq.Resource, inq, one) &&
		matchContext(p.Context, inq.Context, inq)
}
