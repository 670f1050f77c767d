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

// Effect is the outcome a Policy produces once matched.
type Effect string

const (
	// Allow grants the inquiry if no matching policy is Deny.
	Allow Effect = "allow"
	// Deny overrides every matching Allow policy (spec.md §4.3).
	Deny Effect = "deny"
)

// Valid reports whether e is one of the two allowed effect constants.
func (e Effect) Valid() bool { return e == Allow || e == Deny }

// PolicyType is the checker-compatibility tag derived from a Policy's
// match elements (spec.md §3).
type PolicyType int

const (
	// StringBased policies contain only literal-string match elements in
	// subjects/actions/resources; only the string checkers may match them.
	StringBased PolicyType = iota
	// RuleBased policies contain at least one Rule or object match
	// element; only RulesChecker may match them.
	RuleBased
)

func (t PolicyType) String() string {
	if t == StringBased {
		return "STRING_BASED"
	}
	return "RULE_BASED"
}

// elementKind tags the shape of a single MatchElement.
type elementKind int

const (
	elementLiteral elementKind = iota
	elementRule
	elementObject
)

// attrValue is one value of an Object match element's attribute map: either
// a literal string or a Rule, matching the canonical JSON shape
// attr -> (string|serialized Rule) from spec.md §6.
type attrValue struct {
	literal string
	rule    Rule
	isRule  bool
}

func literalAttr(s string) attrValue { return attrValue{literal: s} }
func ruleAttr(r Rule) attrValue      { return attrValue{rule: r, isRule: true} }

func (a attrValue) satisfied(v Value, inq *Inquiry) bool {
	if a.isRule {
		return a.rule.Satisfied(v, inq)
	}
	s, ok := v.AsString()
	return ok && s == a.literal
}

// MatchElement is one entry of a Policy's subjects/actions/resources
// sequence: a literal string, a Rule, or a mapping from attribute name to
// Rule-or-literal (spec.md §3).
type MatchElement struct {
	kind    elementKind
	literal string
	rule    Rule
	object  map[string]attrValue
}

// Literal builds a literal-string MatchElement s. How it is compared depends
// on the checker: exact equality, substring containment, or a pattern with
// delimited regex spans.
func Literal(s string) MatchElement {
	return MatchElement{kind: elementLiteral, literal: s}
}

// RuleElement builds a MatchElement that matches a scalar inquiry value
// against a Rule (used by RulesChecker).
func RuleElement(r Rule) MatchElement {
	return MatchElement{kind: elementRule, rule: r}
}

// ObjectElement builds a MatchElement that matches an inquiry attribute
// map: every key must be present in the inquiry's mapping and satisfy its
// paired Rule (or equal its paired literal string). vals maps attribute
// name to either a string or a Rule; any other value type is ignored.
func ObjectElement(vals map[string]any) MatchElement {
	obj := make(map[string]attrValue, len(vals))
	for k, v := range vals {
		switch t := v.(type) {
		case string:
			obj[k] = literalAttr(t)
		case Rule:
			obj[k] = ruleAttr(t)
		}
	}
	return MatchElement{kind: elementObject, object: obj}
}

func (m MatchElement) isLiteral() bool { return m.kind == elementLiteral }

// Policy is a named record pairing match conditions over subject, action,
// resource and context with an Effect (spec.md §3). Construct with
// NewPolicy; mutate only by replacing the whole record through Storage's
// Update (Policy itself has no in-place mutators, so a *Policy handed to a
// Guard mid-decision can't be changed out from under it).
type Policy struct {
	UID         string
	Description string
	Effect      Effect
	Subjects    []MatchElement
	Actions     []MatchElement
	Resources   []MatchElement
	Context     map[string]Rule
}

// NewPolicy builds a Policy. uid is an opaque key the caller chooses;
// Storage treats it as such and never interprets or generates it itself.
func NewPolicy(uid string, effect Effect) *Policy {
	return &Policy{UID: uid, Effect: effect, Context: map[string]Rule{}}
}

// Type derives STRING_BASED vs RULE_BASED from the policy's match
// elements: STRING_BASED iff every element across subjects/actions/
// resources is a literal string (spec.md §3). Context never affects this
// — it is always a Rule mapping, checker-independent (spec.md §4.2.1).
func (p *Policy) Type() PolicyType {
	for _, field := range [][]MatchElement{p.Subjects, p.Actions, p.Resources} {
		for _, el := range field {
			if !el.isLiteral() {
				return RuleBased
			}
		}
	}
	return StringBased
}

// Validate checks the invariants spec.md §3 requires: a known Effect, and
// no field mixing literal-string elements with Rule/Object elements
// (mixing shapes within one field is explicitly called out as
// ill-formed). Context attribute-name uniqueness is structural (it's a
// Go map), and so is every Object element's.
func (p *Policy) Validate() error {
	if !p.Effect.Valid() {
		return ErrValidation("policy %q has invalid effect %q", p.UID, p.Effect)
	}
	for name, field := range map[string][]MatchElement{
		"subjects":  p.Subjects,
		"actions":   p.Actions,
		"resources": p.Resources,
	} {
		sawLiteral, sawOther := false, false
		for _, el := range field {
			if el.isLiteral() {
				sawLiteral = true
			} else {
				sawOther = true
			}
		}
		if sawLiteral && sawOther {
			return ErrValidation("policy %q field %q mixes literal and rule-based match elements", p.UID, name)
		}
	}
	return nil
}
