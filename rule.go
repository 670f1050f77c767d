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

// Package ccxguard implements an Attribute-Based Access Control policy
// decision engine: a Rule algebra evaluated against Inquiries, Policies
// pairing match conditions with an effect, a pluggable Checker that
// decides policy/inquiry compatibility, and a Guard that aggregates
// matching policies by deny-overrides.
//
// Storage backends and the migration framework live in the storage and
// migration subpackages; this package defines the Storage contract they
// implement, to avoid those subpackages' dependencies (mongo-driver and
// friends) leaking into the core decision logic.
package ccxguard

import "fmt"

// Rule is the atomic decision unit: a predicate over a single candidate
// value, optionally cross-referencing the rest of the current Inquiry.
// Implementations must never panic for a type mismatch between candidate
// and rule; they return false instead. Rules are pure — repeated calls
// with the same arguments return the same result (spec.md §8 property 6).
type Rule interface {
	Satisfied(candidate Value, inq *Inquiry) bool
}

// serializableRule is implemented by every built-in rule so the canonical
// JSON codec (serialize.go) and the type registry (registry.go) can round
// -trip it without a type switch over every concrete rule type.
type serializableRule interface {
	Rule
	ruleType() string
	ruleContents() map[string]any
}

// --- Logic rules ---

// notRule negates its child: Not(r).Satisfied(v,i) == !r.Satisfied(v,i).
type notRule struct{ Inner Rule }

// Not builds a rule that inverts another rule's verdict.
func Not(r Rule) Rule { return notRule{Inner: r} }

func (r notRule) Satisfied(v Value, inq *Inquiry) bool { return !r.Inner.Satisfied(v, inq) }
func (r notRule) ruleType() string                     { return "logic.Not" }
func (r notRule) ruleContents() map[string]any {
	return map[string]any{"rule": encodeRule(r.Inner)}
}

// andRule is a logical AND over its children. And() with zero children is
// the identity element of the monoid and is satisfied.
type andRule struct{ Rules []Rule }

// And builds a rule satisfied iff every child rule is satisfied. With no
// children it is always satisfied.
func And(rules ...Rule) Rule { return andRule{Rules: rules} }

func (r andRule) Satisfied(v Value, inq *Inquiry) bool {
	for _, child := range r.Rules {
		if !child.Satisfied(v, inq) {
			return false
		}
	}
	return true
}
func (r andRule) ruleType() string { return "logic.And" }
func (r andRule) ruleContents() map[string]any {
	return map[string]any{"rules": encodeRules(r.Rules)}
}

// orRule is a logical OR over its children. Or() with zero children is the
// identity element of its monoid and is never satisfied.
type orRule struct{ Rules []Rule }

// Or builds a rule satisfied iff at least one child rule is satisfied.
// With no children it is never satisfied.
func Or(rules ...Rule) Rule { return orRule{Rules: rules} }

func (r orRule) Satisfied(v Value, inq *Inquiry) bool {
	for _, child := range r.Rules {
		if child.Satisfied(v, inq) {
			return true
		}
	}
	return false
}
func (r orRule) ruleType() string { return "logic.Or" }
func (r orRule) ruleContents() map[string]any {
	return map[string]any{"rules": encodeRules(r.Rules)}
}

// truthyRule is satisfied iff the candidate value is truthy.
type truthyRule struct{}

// Truthy builds a rule satisfied iff the candidate is truthy (see
// Value.Truthy).
func Truthy() Rule { return truthyRule{} }

func (truthyRule) Satisfied(v Value, _ *Inquiry) bool { return v.Truthy() }
func (truthyRule) ruleType() string                   { return "logic.Truthy" }
func (truthyRule) ruleContents() map[string]any       { return map[string]any{} }

// falsyRule is satisfied iff the candidate value is falsy.
type falsyRule struct{}

// Falsy builds a rule satisfied iff the candidate is falsy.
func Falsy() Rule { return falsyRule{} }

func (falsyRule) Satisfied(v Value, _ *Inquiry) bool { return !v.Truthy() }
func (falsyRule) ruleType() string                   { return "logic.Falsy" }
func (falsyRule) ruleContents() map[string]any       { return map[string]any{} }

// anyRule is always satisfied, regardless of candidate.
type anyRule struct{}

// Any builds a rule that is always satisfied.
func Any() Rule { return anyRule{} }

func (anyRule) Satisfied(Value, *Inquiry) bool { return true }
func (anyRule) ruleType() string               { return "logic.Any" }
func (anyRule) ruleContents() map[string]any   { return map[string]any{} }

// neitherRule is never satisfied, regardless of candidate.
type neitherRule struct{}

// Neither builds a rule that is never satisfied.
func Neither() Rule { return neitherRule{} }

func (neitherRule) Satisfied(Value, *Inquiry) bool { return false }
func (neitherRule) ruleType() string               { return "logic.Neither" }
func (neitherRule) ruleContents() map[string]any   { return map[string]any{} }

func encodeRule(r Rule) map[string]any {
	sr, ok := r.(serializableRule)
	if !ok {
		panic(fmt.Sprintf("ccxguard: rule %T does not implement serializableRule", r))
	}
	return map[string]any{"type": sr.ruleType(), "contents": sr.ruleContents()}
}

func encodeRules(rules []Rule) []any {
	out := make([]any, len(rules))
	for i, r := range rules {
		out[i] = encodeRule(r)
	}
	return out
}
