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

// inRule is satisfied iff the (scalar) candidate equals one element of Of.
type inRule struct{ Of []Value }

// In builds a rule satisfied iff the candidate is one of xs.
func In(xs ...any) Rule { return inRule{Of: ofAll(xs)} }

func (r inRule) Satisfied(v Value, _ *Inquiry) bool { return containsValue(r.Of, v) }
func (r inRule) ruleType() string                   { return "list.In" }
func (r inRule) ruleContents() map[string]any       { return map[string]any{"of": r.Of} }

// notInRule is satisfied iff the candidate equals none of Of.
type notInRule struct{ Of []Value }

// NotIn builds a rule satisfied iff the candidate is none of xs.
func NotIn(xs ...any) Rule { return notInRule{Of: ofAll(xs)} }

func (r notInRule) Satisfied(v Value, _ *Inquiry) bool { return !containsValue(r.Of, v) }
func (r notInRule) ruleType() string                   { return "list.NotIn" }
func (r notInRule) ruleContents() map[string]any       { return map[string]any{"of": r.Of} }

// allInRule is satisfied iff every element of the (list) candidate is in Of.
type allInRule struct{ Of []Value }

// AllIn builds a rule satisfied iff every element of the candidate list is
// one of xs. A non-list candidate is never satisfied.
func AllIn(xs ...any) Rule { return allInRule{Of: ofAll(xs)} }

func (r allInRule) Satisfied(v Value, _ *Inquiry) bool {
	list, ok := v.AsList()
	if !ok {
		return false
	}
	for _, e := range list {
		if !containsValue(r.Of, e) {
			return false
		}
	}
	return true
}
func (r allInRule) ruleType() string             { return "list.AllIn" }
func (r allInRule) ruleContents() map[string]any { return map[string]any{"of": r.Of} }

// allNotInRule is satisfied iff no element of the candidate list is in Of.
type allNotInRule struct{ Of []Value }

// AllNotIn builds a rule satisfied iff every element of the candidate list
// is absent from xs.
func AllNotIn(xs ...any) Rule { return allNotInRule{Of: ofAll(xs)} }

func (r allNotInRule) Satisfied(v Value, _ *Inquiry) bool {
	list, ok := v.AsList()
	if !ok {
		return false
	}
	for _, e := range list {
		if containsValue(r.Of, e) {
			return false
		}
	}
	return true
}
func (r allNotInRule) ruleType() string             { return "list.AllNotIn" }
func (r allNotInRule) ruleContents() map[string]any { return map[string]any{"of": r.Of} }

// anyInRule is satisfied iff at least one element of the candidate list is
// in Of.
type anyInRule struct{ Of []Value }

// AnyIn builds a rule satisfied iff at least one element of the candidate
// list is one of xs.
func AnyIn(xs ...any) Rule { return anyInRule{Of: ofAll(xs)} }

func (r anyInRule) Satisfied(v Value, _ *Inquiry) bool {
	list, ok := v.AsList()
	if !ok {
		return false
	}
	for _, e := range list {
		if containsValue(r.Of, e) {
			return true
		}
	}
	return false
}
func (r anyInRule) ruleType() string             { return "list.AnyIn" }
func (r anyInRule) ruleContents() map[string]any { return map[string]any{"of": r.Of} }

// anyNotInRule is satisfied iff at least one element of the candidate list
// is absent from Of.
type anyNotInRule struct{ Of []Value }

// AnyNotIn builds a rule satisfied iff at least one element of the
// candidate list is absent from xs.
func AnyNotIn(xs ...any) Rule { return anyNotInRule{Of: ofAll(xs)} }

func (r anyNotInRule) Satisfied(v Value, _ *Inquiry) bool {
	list, ok := v.AsList()
	if !ok {
		return false
	}
	for _, e := range list {
		if !containsValue(r.Of, e) {
			return true
		}
	}
	return false
}
func (r anyNotInRule) ruleType() string             { return "list.AnyNotIn" }
func (r anyNotInRule) ruleContents() map[string]any { return map[string]any{"of": r.Of} }

func ofAll(xs []any) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Of(x)
	}
	return out
}

func containsValue(haystack []Value, needle Value) bool {
	for _, h := range haystack {
		if h.Equal(needle) {
			return true
		}
	}
	return false
}
