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

// Inquiry-related rules. spec.md §3/§9 marks these legacy and optional for
// new implementations, but requires that any implementation still
// deserialize them (so a policy set authored elsewhere keeps loading).
// This implementation gives them real semantics rather than a false stub,
// since the candidate already carries everything needed to compare
// against the live Inquiry passed into Satisfied.

// subjectEqualRule is satisfied iff the candidate equals the current
// Inquiry's Subject field.
type subjectEqualRule struct{}

// SubjectEqual builds a legacy rule satisfied iff the candidate equals
// inq.Subject.
func SubjectEqual() Rule { return subjectEqualRule{} }

func (subjectEqualRule) Satisfied(v Value, inq *Inquiry) bool {
	if inq == nil {
		return false
	}
	return v.Equal(inq.Subject)
}
func (subjectEqualRule) ruleType() string             { return "inquiry.SubjectEqual" }
func (subjectEqualRule) ruleContents() map[string]any { return map[string]any{} }

// actionEqualRule is satisfied iff the candidate equals the current
// Inquiry's Action field.
type actionEqualRule struct{}

// ActionEqual builds a legacy rule satisfied iff the candidate equals
// inq.Action.
func ActionEqual() Rule { return actionEqualRule{} }

func (actionEqualRule) Satisfied(v Value, inq *Inquiry) bool {
	if inq == nil {
		return false
	}
	return v.Equal(inq.Action)
}
func (actionEqualRule) ruleType() string             { return "inquiry.ActionEqual" }
func (actionEqualRule) ruleContents() map[string]any { return map[string]any{} }

// resourceInRule is satisfied iff the current Inquiry's Resource field is
// one of the candidate's list elements, when the candidate is a list; or
// iff the candidate equals inq.Resource when the candidate is a scalar.
type resourceInRule struct{}

// ResourceIn builds a legacy rule satisfied iff inq.Resource is found
// within the candidate.
func ResourceIn() Rule { return resourceInRule{} }

func (resourceInRule) Satisfied(v Value, inq *Inquiry) bool {
	if inq == nil {
		return false
	}
	if list, ok := v.AsList(); ok {
		return containsValue(list, inq.Resource)
	}
	return v.Equal(inq.Resource)
}
func (resourceInRule) ruleType() string             { return "inquiry.ResourceIn" }
func (resourceInRule) ruleContents() map[string]any { return map[string]any{} }
