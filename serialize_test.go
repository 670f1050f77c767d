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

package ccxguard_test

import (
	"encoding/json"
	"testing"

	ccxguard "github.com/ccxlabs/ccxguard"
)

func policiesEqual(t *testing.T, a, b *ccxguard.Policy) {
	t.Helper()
	if a.UID != b.UID || a.Description != b.Description || a.Effect != b.Effect {
		t.Fatalf("policy header mismatch: %+v != %+v", a, b)
	}
	if a.Type() != b.Type() {
		t.Fatalf("policy type mismatch: %v != %v", a.Type(), b.Type())
	}

	probe := ccxguard.NewInquiry("max", "read", "documents", map[string]any{"env": "prod"})
	checkers := []ccxguard.Checker{
		ccxguard.NewStringExactChecker(),
		ccxguard.NewRulesChecker(),
	}
	for _, c := range checkers {
		if c.Fits(a, probe) != c.Fits(b, probe) {
			t.Fatalf("round-tripped policy disagrees with original under %T for a fixed probe inquiry", c)
		}
	}
}

func TestPolicyJSONRoundTripStringBased(t *testing.T) {
	p := literalPolicy(ccxguard.Allow)
	p.Description = "string-based example"
	p.Context = map[string]ccxguard.Rule{"env": ccxguard.StrEqual("prod")}

	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	decoded, err := ccxguard.PolicyFromJSON(data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	policiesEqual(t, p, decoded)
}

func TestPolicyJSONRoundTripRuleBased(t *testing.T) {
	p := s1Policy()

	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	decoded, err := ccxguard.PolicyFromJSON(data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	inq := ccxguard.NewInquiry(
		map[string]any{"name": "larry", "stars": 80.0},
		"fork", "repos/google/tensorflow",
		map[string]any{"referer": "https://github.com"},
	)
	checker := ccxguard.NewRulesChecker()
	if checker.Fits(p, inq) != checker.Fits(decoded, inq) {
		t.Fatal("expected round-tripped rule-based policy to decide the same way as the original")
	}
}

func TestPolicyJSONRoundTripObjectElement(t *testing.T) {
	p := ccxguard.NewPolicy("obj", ccxguard.Allow)
	p.Subjects = []ccxguard.MatchElement{
		ccxguard.ObjectElement(map[string]any{
			"role": ccxguard.StrEqual("admin"),
			"team": "platform",
		}),
	}
	p.Actions = []ccxguard.MatchElement{ccxguard.RuleElement(ccxguard.Any())}
	p.Resources = []ccxguard.MatchElement{ccxguard.RuleElement(ccxguard.Any())}

	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	decoded, err := ccxguard.PolicyFromJSON(data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	checker := ccxguard.NewRulesChecker()
	match := ccxguard.NewInquiry(map[string]any{"role": "admin", "team": "platform"}, "x", "y", nil)
	noMatch := ccxguard.NewInquiry(map[string]any{"role": "admin", "team": "core"}, "x", "y", nil)

	if !checker.Fits(decoded, match) {
		t.Fatal("expected round-tripped object element to still match")
	}
	if checker.Fits(decoded, noMatch) {
		t.Fatal("expected round-tripped object element to still reject a mismatched literal attribute")
	}
}

// TestObjectElementMarshalsAsBareAttributeMap pins the literal wire shape
// spec.md §6 defines: an ObjectElement marshals to a bare attr->(string|
// serialized Rule) map, with no wrapper key around it.
func TestObjectElementMarshalsAsBareAttributeMap(t *testing.T) {
	p := ccxguard.NewPolicy("obj-shape", ccxguard.Allow)
	p.Subjects = []ccxguard.MatchElement{
		ccxguard.ObjectElement(map[string]any{
			"role": "admin",
			"team": "platform",
		}),
	}
	p.Actions = []ccxguard.MatchElement{ccxguard.Literal("read")}
	p.Resources = []ccxguard.MatchElement{ccxguard.Literal("doc")}

	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshaling raw: %v", err)
	}

	subjects, ok := raw["subjects"].([]any)
	if !ok || len(subjects) != 1 {
		t.Fatalf("expected exactly one subject element, got %#v", raw["subjects"])
	}
	elem, ok := subjects[0].(map[string]any)
	if !ok {
		t.Fatalf("expected the object element to marshal as a JSON object, got %T", subjects[0])
	}
	if _, wrapped := elem["object"]; wrapped {
		t.Fatal(`expected a bare attribute map, but found an undocumented "object" wrapper key`)
	}
	if got := elem["role"]; got != "admin" {
		t.Fatalf(`expected elem["role"] == "admin", got %#v`, got)
	}
	if got := elem["team"]; got != "platform" {
		t.Fatalf(`expected elem["team"] == "platform", got %#v`, got)
	}
}

// TestObjectElementDecodesFromBareAttributeMap ensures a spec-compliant
// producer that never wraps its attribute map in an "object" key (the
// literal shape spec.md §6 describes) still decodes correctly here.
func TestObjectElementDecodesFromBareAttributeMap(t *testing.T) {
	doc := []byte(`{
		"uid": "bare",
		"effect": "allow",
		"subjects": [{"role": "admin", "team": "platform"}],
		"actions": ["read"],
		"resources": ["doc"],
		"context": {}
	}`)

	decoded, err := ccxguard.PolicyFromJSON(doc)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	checker := ccxguard.NewRulesChecker()
	match := ccxguard.NewInquiry(map[string]any{"role": "admin", "team": "platform"}, "read", "doc", nil)
	if !checker.Fits(decoded, match) {
		t.Fatal("expected a bare attribute map (no object wrapper) to decode into a matching ObjectElement")
	}
}

func TestInquiryJSONRoundTrip(t *testing.T) {
	inq := ccxguard.NewInquiry("max", "read", "doc1", map[string]any{"env": "prod", "count": 3.0})

	data, err := ccxguard.InquiryToJSON(inq)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	decoded, err := ccxguard.InquiryFromJSON(data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if !inq.Subject.Equal(decoded.Subject) || !inq.Action.Equal(decoded.Action) || !inq.Resource.Equal(decoded.Resource) {
		t.Fatalf("scalar field mismatch: %+v != %+v", inq, decoded)
	}
	for k, v := range inq.Context {
		dv, ok := decoded.Context[k]
		if !ok || !v.Equal(dv) {
			t.Fatalf("context[%q] mismatch: %v != %v", k, v, dv)
		}
	}
}

func TestPolicyFromJSONRejectsMalformedElement(t *testing.T) {
	_, err := ccxguard.PolicyFromJSON([]byte(`{"uid":"x","effect":"allow","subjects":[42],"actions":[],"resources":[],"context":{}}`))
	if err == nil {
		t.Fatal("expected an error decoding a match element of unsupported shape")
	}
	if ccxguard.CodeOf(err) != ccxguard.CodeSerialization {
		t.Fatalf("expected SERIALIZATION, got %q: %v", ccxguard.CodeOf(err), err)
	}
}
