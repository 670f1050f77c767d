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
	"fmt"
	"testing"

	ccxguard "github.com/ccxlabs/ccxguard"
)

// customDoubleRule is a custom Rule type a caller registers itself,
// mirroring spec.md §9's "custom rules register their own type name"
// requirement. It only needs to satisfy Rule to be decoded and evaluated;
// re-encoding a policy holding one built outside this package isn't
// supported (encodeRule needs the built-in serializableRule contract),
// which is fine for rules that only ever arrive over the wire.
type customDoubleRule struct{ Than float64 }

func (r customDoubleRule) Satisfied(v ccxguard.Value, _ *ccxguard.Inquiry) bool {
	n, ok := v.AsNumber()
	return ok && n == r.Than*2
}

func TestRegisterRuleTypeDecodesAndEvaluates(t *testing.T) {
	ccxguard.RegisterRuleType("test.Double", func(c map[string]any) (ccxguard.Rule, error) {
		than, _ := c["than"].(float64)
		return customDoubleRule{Than: than}, nil
	})

	data := []byte(`{
		"uid": "custom-rule-policy",
		"effect": "allow",
		"subjects": [{"type": "test.Double", "contents": {"than": 21}}],
		"actions": [{"type": "logic.Any", "contents": {}}],
		"resources": [{"type": "logic.Any", "contents": {}}],
		"context": {}
	}`)

	decoded, err := ccxguard.PolicyFromJSON(data)
	if err != nil {
		t.Fatalf("decoding policy: %v", err)
	}

	inq := ccxguard.NewInquiry(42.0, "any", "any", nil)
	checker := ccxguard.NewRulesChecker()
	if !checker.Fits(decoded, inq) {
		t.Fatalf("expected decoded policy with custom rule to match 42 == 21*2")
	}

	inq2 := ccxguard.NewInquiry(43.0, "any", "any", nil)
	if checker.Fits(decoded, inq2) {
		t.Fatalf("expected decoded policy not to match 43 != 21*2")
	}
}

func TestUnregisteredRuleTypeIsBadArgument(t *testing.T) {
	data := []byte(`{"uid":"x","effect":"allow","subjects":[{"type":"no.such.type","contents":{}}],"actions":[],"resources":[],"context":{}}`)
	_, err := ccxguard.PolicyFromJSON(data)
	if err == nil {
		t.Fatal("expected an error decoding an unregistered rule type")
	}
	if ccxguard.CodeOf(err) != ccxguard.CodeBadArgument {
		t.Fatalf("expected BAD_ARGUMENT, got code %q: %v", ccxguard.CodeOf(err), err)
	}
}

func TestBuiltinRuleTypesAreRegistered(t *testing.T) {
	cases := []string{
		"logic.Any", "logic.Neither", "logic.Truthy", "logic.Falsy",
	}
	for _, typeName := range cases {
		data := fmt.Sprintf(`{"uid":"probe","effect":"allow","subjects":[{"type":%q,"contents":{}}],"actions":[],"resources":[],"context":{}}`, typeName)
		if _, err := ccxguard.PolicyFromJSON([]byte(data)); err != nil {
			t.Fatalf("expected %q to be a registered rule type, got: %v", typeName, err)
		}
	}
}

// ExampleRegisterRuleType shows registering and exercising a custom rule.
func ExampleRegisterRuleType() {
	ccxguard.RegisterRuleType("example.AlwaysTrue", func(map[string]any) (ccxguard.Rule, error) {
		return ccxguard.Any(), nil
	})
	p, err := ccxguard.PolicyFromJSON([]byte(`{"uid":"x","effect":"allow","subjects":[{"type":"example.AlwaysTrue","contents":{}}],"actions":[],"resources":[],"context":{}}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(p.Subjects))
	// Output: 1
}
