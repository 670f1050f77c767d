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
	"testing"

	ccxguard "github.com/ccxlabs/ccxguard"
)

func TestEqAndNotEq(t *testing.T) {
	if !ccxguard.Eq(5.0).Satisfied(ccxguard.Of(5.0), nil) {
		t.Fatal("expected Eq(5) to match 5")
	}
	if ccxguard.Eq(5.0).Satisfied(ccxguard.Of(6.0), nil) {
		t.Fatal("expected Eq(5) to reject 6")
	}
	if !ccxguard.NotEq(5.0).Satisfied(ccxguard.Of(6.0), nil) {
		t.Fatal("expected NotEq(5) to match 6")
	}
	if ccxguard.NotEq(5.0).Satisfied(ccxguard.Of(5.0), nil) {
		t.Fatal("expected NotEq(5) to reject 5")
	}
}

func TestEqCrossKindIsNeverSatisfied(t *testing.T) {
	if ccxguard.Eq("5").Satisfied(ccxguard.Of(5.0), nil) {
		t.Fatal("expected a string literal to never equal a number Value")
	}
}

func TestOrderingRules(t *testing.T) {
	cases := []struct {
		name string
		rule ccxguard.Rule
		v    float64
		want bool
	}{
		{"Greater true", ccxguard.Greater(10.0), 20, true},
		{"Greater false", ccxguard.Greater(10.0), 5, false},
		{"Greater equal-is-false", ccxguard.Greater(10.0), 10, false},
		{"Less true", ccxguard.Less(10.0), 5, true},
		{"Less false", ccxguard.Less(10.0), 20, false},
		{"GreaterOrEqual equal-is-true", ccxguard.GreaterOrEqual(10.0), 10, true},
		{"GreaterOrEqual false", ccxguard.GreaterOrEqual(10.0), 9, false},
		{"LessOrEqual equal-is-true", ccxguard.LessOrEqual(10.0), 10, true},
		{"LessOrEqual false", ccxguard.LessOrEqual(10.0), 11, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rule.Satisfied(ccxguard.Of(tc.v), nil); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrderingRulesNonNumericNeverSatisfied(t *testing.T) {
	rules := []ccxguard.Rule{
		ccxguard.Greater(10.0),
		ccxguard.Less(10.0),
		ccxguard.GreaterOrEqual(10.0),
		ccxguard.LessOrEqual(10.0),
	}
	for _, r := range rules {
		if r.Satisfied(ccxguard.Of("not-a-number"), nil) {
			t.Fatalf("%T: expected non-numeric candidate to never satisfy an ordering rule", r)
		}
	}
}

func ExampleGreater() {
	r := ccxguard.And(ccxguard.Greater(50.0), ccxguard.Less(999.0))
	_ = r.Satisfied(ccxguard.Of(80.0), nil)
	// Output:
}
