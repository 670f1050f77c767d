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

func TestInAndNotIn(t *testing.T) {
	r := ccxguard.In("red", "green", "blue")
	if !r.Satisfied(ccxguard.Of("green"), nil) {
		t.Fatal("expected In to match a listed scalar")
	}
	if r.Satisfied(ccxguard.Of("purple"), nil) {
		t.Fatal("expected In to reject an unlisted scalar")
	}

	nr := ccxguard.NotIn("red", "green", "blue")
	if nr.Satisfied(ccxguard.Of("green"), nil) {
		t.Fatal("expected NotIn to reject a listed scalar")
	}
	if !nr.Satisfied(ccxguard.Of("purple"), nil) {
		t.Fatal("expected NotIn to match an unlisted scalar")
	}
}

func TestAllInAndAllNotIn(t *testing.T) {
	allowed := ccxguard.AllIn("read", "write", "admin")
	if !allowed.Satisfied(ccxguard.Of([]any{"read", "write"}), nil) {
		t.Fatal("expected AllIn to match when every element is allowed")
	}
	if allowed.Satisfied(ccxguard.Of([]any{"read", "delete"}), nil) {
		t.Fatal("expected AllIn to reject when one element is not allowed")
	}
	if allowed.Satisfied(ccxguard.Of("read"), nil) {
		t.Fatal("expected AllIn to reject a non-list candidate")
	}

	forbidden := ccxguard.AllNotIn("delete", "drop")
	if !forbidden.Satisfied(ccxguard.Of([]any{"read", "write"}), nil) {
		t.Fatal("expected AllNotIn to match when no element is forbidden")
	}
	if forbidden.Satisfied(ccxguard.Of([]any{"read", "delete"}), nil) {
		t.Fatal("expected AllNotIn to reject when one element is forbidden")
	}
}

func TestAnyInAndAnyNotIn(t *testing.T) {
	someAllowed := ccxguard.AnyIn("admin", "superuser")
	if !someAllowed.Satisfied(ccxguard.Of([]any{"viewer", "admin"}), nil) {
		t.Fatal("expected AnyIn to match when at least one element is in the set")
	}
	if someAllowed.Satisfied(ccxguard.Of([]any{"viewer", "editor"}), nil) {
		t.Fatal("expected AnyIn to reject when no element is in the set")
	}

	someMissing := ccxguard.AnyNotIn("admin", "superuser")
	if !someMissing.Satisfied(ccxguard.Of([]any{"viewer", "admin"}), nil) {
		t.Fatal("expected AnyNotIn to match when at least one element is outside the set")
	}
	if someMissing.Satisfied(ccxguard.Of([]any{"admin", "superuser"}), nil) {
		t.Fatal("expected AnyNotIn to reject when every element is inside the set")
	}
}

func TestEmptyListCandidateEdgeCases(t *testing.T) {
	empty := ccxguard.Of([]any{})
	if !ccxguard.AllIn("x").Satisfied(empty, nil) {
		t.Fatal("expected AllIn over an empty candidate list to vacuously match")
	}
	if !ccxguard.AllNotIn("x").Satisfied(empty, nil) {
		t.Fatal("expected AllNotIn over an empty candidate list to vacuously match")
	}
	if ccxguard.AnyIn("x").Satisfied(empty, nil) {
		t.Fatal("expected AnyIn over an empty candidate list to never match")
	}
	if ccxguard.AnyNotIn("x").Satisfied(empty, nil) {
		t.Fatal("expected AnyNotIn over an empty candidate list to never match")
	}
}

func ExampleIn() {
	r := ccxguard.In("read", "write")
	_ = r.Satisfied(ccxguard.Of("read"), nil)
}
