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

func TestNewInquiryConvertsFields(t *testing.T) {
	inq := ccxguard.NewInquiry("max", "read", "doc1", map[string]any{"ip": "10.0.0.1"})

	if s, ok := inq.Subject.AsString(); !ok || s != "max" {
		t.Fatalf("subject = %v, want \"max\"", inq.Subject)
	}
	if a, ok := inq.Action.AsString(); !ok || a != "read" {
		t.Fatalf("action = %v, want \"read\"", inq.Action)
	}
	if r, ok := inq.Resource.AsString(); !ok || r != "doc1" {
		t.Fatalf("resource = %v, want \"doc1\"", inq.Resource)
	}
	ip, ok := inq.Context["ip"]
	if !ok {
		t.Fatal("expected context key \"ip\" to be present")
	}
	if s, ok := ip.AsString(); !ok || s != "10.0.0.1" {
		t.Fatalf("context[ip] = %v, want \"10.0.0.1\"", ip)
	}
}

func TestNewInquiryNilContextIsEmptyNotNil(t *testing.T) {
	inq := ccxguard.NewInquiry("a", "b", "c", nil)
	if inq.Context == nil {
		t.Fatal("expected NewInquiry to build a non-nil empty context map, not leave it nil")
	}
	if len(inq.Context) != 0 {
		t.Fatalf("expected empty context, got %v", inq.Context)
	}
}
