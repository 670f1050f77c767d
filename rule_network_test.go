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

func TestCIDRMatchesWithinBlock(t *testing.T) {
	r := ccxguard.CIDR("10.0.0.0/8")
	if !r.Satisfied(ccxguard.Of("10.1.2.3"), nil) {
		t.Fatal("expected an address inside the block to match")
	}
	if r.Satisfied(ccxguard.Of("172.16.0.1"), nil) {
		t.Fatal("expected an address outside the block to reject")
	}
}

func TestCIDRRejectsMalformedCandidate(t *testing.T) {
	r := ccxguard.CIDR("10.0.0.0/8")
	if r.Satisfied(ccxguard.Of("not-an-ip"), nil) {
		t.Fatal("expected a malformed candidate address to never match")
	}
	if r.Satisfied(ccxguard.Of(10), nil) {
		t.Fatal("expected a non-string candidate to never match")
	}
}

func TestCIDRRejectsCrossFamilyMatch(t *testing.T) {
	v4 := ccxguard.CIDR("10.0.0.0/8")
	if v4.Satisfied(ccxguard.Of("::1"), nil) {
		t.Fatal("expected a v6 candidate to never match a v4 block")
	}

	v6 := ccxguard.CIDR("2001:db8::/32")
	if v6.Satisfied(ccxguard.Of("10.1.2.3"), nil) {
		t.Fatal("expected a v4 candidate to never match a v6 block")
	}
	if !v6.Satisfied(ccxguard.Of("2001:db8::1"), nil) {
		t.Fatal("expected an address inside the v6 block to match")
	}
}

func TestCIDRPanicsOnMalformedBlock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected CIDR to panic on a malformed block at construction time")
		}
	}()
	ccxguard.CIDR("not-a-cidr-block")
}
