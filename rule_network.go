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

import "net"

// cidrRule is satisfied iff the candidate parses as an IP address (of the
// same family as Net) inside Net. A malformed candidate, or one of the
// wrong address family, is never satisfied — it never raises.
type cidrRule struct {
	Net  string
	net  *net.IPNet
}

// CIDR builds a rule satisfied iff the candidate string is an IP address
// within block. block must be a valid CIDR notation; a malformed block is
// a programmer error and panics at construction time, matching spec.md
// §4.1's "exceptions may propagate only for programmer errors".
func CIDR(block string) Rule {
	_, ipnet, err := net.ParseCIDR(block)
	if err != nil {
		panic("ccxguard: invalid CIDR block " + block + ": " + err.Error())
	}
	return cidrRule{Net: block, net: ipnet}
}

func (r cidrRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	// Normalize both sides: a v4-mapped v6 address is tested in its v4
	// form, so it can match a v4 block; any other v6 candidate never
	// matches a v4 block, and a v4 candidate never matches a v6 block.
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
	}
	netIP := r.net.IP
	if n4 := netIP.To4(); n4 != nil {
		netIP = n4
	}
	sameFamily := (len(ip) == len(netIP))
	if !sameFamily {
		return false
	}
	return r.net.Contains(ip)
}

func (r cidrRule) ruleType() string             { return "net.CIDR" }
func (r cidrRule) ruleContents() map[string]any { return map[string]any{"net": r.Net} }
