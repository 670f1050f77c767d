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

package migration

import (
	"context"

	"github.com/ccxlabs/ccxguard"
)

// AddDefaultDenyPolicy is a Migration that inserts a catch-all Deny policy
// (Any subject/action/resource rules, empty context) under uid. The policy
// is RULE_BASED: under RulesChecker it matches every inquiry, so with
// deny-overrides every inquiry is denied; the string and regex checkers
// never match it. Down removes it again.
type AddDefaultDenyPolicy struct {
	order   int
	uid     string
	storage ccxguard.Storage
}

// NewAddDefaultDenyPolicy builds the migration at the given Order, against
// storage, inserting a policy under uid.
func NewAddDefaultDenyPolicy(order int, uid string, storage ccxguard.Storage) *AddDefaultDenyPolicy {
	return &AddDefaultDenyPolicy{order: order, uid: uid, storage: storage}
}

func (m *AddDefaultDenyPolicy) Order() int { return m.order }

func (m *AddDefaultDenyPolicy) Up(context.Context) error {
	p := ccxguard.NewPolicy(m.uid, ccxguard.Deny)
	p.Description = "default deny, installed by migration"
	p.Subjects = []ccxguard.MatchElement{ccxguard.RuleElement(ccxguard.Any())}
	p.Actions = []ccxguard.MatchElement{ccxguard.RuleElement(ccxguard.Any())}
	p.Resources = []ccxguard.MatchElement{ccxguard.RuleElement(ccxguard.Any())}
	return m.storage.Add(p)
}

func (m *AddDefaultDenyPolicy) Down(context.Context) error {
	err := m.storage.Delete(m.uid)
	if ccxguard.IsNotFound(err) {
		return nil
	}
	return err
}
