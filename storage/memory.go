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

// Package storage holds ccxguard.Storage backends. Memory is the
// reference, dependency-free backend; Mongo (mongo.go) is the document-
// database backend, kept in the same package in its own file. Because both
// share one package, importing storage (even only for Memory) also brings
// in the Mongo driver.
package storage

import (
	"sort"
	"sync"

	"github.com/ccxlabs/ccxguard"
)

// Memory is an in-process Storage backed by a mutex-guarded map, suitable
// for tests and single-process deployments. It keeps policies in insertion
// order for GetAll and performs a full scan for FindForInquiry — Checker's
// Hint carries no meaning here since there is no index to choose between.
type Memory struct {
	mu       sync.RWMutex
	policies map[string]*ccxguard.Policy
	order    []string
}

// NewMemory builds an empty Memory store.
func NewMemory() *Memory {
	return &Memory{policies: map[string]*ccxguard.Policy{}}
}

func (s *Memory) Add(p *ccxguard.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.policies[p.UID]; exists {
		return ccxguard.ErrDuplicate(p.UID)
	}
	s.policies[p.UID] = p
	s.order = append(s.order, p.UID)
	return nil
}

func (s *Memory) Get(uid string) (*ccxguard.Policy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[uid]
	return p, ok, nil
}

func (s *Memory) GetAll(limit, offset int) ([]*ccxguard.Policy, error) {
	if err := ccxguard.CheckPagination(limit, offset); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.order) {
		return []*ccxguard.Policy{}, nil
	}
	uids := s.order[offset:]
	if limit > 0 && limit < len(uids) {
		uids = uids[:limit]
	}
	out := make([]*ccxguard.Policy, len(uids))
	for i, uid := range uids {
		out[i] = s.policies[uid]
	}
	return out, nil
}

func (s *Memory) Update(p *ccxguard.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.policies[p.UID]; !exists {
		return ccxguard.ErrNotFound(p.UID)
	}
	s.policies[p.UID] = p
	return nil
}

func (s *Memory) Delete(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.policies[uid]; !exists {
		return ccxguard.ErrNotFound(uid)
	}
	delete(s.policies, uid)
	for i, u := range s.order {
		if u == uid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindForInquiry returns every stored policy, in insertion order, for c to
// filter. Memory has no index to narrow the scan by c.Hint().
func (s *Memory) FindForInquiry(_ *ccxguard.Inquiry, _ ccxguard.Checker) ([]*ccxguard.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ccxguard.Policy, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, s.policies[uid])
	}
	return out, nil
}

// sortedUIDs returns the current policy UIDs in lexical order, independent
// of insertion order.
func (s *Memory) sortedUIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.policies))
	for uid := range s.policies {
		out = append(out, uid)
	}
	sort.Strings(out)
	return out
}
