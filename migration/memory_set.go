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
	"sync"
)

// MemorySet is a MigrationSet that tracks progress in process memory, for
// tests and single-process deployments backed by storage.Memory.
type MemorySet struct {
	mu   sync.Mutex
	last int
}

// NewMemorySet builds a MemorySet starting at "nothing applied".
func NewMemorySet() *MemorySet { return &MemorySet{} }

func (s *MemorySet) LastApplied(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, nil
}

func (s *MemorySet) SaveApplied(_ context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = n
	return nil
}
