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
	"strconv"

	"github.com/ccxlabs/ccxguard"
)

// StorageSet persists migration progress as an ordinary policy inside the
// same Storage the migrations operate on, under a reserved uid — so a
// one-shot process like ccxguardctl's "migrate" subcommand sees the same
// progress across separate invocations without a dedicated tracking store.
// The marker policy is never itself a candidate match for any real
// inquiry: its Effect is Deny and its sole purpose is to carry the applied
// Order in its Description field.
type StorageSet struct {
	store ccxguard.Storage
	uid   string
}

// NewStorageSet builds a StorageSet that tracks progress under uid in
// store.
func NewStorageSet(store ccxguard.Storage, uid string) *StorageSet {
	return &StorageSet{store: store, uid: uid}
}

func (s *StorageSet) LastApplied(context.Context) (int, error) {
	p, found, err := s.store.Get(s.uid)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.Atoi(p.Description)
	if err != nil {
		return 0, ccxguard.ErrMigration("marker policy %q has non-numeric description %q", s.uid, p.Description)
	}
	return n, nil
}

func (s *StorageSet) SaveApplied(_ context.Context, n int) error {
	marker := ccxguard.NewPolicy(s.uid, ccxguard.Deny)
	marker.Description = strconv.Itoa(n)

	_, found, err := s.store.Get(s.uid)
	if err != nil {
		return err
	}
	if found {
		return s.store.Update(marker)
	}
	return s.store.Add(marker)
}
