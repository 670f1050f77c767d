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

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccxlabs/ccxguard"
	"github.com/ccxlabs/ccxguard/storage"
)

func newPolicy(uid string) *ccxguard.Policy {
	p := ccxguard.NewPolicy(uid, ccxguard.Allow)
	p.Subjects = []ccxguard.MatchElement{ccxguard.Literal("max")}
	p.Actions = []ccxguard.MatchElement{ccxguard.Literal("read")}
	p.Resources = []ccxguard.MatchElement{ccxguard.Literal("doc")}
	return p
}

func TestMemoryAddGetDelete(t *testing.T) {
	s := storage.NewMemory()
	p := newPolicy("p1")

	require.NoError(t, s.Add(p))

	got, ok, err := s.Get("p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "p1", got.UID)

	require.NoError(t, s.Delete("p1"))
	_, ok, _ = s.Get("p1")
	require.False(t, ok, "expected policy to be gone after Delete")
}

func TestMemoryAddRejectsDuplicate(t *testing.T) {
	s := storage.NewMemory()
	require.NoError(t, s.Add(newPolicy("dup")))

	err := s.Add(newPolicy("dup"))
	require.Error(t, err)
	require.True(t, ccxguard.IsDuplicate(err), "expected a DUPLICATE error, got %q", ccxguard.CodeOf(err))
}

func TestMemoryGetUnknownUIDIsNotAnError(t *testing.T) {
	s := storage.NewMemory()
	p, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, p)
}

func TestMemoryUpdateUnknownUIDIsNotFound(t *testing.T) {
	s := storage.NewMemory()
	err := s.Update(newPolicy("ghost"))
	require.True(t, ccxguard.IsNotFound(err), "expected a NOT_FOUND error, got %q", ccxguard.CodeOf(err))
}

func TestMemoryDeleteUnknownUIDIsNotFound(t *testing.T) {
	s := storage.NewMemory()
	err := s.Delete("ghost")
	require.True(t, ccxguard.IsNotFound(err), "expected a NOT_FOUND error, got %q", ccxguard.CodeOf(err))
}

func TestMemoryUpdateReplacesInPlace(t *testing.T) {
	s := storage.NewMemory()
	p := newPolicy("p1")
	require.NoError(t, s.Add(p))

	updated := newPolicy("p1")
	updated.Description = "updated"
	require.NoError(t, s.Update(updated))

	got, _, _ := s.Get("p1")
	require.Equal(t, "updated", got.Description)
}

func TestMemoryGetAllPagination(t *testing.T) {
	s := storage.NewMemory()
	for _, uid := range []string{"p1", "p2", "p3", "p4"} {
		require.NoError(t, s.Add(newPolicy(uid)))
	}

	all, err := s.GetAll(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)

	page, err := s.GetAll(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "p2", page[0].UID)
	require.Equal(t, "p3", page[1].UID)

	past, err := s.GetAll(10, 10)
	require.NoError(t, err)
	require.Empty(t, past, "expected an offset past the end to return zero results")
}

func TestMemoryGetAllRejectsNegativePagination(t *testing.T) {
	s := storage.NewMemory()
	_, err := s.GetAll(-1, 0)
	require.Error(t, err, "expected a negative limit to be rejected")

	_, err = s.GetAll(0, -1)
	require.Error(t, err, "expected a negative offset to be rejected")
}

func TestMemoryFindForInquiryReturnsEverythingForCheckerToFilter(t *testing.T) {
	s := storage.NewMemory()
	for _, uid := range []string{"p1", "p2"} {
		require.NoError(t, s.Add(newPolicy(uid)))
	}

	guard := ccxguard.NewGuard(s, ccxguard.NewStringExactChecker())
	allowed, err := guard.IsAllowed(ccxguard.NewInquiry("max", "read", "doc", nil))
	require.NoError(t, err)
	require.True(t, allowed, "expected the stored allow policy to be found regardless of which UID matched first")
}
