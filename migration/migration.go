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

// Package migration versions a Storage's schema and stored data over time.
// A Migration is an ordered, reversible step; a Migrator applies pending
// Migrations in order and records how far a MigrationSet has progressed,
// the way holomush's internal/store/migrate.go drives schema migrations
// against its own tracking table — adapted here to track a policy Storage
// instead of a SQL schema, so it works identically over Memory and Mongo.
package migration

import (
	"context"
	"sort"

	"github.com/ccxlabs/ccxguard"
)

// Migration is one reversible step in a Storage's evolution: adding a
// default-deny policy, renaming a context attribute across every stored
// policy, backfilling a new field, etc.
type Migration interface {
	// Order is this migration's position in the sequence. Migrations run
	// in ascending Order; Orders must be unique within a MigrationSet.
	Order() int
	// Up applies the migration.
	Up(ctx context.Context) error
	// Down reverses Up.
	Down(ctx context.Context) error
}

// MigrationSet tracks how far a target has progressed, so a Migrator knows
// which Migrations are pending.
type MigrationSet interface {
	// LastApplied returns the Order of the most recently applied
	// Migration, or 0 if none has run yet.
	LastApplied(ctx context.Context) (int, error)
	// SaveApplied records that the Migration at Order n is now the most
	// recently applied one.
	SaveApplied(ctx context.Context, n int) error
}

// Migrator drives a fixed list of Migrations against a MigrationSet.
type Migrator struct {
	migrations []Migration
	set        MigrationSet
}

// NewMigrator builds a Migrator over migrations, sorted ascending by
// Order. It panics if two migrations share an Order — a programmer error
// caught at construction rather than mid-migration.
func NewMigrator(set MigrationSet, migrations ...Migration) *Migrator {
	sorted := append([]Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order() < sorted[j].Order() })
	seen := map[int]bool{}
	for _, m := range sorted {
		if seen[m.Order()] {
			panic("migration: duplicate Order in migration set")
		}
		seen[m.Order()] = true
	}
	return &Migrator{migrations: sorted, set: set}
}

// Up applies every pending migration, in order, up to and including
// number. If number is nil, every pending migration runs.
func (m *Migrator) Up(ctx context.Context, number *int) error {
	last, err := m.set.LastApplied(ctx)
	if err != nil {
		return ccxguard.ErrMigration("reading last applied migration: %v", err)
	}
	for _, step := range m.migrations {
		if step.Order() <= last {
			continue
		}
		if number != nil && step.Order() > *number {
			break
		}
		if err := step.Up(ctx); err != nil {
			return ccxguard.ErrMigration("applying migration %d: %v", step.Order(), err)
		}
		if err := m.set.SaveApplied(ctx, step.Order()); err != nil {
			return ccxguard.ErrMigration("recording migration %d: %v", step.Order(), err)
		}
	}
	return nil
}

// Down reverses every applied migration with Order strictly greater than
// number, in descending order. If number is nil, every applied migration
// is reversed.
func (m *Migrator) Down(ctx context.Context, number *int) error {
	last, err := m.set.LastApplied(ctx)
	if err != nil {
		return ccxguard.ErrMigration("reading last applied migration: %v", err)
	}
	floor := 0
	if number != nil {
		floor = *number
	}
	for i := len(m.migrations) - 1; i >= 0; i-- {
		step := m.migrations[i]
		if step.Order() > last {
			continue
		}
		if step.Order() <= floor {
			break
		}
		if err := step.Down(ctx); err != nil {
			return ccxguard.ErrMigration("reverting migration %d: %v", step.Order(), err)
		}
		prev := 0
		if i > 0 {
			prev = m.migrations[i-1].Order()
		}
		if err := m.set.SaveApplied(ctx, prev); err != nil {
			return ccxguard.ErrMigration("recording migration %d: %v", step.Order(), err)
		}
	}
	return nil
}
