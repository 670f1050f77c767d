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

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ccxlabs/ccxguard"
	"github.com/ccxlabs/ccxguard/migration"
)

// defaultDenyUID is the uid AddDefaultDenyPolicy inserts and removes.
// migrationMarkerUID is the uid StorageSet uses to track progress.
const (
	defaultDenyUID     = "ccxguardctl.default-deny"
	migrationMarkerUID = "ccxguardctl.migration-marker"
)

func newMigrator(store ccxguard.Storage) *migration.Migrator {
	return migration.NewMigrator(migration.NewStorageSet(store, migrationMarkerUID),
		migration.NewAddDefaultDenyPolicy(1, defaultDenyUID, store),
	)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run policy-store migrations",
	}
	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closer, err := openStorage(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			if err := newMigrator(store).Up(context.Background(), nil); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert every applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closer, err := openStorage(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			if err := newMigrator(store).Down(context.Background(), nil); err != nil {
				return err
			}
			cmd.Println("migrations reverted")
			return nil
		},
	}
}
