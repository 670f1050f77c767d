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
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/ccxlabs/ccxguard"
	"github.com/ccxlabs/ccxguard/internal/config"
)

// mintUID generates an opaque uid for a policy the caller didn't name:
// "ulid" (the default, sortable by creation time) or "uuid".
func mintUID(scheme string) (string, error) {
	switch scheme {
	case "", "ulid":
		return ulid.Make().String(), nil
	case "uuid":
		return uuid.NewString(), nil
	default:
		return "", fmt.Errorf("unknown uid scheme %q", scheme)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}

func readPolicyFile(path string) (*ccxguard.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := ccxguard.PolicyFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

func printPolicy(cmd *cobra.Command, p *ccxguard.Policy) error {
	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		return err
	}
	var pretty map[string]any
	if err := json.Unmarshal(data, &pretty); err != nil {
		return err
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func newPolicyAddCmd() *cobra.Command {
	var uid, uidScheme string
	cmd := &cobra.Command{
		Use:   "policy-add <file.json>",
		Short: "Add a policy read from a canonical-JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := readPolicyFile(args[0])
			if err != nil {
				return err
			}
			if uid != "" {
				p.UID = uid
			}
			if p.UID == "" {
				p.UID, err = mintUID(uidScheme)
				if err != nil {
					return err
				}
			}
			store, closer, err := openStorage(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			if err := store.Add(p); err != nil {
				return err
			}
			cmd.Printf("added policy %s\n", p.UID)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "override the uid in the file; minted from --uid-scheme if both are empty")
	cmd.Flags().StringVar(&uidScheme, "uid-scheme", "ulid", "uid scheme to mint when --uid and the file's uid are both empty: ulid or uuid")
	return cmd
}

func newPolicyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy-get <uid>",
		Short: "Print one policy as canonical JSON",
		Args:  cobra.ExactArgs(1),
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
			p, found, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				return ccxguard.ErrNotFound(args[0])
			}
			return printPolicy(cmd, p)
		},
	}
}

func newPolicyListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "policy-list",
		Short: "List stored policies",
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
			policies, err := store.GetAll(limit, offset)
			if err != nil {
				return err
			}
			for _, p := range policies {
				if err := printPolicy(cmd, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum policies to list (0 = no limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of policies to skip")
	return cmd
}

func newPolicyUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy-update <file.json>",
		Short: "Replace the policy whose uid matches the file's uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := readPolicyFile(args[0])
			if err != nil {
				return err
			}
			store, closer, err := openStorage(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			if err := store.Update(p); err != nil {
				return err
			}
			cmd.Printf("updated policy %s\n", p.UID)
			return nil
		},
	}
}

func newPolicyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy-delete <uid>",
		Short: "Delete a policy",
		Args:  cobra.ExactArgs(1),
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
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("deleted policy %s\n", args[0])
			return nil
		},
	}
}
