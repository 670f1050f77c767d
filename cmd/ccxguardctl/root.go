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
	"github.com/spf13/cobra"
)

// configFile is the global --config flag every subcommand reads through
// loadConfig.
var configFile string

// NewRootCmd builds the ccxguardctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ccxguardctl",
		Short: "Operate a ccxguard policy store",
		Long: `ccxguardctl inspects and mutates a ccxguard policy Storage, and evaluates
access-control inquiries against it from the command line.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(newPolicyAddCmd())
	cmd.AddCommand(newPolicyGetCmd())
	cmd.AddCommand(newPolicyListCmd())
	cmd.AddCommand(newPolicyUpdateCmd())
	cmd.AddCommand(newPolicyDeleteCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
