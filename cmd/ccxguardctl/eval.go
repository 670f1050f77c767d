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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccxlabs/ccxguard"
)

func newEvalCmd() *cobra.Command {
	var subject, action, resource string
	var inquiryFile string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate an inquiry against the stored policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var inq *ccxguard.Inquiry
			if inquiryFile != "" {
				data, err := os.ReadFile(inquiryFile)
				if err != nil {
					return fmt.Errorf("reading %s: %w", inquiryFile, err)
				}
				inq, err = ccxguard.InquiryFromJSON(data)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", inquiryFile, err)
				}
			} else {
				inq = ccxguard.NewInquiry(subject, action, resource, nil)
			}

			store, closer, err := openStorage(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer()

			checker, err := newChecker(cfg)
			if err != nil {
				return err
			}

			guard := ccxguard.NewGuard(store, checker)
			allowed, err := guard.IsAllowed(inq)
			if err != nil {
				return err
			}
			if allowed {
				cmd.Println("allowed")
			} else {
				cmd.Println("denied")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "inquiry subject")
	cmd.Flags().StringVar(&action, "action", "", "inquiry action")
	cmd.Flags().StringVar(&resource, "resource", "", "inquiry resource")
	cmd.Flags().StringVar(&inquiryFile, "inquiry", "", "canonical-JSON inquiry file (overrides --subject/--action/--resource)")
	return cmd
}
