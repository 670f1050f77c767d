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

// Command ccxguardctl is an operator tool for a ccxguard policy store: add,
// inspect and migrate policies, and evaluate inquiries against them from
// the command line. It is not the access-control decision path itself —
// that's Guard.IsAllowed, called from the service embedding this module.
package main

import "github.com/charmbracelet/log"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
