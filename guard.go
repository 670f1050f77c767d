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

package ccxguard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Guard is the top-level decision point: it pairs a Storage with the single
// Checker fixed for its lifetime and implements deny-overrides aggregation
// over every policy that matches an Inquiry (spec.md §4.3).
type Guard struct {
	storage Storage
	checker Checker
	log     *log.Logger
}

// GuardOption configures a Guard at construction time.
type GuardOption func(*Guard)

// WithLogger overrides the default logger (one written to os.Stderr at Info
// level) a Guard uses for its per-inquiry and per-policy-error log lines.
func WithLogger(logger *log.Logger) GuardOption {
	return func(g *Guard) { g.log = logger }
}

// NewGuard builds a Guard over storage and checker.
func NewGuard(storage Storage, checker Checker, opts ...GuardOption) *Guard {
	g := &Guard{
		storage: storage,
		checker: checker,
		log:     log.New(os.Stderr),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsAllowed resolves inq against every policy FindForInquiry returns,
// combining results with deny-overrides: any matching Deny policy makes the
// whole inquiry denied regardless of how many Allow policies also match; an
// inquiry with zero matching policies is denied (fail-closed, spec.md
// §4.3). A panic or error while evaluating a single policy's Rules is
// caught, logged at ERROR, and that policy is treated as non-matching —
// IsAllowed only returns a non-nil error when Storage itself fails to
// enumerate policies.
func (g *Guard) IsAllowed(inq *Inquiry) (allowed bool, err error) {
	policies, err := g.storage.FindForInquiry(inq, g.checker)
	if err != nil {
		return false, fmt.Errorf("guard: enumerating policies: %w", err)
	}

	sawAllow := false
	for _, p := range policies {
		matched := g.safeFits(p, inq)
		if !matched {
			continue
		}
		switch p.Effect {
		case Deny:
			g.log.Info("inquiry denied", "subject", inq.Subject, "action", inq.Action, "resource", inq.Resource, "policy", p.UID)
			return false, nil
		case Allow:
			sawAllow = true
		}
	}

	g.log.Info("inquiry resolved", "subject", inq.Subject, "action", inq.Action, "resource", inq.Resource, "allowed", sawAllow)
	return sawAllow, nil
}

// safeFits calls checker.Fits, recovering from any panic a misbehaving Rule
// raises (e.g. a custom Rule type that indexes past the end of a list) so
// one bad policy can't take down an entire Guard.IsAllowed call.
func (g *Guard) safeFits(p *Policy, inq *Inquiry) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("policy evaluation panicked, treating as non-matching", "policy", p.UID, "panic", r)
			matched = false
		}
	}()
	return g.checker.Fits(p, inq)
}
