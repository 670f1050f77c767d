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
	"regexp"
	"strings"
)

// casefold lowercases using the same Unicode-aware folding for every rule
// that takes a ci (case-insensitive) flag, per spec.md §4.1.
func casefold(s string) string { return strings.ToLower(s) }

// strEqualRule is satisfied iff the candidate string equals To, optionally
// case-insensitively.
type strEqualRule struct {
	To string
	CI bool
}

// StrEqual builds a rule satisfied iff the candidate string equals to. ci
// defaults to false (case-sensitive).
func StrEqual(to string, ci ...bool) Rule {
	return strEqualRule{To: to, CI: anyTrue(ci)}
}

func (r strEqualRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if r.CI {
		return casefold(s) == casefold(r.To)
	}
	return s == r.To
}
func (r strEqualRule) ruleType() string { return "string.StrEqual" }
func (r strEqualRule) ruleContents() map[string]any {
	return map[string]any{"to": r.To, "ci": r.CI}
}

// pairsEqualRule is satisfied iff the candidate is a 2-element list whose
// two entries are equal strings.
type pairsEqualRule struct{}

// PairsEqual builds a rule satisfied iff the candidate is a pair of equal
// strings.
func PairsEqual() Rule { return pairsEqualRule{} }

func (pairsEqualRule) Satisfied(v Value, _ *Inquiry) bool {
	list, ok := v.AsList()
	if !ok || len(list) != 2 {
		return false
	}
	a, aok := list[0].AsString()
	b, bok := list[1].AsString()
	return aok && bok && a == b
}
func (pairsEqualRule) ruleType() string             { return "string.PairsEqual" }
func (pairsEqualRule) ruleContents() map[string]any { return map[string]any{} }

// regexMatchRule is satisfied iff the candidate string contains a match of
// Pattern anywhere in the string (search semantics, NOT a full match).
//
// This is deliberately unanchored, unlike RegexChecker's full-string
// match (checker_regex.go) — spec.md §9 flags the asymmetry and asks
// implementations to preserve or deliberately change it; this keeps it.
type regexMatchRule struct {
	Pattern string
	re      *regexp.Regexp
}

// RegexMatch builds a rule satisfied iff the candidate string contains a
// match of pattern anywhere in the string. pattern is compiled once, here;
// an uncompilable pattern panics at construction time.
func RegexMatch(pattern string) Rule {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic("ccxguard: invalid regex pattern " + pattern + ": " + err.Error())
	}
	return regexMatchRule{Pattern: pattern, re: re}
}

func (r regexMatchRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	return r.re.MatchString(s) // search, not full match
}
func (r regexMatchRule) ruleType() string { return "string.RegexMatch" }
func (r regexMatchRule) ruleContents() map[string]any {
	return map[string]any{"pattern": r.Pattern}
}

// startsWithRule is satisfied iff the candidate string starts with Prefix.
type startsWithRule struct {
	Prefix string
	CI     bool
}

// StartsWith builds a rule satisfied iff the candidate string starts with
// prefix.
func StartsWith(prefix string, ci ...bool) Rule {
	return startsWithRule{Prefix: prefix, CI: anyTrue(ci)}
}

func (r startsWithRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if r.CI {
		return strings.HasPrefix(casefold(s), casefold(r.Prefix))
	}
	return strings.HasPrefix(s, r.Prefix)
}
func (r startsWithRule) ruleType() string { return "string.StartsWith" }
func (r startsWithRule) ruleContents() map[string]any {
	return map[string]any{"prefix": r.Prefix, "ci": r.CI}
}

// endsWithRule is satisfied iff the candidate string ends with Suffix.
type endsWithRule struct {
	Suffix string
	CI     bool
}

// EndsWith builds a rule satisfied iff the candidate string ends with
// suffix.
func EndsWith(suffix string, ci ...bool) Rule {
	return endsWithRule{Suffix: suffix, CI: anyTrue(ci)}
}

func (r endsWithRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if r.CI {
		return strings.HasSuffix(casefold(s), casefold(r.Suffix))
	}
	return strings.HasSuffix(s, r.Suffix)
}
func (r endsWithRule) ruleType() string { return "string.EndsWith" }
func (r endsWithRule) ruleContents() map[string]any {
	return map[string]any{"suffix": r.Suffix, "ci": r.CI}
}

// containsRule is satisfied iff the candidate string contains Sub.
type containsRule struct {
	Sub string
	CI  bool
}

// Contains builds a rule satisfied iff the candidate string contains sub.
func Contains(sub string, ci ...bool) Rule {
	return containsRule{Sub: sub, CI: anyTrue(ci)}
}

func (r containsRule) Satisfied(v Value, _ *Inquiry) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if r.CI {
		return strings.Contains(casefold(s), casefold(r.Sub))
	}
	return strings.Contains(s, r.Sub)
}
func (r containsRule) ruleType() string { return "string.Contains" }
func (r containsRule) ruleContents() map[string]any {
	return map[string]any{"sub": r.Sub, "ci": r.CI}
}

func anyTrue(flags []bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}
	return false
}
