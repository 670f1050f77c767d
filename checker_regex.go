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

	lru "github.com/hashicorp/golang-lru"
)

// defaultRegexCacheSize bounds RegexChecker's compiled-pattern cache so a
// policy set with many distinct elements can't grow it unbounded.
const defaultRegexCacheSize = 1024

// RegexChecker matches policy elements that embed delimited regex segments
// inside otherwise-literal text, e.g. "foo-<[0-9]+>-bar". Segments outside
// the delimiters are matched literally (via regexp.QuoteMeta); the whole
// assembled pattern is anchored to the full candidate string (spec.md §4.2.3
// — this is the deliberate asymmetry against RegexMatch's unanchored
// search, documented in DESIGN.md). It never matches a RULE_BASED policy;
// only string-shaped elements carry delimited regex segments.
type RegexChecker struct {
	startTag, endTag string
	cache            *lru.Cache
}

// NewRegexChecker builds a RegexChecker using the "<" / ">" delimiter pair
// and a default-sized pattern cache.
func NewRegexChecker() *RegexChecker {
	c, err := NewRegexCheckerWithDelimiters("<", ">", defaultRegexCacheSize)
	if err != nil {
		// defaultRegexCacheSize is a positive constant; lru.New only
		// errors on size <= 0.
		panic(err)
	}
	return c
}

// NewRegexCheckerWithDelimiters builds a RegexChecker with a custom
// delimiter pair and pattern-cache size.
func NewRegexCheckerWithDelimiters(startTag, endTag string, cacheSize int) (*RegexChecker, error) {
	if cacheSize <= 0 {
		cacheSize = defaultRegexCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, ErrValidation("building regex cache: %v", err)
	}
	return &RegexChecker{startTag: startTag, endTag: endTag, cache: cache}, nil
}

func (c *RegexChecker) Hint() Hint { return HintRegex }

func (c *RegexChecker) Fits(p *Policy, inq *Inquiry) bool {
	if p.Type() != StringBased {
		return false
	}
	one := func(el MatchElement, v Value, _ *Inquiry) bool {
		return c.matchLiteral(el.literal, v)
	}
	return matchField(p.Subjects, inq.Subject, inq, one) &&
		matchField(p.Actions, inq.Action, inq, one) &&
		matchField(p.Resources, inq.Resource, inq, one) &&
		matchContext(p.Context, inq.Context, inq)
}

func (c *RegexChecker) matchLiteral(pattern string, inqValue Value) bool {
	s, ok := inqValue.AsString()
	if !ok {
		return false
	}
	re, err := c.compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

// compile builds (or fetches from cache) the anchored regexp.Regexp for
// pattern, splitting it into literal spans and delimited regex spans.
func (c *RegexChecker) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := c.cache.Get(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	assembled := "^(" + c.assemble(pattern) + ")$"
	re, err := regexp.Compile(assembled)
	if err != nil {
		return nil, err
	}
	c.cache.Add(pattern, re)
	return re, nil
}

// assemble walks pattern, QuoteMeta-escaping every span outside
// c.startTag/c.endTag and passing delimited spans through verbatim. A
// pattern with no delimiters at all degrades to a fully literal (i.e.
// exact-match) regex.
func (c *RegexChecker) assemble(pattern string) string {
	var b strings.Builder
	rest := pattern
	for {
		start := strings.Index(rest, c.startTag)
		if start < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		end := strings.Index(rest[start+len(c.startTag):], c.endTag)
		if end < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		end += start + len(c.startTag)
		b.WriteString(regexp.QuoteMeta(rest[:start]))
		b.WriteString(rest[start+len(c.startTag) : end])
		rest = rest[end+len(c.endTag):]
	}
	return b.String()
}
