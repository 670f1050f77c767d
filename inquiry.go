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

// Inquiry is an immutable request record describing a concrete access
// attempt (spec.md §3). Subject/Action/Resource are each either a scalar
// Value or a KindMap Value; Context maps attribute names to Values (nil is
// treated as empty).
type Inquiry struct {
	Subject  Value
	Action   Value
	Resource Value
	Context  map[string]Value
}

// NewInquiry builds an Inquiry from natural Go values, converting each
// through Of. context may be nil, treated as empty.
func NewInquiry(subject, action, resource any, context map[string]any) *Inquiry {
	ctx := make(map[string]Value, len(context))
	for k, v := range context {
		ctx[k] = Of(v)
	}
	return &Inquiry{
		Subject:  Of(subject),
		Action:   Of(action),
		Resource: Of(resource),
		Context:  ctx,
	}
}
