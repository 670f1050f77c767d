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
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags the dynamic shape carried by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is the tagged value type spec.md §9 calls for: Inquiry fields and
// the arguments handed to Rule.Satisfied are all heterogeneous (string,
// number, bool, list, map), and rules pattern-match on the tag rather than
// asserting a concrete Go type.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

func NewNil() Value              { return Value{kind: KindNil} }
func NewString(s string) Value   { return Value{kind: KindString, str: s} }
func NewNumber(n float64) Value  { return Value{kind: KindNumber, num: n} }
func NewBool(b bool) Value       { return Value{kind: KindBool, b: b} }
func NewList(vs []Value) Value   { return Value{kind: KindList, list: vs} }
func NewMap(m map[string]Value) Value {
	return Value{kind: KindMap, m: m}
}

// Of converts an arbitrary Go value (the shape callers naturally build
// Inquiries and rule arguments out of) into a Value.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return NewNil()
	case Value:
		return t
	case string:
		return NewString(t)
	case bool:
		return NewBool(t)
	case int:
		return NewNumber(float64(t))
	case int32:
		return NewNumber(float64(t))
	case int64:
		return NewNumber(float64(t))
	case float32:
		return NewNumber(float64(t))
	case float64:
		return NewNumber(t)
	case []string:
		out := make([]Value, len(t))
		for i, s := range t {
			out[i] = NewString(s)
		}
		return NewList(out)
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = Of(e)
		}
		return NewList(out)
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = Of(e)
		}
		return NewMap(out)
	case map[string]string:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = NewString(e)
		}
		return NewMap(out)
	default:
		// Unknown shapes stringify rather than panic: rules treat an
		// unexpected shape as "not satisfied", never as a crash.
		return NewString(fmt.Sprintf("%v", t))
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Truthy mirrors the usual scripting-language notion of truthiness used by
// the Truthy/Falsy rules: zero/empty values are false, everything else
// is true. Nil is always false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.b
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.m) > 0
	default:
		return false
	}
}

// Equal reports whether v and other carry the same kind and value. Values
// of mismatched kind are never equal (a type mismatch is a non-match, not
// an error, per spec.md §4.1).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := other.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two numeric Values. ok is false for any non-numeric pair,
// which callers treat as "not satisfied" rather than an error.
func (v Value) Compare(other Value) (result int, ok bool) {
	a, aok := v.AsNumber()
	b, bok := other.AsNumber()
	if !aok || !bok {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "<nil>"
	case KindString:
		return v.str
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return fmt.Sprintf("%v", parts)
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("%v", keys)
	default:
		return ""
	}
}

// MarshalJSON implements the canonical scalar-or-object-or-array encoding
// used by Inquiry fields (spec.md §6).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNil:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		return json.Marshal(v.list)
	case KindMap:
		return json.Marshal(v.m)
	default:
		return json.Marshal(nil)
	}
}

// UnmarshalJSON accepts any JSON scalar, array or object and tags it with
// the matching Kind.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromRawJSON(raw)
	return nil
}

func fromRawJSON(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return NewNil()
	case string:
		return NewString(t)
	case bool:
		return NewBool(t)
	case float64:
		return NewNumber(t)
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = fromRawJSON(e)
		}
		return NewList(out)
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = fromRawJSON(e)
		}
		return NewMap(out)
	default:
		return NewNil()
	}
}
