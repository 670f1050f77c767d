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

// This file implements the canonical JSON form spec.md §6 defines for
// Policy, MatchElement and Inquiry, on top of the Rule codec already built
// in rule.go (encodeRule) and registry.go (decodeRuleField). It satisfies
// the round-trip law PolicyFromJSON(PolicyToJSON(p)) == p for any
// well-formed p.
package ccxguard

import "encoding/json"

// PolicyToJSON encodes p in the canonical form: {uid, description, effect,
// subjects, actions, resources, context}.
func PolicyToJSON(p *Policy) ([]byte, error) {
	return json.Marshal(policyToMap(p))
}

// PolicyFromJSON decodes data produced by PolicyToJSON (or an equivalent
// canonical document) back into a Policy.
func PolicyFromJSON(data []byte) (*Policy, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrSerialization("decoding policy: %v", err)
	}
	return policyFromMap(raw)
}

func policyToMap(p *Policy) map[string]any {
	ctx := make(map[string]any, len(p.Context))
	for k, r := range p.Context {
		ctx[k] = encodeRule(r)
	}
	return map[string]any{
		"uid":         p.UID,
		"description": p.Description,
		"effect":      string(p.Effect),
		"subjects":    encodeElements(p.Subjects),
		"actions":     encodeElements(p.Actions),
		"resources":   encodeElements(p.Resources),
		"context":     ctx,
	}
}

func policyFromMap(raw map[string]any) (*Policy, error) {
	uid, _ := raw["uid"].(string)
	desc, _ := raw["description"].(string)
	effect, _ := raw["effect"].(string)

	subjects, err := decodeElements(raw["subjects"])
	if err != nil {
		return nil, err
	}
	actions, err := decodeElements(raw["actions"])
	if err != nil {
		return nil, err
	}
	resources, err := decodeElements(raw["resources"])
	if err != nil {
		return nil, err
	}
	ctx, err := decodeContext(raw["context"])
	if err != nil {
		return nil, err
	}

	return &Policy{
		UID:         uid,
		Description: desc,
		Effect:      Effect(effect),
		Subjects:    subjects,
		Actions:     actions,
		Resources:   resources,
		Context:     ctx,
	}, nil
}

// encodeElement renders a single MatchElement: a bare string for Literal, a
// serialized-rule object ({"type": ..., "contents": ...}) for RuleElement,
// or a bare attribute map for ObjectElement, where each attribute is either
// a bare string or a serialized-rule object (spec.md §6).
func encodeElement(el MatchElement) any {
	switch el.kind {
	case elementLiteral:
		return el.literal
	case elementRule:
		return encodeRule(el.rule)
	case elementObject:
		obj := make(map[string]any, len(el.object))
		for attr, av := range el.object {
			if av.isRule {
				obj[attr] = encodeRule(av.rule)
			} else {
				obj[attr] = av.literal
			}
		}
		return obj
	default:
		return nil
	}
}

func encodeElements(els []MatchElement) []any {
	out := make([]any, len(els))
	for i, el := range els {
		out[i] = encodeElement(el)
	}
	return out
}

// isSerializedRule reports whether m is the reserved {"type": string,
// "contents": object} shape a Rule encodes to (rule.go's encodeRule),
// as opposed to a bare attribute map for an ObjectElement.
func isSerializedRule(m map[string]any) bool {
	if _, ok := m["type"].(string); !ok {
		return false
	}
	_, ok := m["contents"].(map[string]any)
	return ok
}

func decodeElement(raw any) (MatchElement, error) {
	switch t := raw.(type) {
	case string:
		return Literal(t), nil
	case map[string]any:
		if isSerializedRule(t) {
			r, err := decodeRuleField(t)
			if err != nil {
				return MatchElement{}, err
			}
			return RuleElement(r), nil
		}
		vals := make(map[string]any, len(t))
		for attr, v := range t {
			switch vt := v.(type) {
			case string:
				vals[attr] = vt
			case map[string]any:
				r, err := decodeRuleField(vt)
				if err != nil {
					return MatchElement{}, err
				}
				vals[attr] = r
			default:
				return MatchElement{}, ErrSerialization("object element attribute %q has unsupported shape", attr)
			}
		}
		return ObjectElement(vals), nil
	default:
		return MatchElement{}, ErrSerialization("match element has unsupported shape %T", raw)
	}
}

func decodeElements(raw any) ([]MatchElement, error) {
	list, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return nil, nil
		}
		return nil, ErrSerialization("expected a list of match elements")
	}
	out := make([]MatchElement, len(list))
	for i, e := range list {
		el, err := decodeElement(e)
		if err != nil {
			return nil, err
		}
		out[i] = el
	}
	return out, nil
}

func decodeContext(raw any) (map[string]Rule, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		if raw == nil {
			return map[string]Rule{}, nil
		}
		return nil, ErrSerialization("expected a context object")
	}
	out := make(map[string]Rule, len(m))
	for k, v := range m {
		r, err := decodeRuleField(v)
		if err != nil {
			return nil, err
		}
		out[k] = r
	}
	return out, nil
}

// InquiryToJSON encodes inq as {subject, action, resource, context}, each
// value in its canonical Value JSON form.
func InquiryToJSON(inq *Inquiry) ([]byte, error) {
	ctx := make(map[string]Value, len(inq.Context))
	for k, v := range inq.Context {
		ctx[k] = v
	}
	return json.Marshal(map[string]any{
		"subject":  inq.Subject,
		"action":   inq.Action,
		"resource": inq.Resource,
		"context":  ctx,
	})
}

// InquiryFromJSON decodes data produced by InquiryToJSON.
func InquiryFromJSON(data []byte) (*Inquiry, error) {
	var raw struct {
		Subject  Value            `json:"subject"`
		Action   Value             `json:"action"`
		Resource Value            `json:"resource"`
		Context  map[string]Value `json:"context"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrSerialization("decoding inquiry: %v", err)
	}
	if raw.Context == nil {
		raw.Context = map[string]Value{}
	}
	return &Inquiry{
		Subject:  raw.Subject,
		Action:   raw.Action,
		Resource: raw.Resource,
		Context:  raw.Context,
	}, nil
}
