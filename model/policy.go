// Copyright 2017 The casbin Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "fmt"

// HasPolicy reports whether rule already exists for ptype.
func (m Model) HasPolicy(sec string, ptype string, rule []string) bool {
	ast, ok := m[sec][ptype]
	if !ok {
		return false
	}
	_, ok = ast.PolicyMap[ruleKey(rule)]
	return ok
}

// HasPolicies reports whether every rule in rules already exists.
func (m Model) HasPolicies(sec string, ptype string, rules [][]string) bool {
	for _, r := range rules {
		if !m.HasPolicy(sec, ptype, r) {
			return false
		}
	}
	return true
}

// AddPolicy appends rule if it isn't already present, returning false
// when it was a duplicate.
func (m Model) AddPolicy(sec string, ptype string, rule []string) bool {
	ast, ok := m[sec][ptype]
	if !ok {
		return false
	}
	key := ruleKey(rule)
	if _, dup := ast.PolicyMap[key]; dup {
		return false
	}
	ast.PolicyMap[key] = len(ast.Policy)
	ast.Policy = append(ast.Policy, rule)
	return true
}

// AddPolicies appends every rule in rules, atomically: if autoExpand
// ("ex" semantics) is false and any rule already exists, nothing is
// added and false is returned.
func (m Model) AddPolicies(sec string, ptype string, rules [][]string, autoExpand bool) bool {
	if !autoExpand && m.hasAnyPolicy(sec, ptype, rules) {
		return false
	}
	added := false
	for _, r := range rules {
		if m.AddPolicy(sec, ptype, r) {
			added = true
		}
	}
	return added
}

func (m Model) hasAnyPolicy(sec string, ptype string, rules [][]string) bool {
	for _, r := range rules {
		if m.HasPolicy(sec, ptype, r) {
			return true
		}
	}
	return false
}

// RemovePolicy removes rule, returning false when it wasn't present.
func (m Model) RemovePolicy(sec string, ptype string, rule []string) bool {
	ast, ok := m[sec][ptype]
	if !ok {
		return false
	}
	key := ruleKey(rule)
	idx, ok := ast.PolicyMap[key]
	if !ok {
		return false
	}
	m.removeAt(ast, idx)
	return true
}

func (m Model) removeAt(ast *Assertion, idx int) {
	ast.Policy = append(ast.Policy[:idx], ast.Policy[idx+1:]...)
	ast.reindex()
}

// RemovePolicies removes every rule in rules. Returns false if any rule
// was not present, leaving the policy store unmodified in that case.
func (m Model) RemovePolicies(sec string, ptype string, rules [][]string) bool {
	if !m.HasPolicies(sec, ptype, rules) {
		return false
	}
	for _, r := range rules {
		m.RemovePolicy(sec, ptype, r)
	}
	return true
}

// RemoveFilteredPolicy removes every rule whose fields starting at
// fieldIndex match the non-empty entries of fieldValues, returning the
// removed rules.
func (m Model) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) (bool, [][]string) {
	ast, ok := m[sec][ptype]
	if !ok {
		return false, nil
	}
	var kept, removed [][]string
	for _, rule := range ast.Policy {
		if matchesFilter(rule, fieldIndex, fieldValues) {
			removed = append(removed, rule)
		} else {
			kept = append(kept, rule)
		}
	}
	if len(removed) == 0 {
		return false, nil
	}
	ast.Policy = kept
	ast.reindex()
	return true, removed
}

func matchesFilter(rule []string, fieldIndex int, fieldValues []string) bool {
	for i, v := range fieldValues {
		if v == "" {
			continue
		}
		idx := fieldIndex + i
		if idx >= len(rule) || rule[idx] != v {
			return false
		}
	}
	return true
}

// GetPolicy returns every rule of ptype.
func (m Model) GetPolicy(sec string, ptype string) [][]string {
	ast, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	out := make([][]string, len(ast.Policy))
	copy(out, ast.Policy)
	return out
}

// GetFilteredPolicy returns every rule matching the filter described by
// fieldIndex/fieldValues.
func (m Model) GetFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) [][]string {
	ast, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	var out [][]string
	for _, rule := range ast.Policy {
		if matchesFilter(rule, fieldIndex, fieldValues) {
			out = append(out, rule)
		}
	}
	return out
}

// GetValuesForFieldInPolicy returns the distinct, order-preserved values
// of one field across every rule of ptype.
func (m Model) GetValuesForFieldInPolicy(sec string, ptype string, fieldIndex int) []string {
	ast, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, rule := range ast.Policy {
		if fieldIndex >= len(rule) {
			continue
		}
		v := rule[fieldIndex]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// UpdatePolicy replaces oldRule with newRule in place, preserving order.
func (m Model) UpdatePolicy(sec string, ptype string, oldRule []string, newRule []string) error {
	ast, ok := m[sec][ptype]
	if !ok {
		return fmt.Errorf("policy definition %q not found", ptype)
	}
	idx, ok := ast.PolicyMap[ruleKey(oldRule)]
	if !ok {
		return fmt.Errorf("policy rule not found: %v", oldRule)
	}
	ast.Policy[idx] = newRule
	ast.reindex()
	return nil
}

// UpdatePolicies replaces every rule in oldRules with its counterpart in
// newRules, atomically: if any oldRule is missing, no rule is replaced.
func (m Model) UpdatePolicies(sec string, ptype string, oldRules [][]string, newRules [][]string) error {
	if len(oldRules) != len(newRules) {
		return fmt.Errorf("old and new rule counts differ: %d vs %d", len(oldRules), len(newRules))
	}
	ast, ok := m[sec][ptype]
	if !ok {
		return fmt.Errorf("policy definition %q not found", ptype)
	}
	indices := make([]int, len(oldRules))
	for i, r := range oldRules {
		idx, ok := ast.PolicyMap[ruleKey(r)]
		if !ok {
			return fmt.Errorf("policy rule not found: %v", r)
		}
		indices[i] = idx
	}
	for i, idx := range indices {
		ast.Policy[idx] = newRules[i]
	}
	ast.reindex()
	return nil
}

// UpdateFilteredPolicies replaces every rule matching the filter with
// newRules, returning the replaced rules.
func (m Model) UpdateFilteredPolicies(sec string, ptype string, newRules [][]string, fieldIndex int, fieldValues ...string) ([][]string, error) {
	ast, ok := m[sec][ptype]
	if !ok {
		return nil, fmt.Errorf("policy definition %q not found", ptype)
	}
	var oldRules [][]string
	kept := make([][]string, 0, len(ast.Policy))
	for _, rule := range ast.Policy {
		if matchesFilter(rule, fieldIndex, fieldValues) {
			oldRules = append(oldRules, rule)
		} else {
			kept = append(kept, rule)
		}
	}
	kept = append(kept, newRules...)
	ast.Policy = kept
	ast.reindex()
	return oldRules, nil
}

// GetFieldIndex returns the configured position of a logical field name
// for ptype, or -1 if unknown.
func (m Model) GetFieldIndex(ptype string, field string) int {
	ast, ok := m[SectionPolicy][ptype]
	if !ok {
		return -1
	}
	return ast.fieldIndex(field)
}
