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

package casbin

import (
	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
	"github.com/EnthuZiastic/casbin-ex2-sub003/persist"
)

// GetAllSubjects returns every distinct value of the 0th field across
// every p-type definition.
func (e *Enforcer) GetAllSubjects() []string {
	return e.getAllNamedFieldValues("p", 0)
}

// GetAllNamedSubjects returns every distinct value of the 0th field of
// ptype.
func (e *Enforcer) GetAllNamedSubjects(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 0)
}

// GetAllObjects returns every distinct value of the 1st field across
// every p-type definition.
func (e *Enforcer) GetAllObjects() []string {
	return e.getAllNamedFieldValues("p", 1)
}

// GetAllNamedObjects returns every distinct value of the 1st field of
// ptype.
func (e *Enforcer) GetAllNamedObjects(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 1)
}

// GetAllActions returns every distinct value of the 2nd field across
// every p-type definition.
func (e *Enforcer) GetAllActions() []string {
	return e.getAllNamedFieldValues("p", 2)
}

// GetAllNamedActions returns every distinct value of the 2nd field of
// ptype.
func (e *Enforcer) GetAllNamedActions(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 2)
}

// GetAllRoles returns every distinct value of the 1st field across every
// g-type definition.
func (e *Enforcer) GetAllRoles() []string {
	return e.getAllNamedFieldValues("g", 1)
}

// GetAllNamedRoles returns every distinct value of the 1st field of
// ptype.
func (e *Enforcer) GetAllNamedRoles(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("g", ptype, 1)
}

func (e *Enforcer) getAllNamedFieldValues(sec string, field int) []string {
	seen := map[string]bool{}
	var out []string
	for ptype := range e.model[sec] {
		for _, v := range e.model.GetValuesForFieldInPolicy(sec, ptype, field) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// GetPolicy returns every rule of the default "p" definition.
func (e *Enforcer) GetPolicy() [][]string {
	return e.GetNamedPolicy("p")
}

// GetFilteredPolicy returns every "p" rule matching the filter.
func (e *Enforcer) GetFilteredPolicy(fieldIndex int, fieldValues ...string) [][]string {
	return e.GetFilteredNamedPolicy("p", fieldIndex, fieldValues...)
}

// GetNamedPolicy returns every rule of ptype.
func (e *Enforcer) GetNamedPolicy(ptype string) [][]string {
	return e.model.GetPolicy("p", ptype)
}

// GetFilteredNamedPolicy returns every rule of ptype matching the
// filter.
func (e *Enforcer) GetFilteredNamedPolicy(ptype string, fieldIndex int, fieldValues ...string) [][]string {
	return e.model.GetFilteredPolicy("p", ptype, fieldIndex, fieldValues...)
}

// GetGroupingPolicy returns every rule of the default "g" definition.
func (e *Enforcer) GetGroupingPolicy() [][]string {
	return e.GetNamedGroupingPolicy("g")
}

// GetFilteredGroupingPolicy returns every "g" rule matching the filter.
func (e *Enforcer) GetFilteredGroupingPolicy(fieldIndex int, fieldValues ...string) [][]string {
	return e.GetFilteredNamedGroupingPolicy("g", fieldIndex, fieldValues...)
}

// GetNamedGroupingPolicy returns every rule of grouping definition
// ptype.
func (e *Enforcer) GetNamedGroupingPolicy(ptype string) [][]string {
	return e.model.GetPolicy("g", ptype)
}

// GetFilteredNamedGroupingPolicy returns every rule of grouping
// definition ptype matching the filter.
func (e *Enforcer) GetFilteredNamedGroupingPolicy(ptype string, fieldIndex int, fieldValues ...string) [][]string {
	return e.model.GetFilteredPolicy("g", ptype, fieldIndex, fieldValues...)
}

// HasPolicy reports whether a "p" rule already exists.
func (e *Enforcer) HasPolicy(params ...interface{}) bool {
	return e.HasNamedPolicy("p", params...)
}

// HasNamedPolicy reports whether a ptype rule already exists.
func (e *Enforcer) HasNamedPolicy(ptype string, params ...interface{}) bool {
	return e.model.HasPolicy("p", ptype, toStrSlice(params))
}

// AddPolicy adds a "p" rule, persisting and notifying by default.
func (e *Enforcer) AddPolicy(params ...interface{}) (bool, error) {
	return e.AddNamedPolicy("p", params...)
}

// AddNamedPolicy adds a ptype rule.
func (e *Enforcer) AddNamedPolicy(ptype string, params ...interface{}) (bool, error) {
	return e.addPolicy("p", ptype, toStrSlice(params))
}

// AddPolicies adds every rule in rules as a "p" rule, atomically.
func (e *Enforcer) AddPolicies(rules [][]string) (bool, error) {
	return e.AddNamedPolicies("p", rules)
}

// AddNamedPolicies adds every rule in rules to ptype, atomically.
func (e *Enforcer) AddNamedPolicies(ptype string, rules [][]string) (bool, error) {
	return e.addPolicies("p", ptype, rules, false)
}

// AddPoliciesEx adds every rule in rules to "p", skipping duplicates
// instead of failing the whole batch.
func (e *Enforcer) AddPoliciesEx(rules [][]string) (bool, error) {
	return e.AddNamedPoliciesEx("p", rules)
}

// AddNamedPoliciesEx adds every rule in rules to ptype, skipping
// duplicates instead of failing the whole batch.
func (e *Enforcer) AddNamedPoliciesEx(ptype string, rules [][]string) (bool, error) {
	return e.addPolicies("p", ptype, rules, true)
}

// RemovePolicy removes a "p" rule.
func (e *Enforcer) RemovePolicy(params ...interface{}) (bool, error) {
	return e.RemoveNamedPolicy("p", params...)
}

// RemoveNamedPolicy removes a ptype rule.
func (e *Enforcer) RemoveNamedPolicy(ptype string, params ...interface{}) (bool, error) {
	return e.removePolicy("p", ptype, toStrSlice(params))
}

// RemovePolicies removes every rule in rules from "p", atomically.
func (e *Enforcer) RemovePolicies(rules [][]string) (bool, error) {
	return e.RemoveNamedPolicies("p", rules)
}

// RemoveNamedPolicies removes every rule in rules from ptype,
// atomically.
func (e *Enforcer) RemoveNamedPolicies(ptype string, rules [][]string) (bool, error) {
	return e.removePolicies("p", ptype, rules)
}

// RemoveFilteredPolicy removes every "p" rule matching the filter.
func (e *Enforcer) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	return e.RemoveFilteredNamedPolicy("p", fieldIndex, fieldValues...)
}

// RemoveFilteredNamedPolicy removes every ptype rule matching the
// filter.
func (e *Enforcer) RemoveFilteredNamedPolicy(ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	return e.removeFilteredPolicy("p", ptype, fieldIndex, fieldValues...)
}

// UpdatePolicy replaces oldRule with newRule in "p".
func (e *Enforcer) UpdatePolicy(oldRule []string, newRule []string) (bool, error) {
	return e.UpdateNamedPolicy("p", oldRule, newRule)
}

// UpdateNamedPolicy replaces oldRule with newRule in ptype.
func (e *Enforcer) UpdateNamedPolicy(ptype string, oldRule []string, newRule []string) (bool, error) {
	return e.updatePolicy("p", ptype, oldRule, newRule)
}

// UpdatePolicies replaces each rule in oldRules with its counterpart in
// newRules, atomically.
func (e *Enforcer) UpdatePolicies(oldRules, newRules [][]string) (bool, error) {
	return e.UpdateNamedPolicies("p", oldRules, newRules)
}

// UpdateNamedPolicies replaces each rule in oldRules with its
// counterpart in newRules for ptype, atomically.
func (e *Enforcer) UpdateNamedPolicies(ptype string, oldRules, newRules [][]string) (bool, error) {
	return e.updatePolicies("p", ptype, oldRules, newRules)
}

// AddGroupingPolicy adds a "g" rule.
func (e *Enforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	return e.AddNamedGroupingPolicy("g", params...)
}

// AddNamedGroupingPolicy adds a rule to grouping definition ptype.
func (e *Enforcer) AddNamedGroupingPolicy(ptype string, params ...interface{}) (bool, error) {
	return e.addPolicy("g", ptype, toStrSlice(params))
}

// AddGroupingPolicies adds every rule in rules to "g", atomically.
func (e *Enforcer) AddGroupingPolicies(rules [][]string) (bool, error) {
	return e.AddNamedGroupingPolicies("g", rules)
}

// AddNamedGroupingPolicies adds every rule in rules to grouping
// definition ptype, atomically.
func (e *Enforcer) AddNamedGroupingPolicies(ptype string, rules [][]string) (bool, error) {
	return e.addPolicies("g", ptype, rules, false)
}

// RemoveGroupingPolicy removes a "g" rule.
func (e *Enforcer) RemoveGroupingPolicy(params ...interface{}) (bool, error) {
	return e.RemoveNamedGroupingPolicy("g", params...)
}

// RemoveNamedGroupingPolicy removes a rule from grouping definition
// ptype.
func (e *Enforcer) RemoveNamedGroupingPolicy(ptype string, params ...interface{}) (bool, error) {
	return e.removePolicy("g", ptype, toStrSlice(params))
}

// RemoveGroupingPolicies removes every rule in rules from "g",
// atomically.
func (e *Enforcer) RemoveGroupingPolicies(rules [][]string) (bool, error) {
	return e.RemoveNamedGroupingPolicies("g", rules)
}

// RemoveNamedGroupingPolicies removes every rule in rules from grouping
// definition ptype, atomically.
func (e *Enforcer) RemoveNamedGroupingPolicies(ptype string, rules [][]string) (bool, error) {
	return e.removePolicies("g", ptype, rules)
}

// RemoveFilteredGroupingPolicy removes every "g" rule matching the
// filter.
func (e *Enforcer) RemoveFilteredGroupingPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	return e.RemoveFilteredNamedGroupingPolicy("g", fieldIndex, fieldValues...)
}

// RemoveFilteredNamedGroupingPolicy removes every rule of grouping
// definition ptype matching the filter.
func (e *Enforcer) RemoveFilteredNamedGroupingPolicy(ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	return e.removeFilteredPolicy("g", ptype, fieldIndex, fieldValues...)
}

// --- shared mutation plumbing ---

func (e *Enforcer) addPolicy(sec string, ptype string, rule []string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.AddPolicies(sec, ptype, [][]string{rule})
	}
	if !e.model.AddPolicy(sec, ptype, rule) {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, [][]string{rule}); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if err := e.adapter.AddPolicy(sec, ptype, rule); err != nil {
			return true, &AdapterError{Cause: err}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			if w, ok := e.watcher.(persist.WatcherEx); ok {
				return true, w.UpdateForAddPolicy(sec, ptype, rule...)
			}
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) addPolicies(sec string, ptype string, rules [][]string, autoExpand bool) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.AddPolicies(sec, ptype, rules)
	}
	if !e.model.AddPolicies(sec, ptype, rules, autoExpand) {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, rules); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if ba, ok := e.adapter.(persist.BatchAdapter); ok {
			if err := ba.AddPolicies(sec, ptype, rules); err != nil {
				return true, &AdapterError{Cause: err}
			}
		} else {
			for _, r := range rules {
				if err := e.adapter.AddPolicy(sec, ptype, r); err != nil {
					return true, &AdapterError{Cause: err}
				}
			}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) removePolicy(sec string, ptype string, rule []string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.RemovePolicies(sec, ptype, [][]string{rule})
	}
	if !e.model.RemovePolicy(sec, ptype, rule) {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, [][]string{rule}); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if err := e.adapter.RemovePolicy(sec, ptype, rule); err != nil {
			return true, &AdapterError{Cause: err}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			if w, ok := e.watcher.(persist.WatcherEx); ok {
				return true, w.UpdateForRemovePolicy(sec, ptype, rule...)
			}
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) removePolicies(sec string, ptype string, rules [][]string) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.RemovePolicies(sec, ptype, rules)
	}
	if !e.model.RemovePolicies(sec, ptype, rules) {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, rules); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if ba, ok := e.adapter.(persist.BatchAdapter); ok {
			if err := ba.RemovePolicies(sec, ptype, rules); err != nil {
				return true, &AdapterError{Cause: err}
			}
		} else {
			for _, r := range rules {
				if err := e.adapter.RemovePolicy(sec, ptype, r); err != nil {
					return true, &AdapterError{Cause: err}
				}
			}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) removeFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues)
	}
	ok, removed := e.model.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...)
	if !ok {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, removed); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if err := e.adapter.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...); err != nil {
			return true, &AdapterError{Cause: err}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			if w, ok := e.watcher.(persist.WatcherEx); ok {
				return true, w.UpdateForRemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...)
			}
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) updatePolicy(sec string, ptype string, oldRule, newRule []string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.UpdatePolicy(sec, ptype, oldRule, newRule)
	}
	if err := e.model.UpdatePolicy(sec, ptype, oldRule, newRule); err != nil {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, [][]string{oldRule}); err != nil {
			return true, err
		}
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, [][]string{newRule}); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if ua, ok := e.adapter.(persist.UpdateAdapter); ok {
			if err := ua.UpdatePolicy(sec, ptype, oldRule, newRule); err != nil {
				return true, &AdapterError{Cause: err}
			}
		} else {
			if err := e.adapter.RemovePolicy(sec, ptype, oldRule); err != nil {
				return true, &AdapterError{Cause: err}
			}
			if err := e.adapter.AddPolicy(sec, ptype, newRule); err != nil {
				return true, &AdapterError{Cause: err}
			}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			if w, ok := e.watcher.(persist.WatcherEx); ok {
				return true, w.UpdateForUpdatePolicy(sec, ptype, oldRule, newRule)
			}
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func (e *Enforcer) updatePolicies(sec string, ptype string, oldRules, newRules [][]string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		return true, e.dispatcher.UpdatePolicies(sec, ptype, oldRules, newRules)
	}
	if err := e.model.UpdatePolicies(sec, ptype, oldRules, newRules); err != nil {
		return false, nil
	}
	if sec == "g" {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, oldRules); err != nil {
			return true, err
		}
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, newRules); err != nil {
			return true, err
		}
	}
	if e.adapter != nil && e.autoSave {
		if ua, ok := e.adapter.(persist.UpdateAdapter); ok {
			if err := ua.UpdatePolicies(sec, ptype, oldRules, newRules); err != nil {
				return true, &AdapterError{Cause: err}
			}
		} else {
			for i, old := range oldRules {
				if err := e.adapter.RemovePolicy(sec, ptype, old); err != nil {
					return true, &AdapterError{Cause: err}
				}
				if err := e.adapter.AddPolicy(sec, ptype, newRules[i]); err != nil {
					return true, &AdapterError{Cause: err}
				}
			}
		}
		if e.watcher != nil && e.autoNotifyWatcher {
			return true, e.watcher.Update()
		}
	}
	return true, nil
}

func toStrSlice(params []interface{}) []string {
	if len(params) == 1 {
		if rule, ok := params[0].([]string); ok {
			return rule
		}
	}
	out := make([]string, len(params))
	for i, p := range params {
		out[i], _ = p.(string)
	}
	return out
}
