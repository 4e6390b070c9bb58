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

import (
	"fmt"
	"strings"

	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
)

// Assertion is one assertion (r, p, g, e or m definition) of a model,
// holding both its static shape (Tokens) and, for policy/grouping
// assertions, the live rule data.
type Assertion struct {
	Key   string
	Value string

	// Tokens is the ordered list of field names for r/p/g assertions,
	// namespaced with the key, e.g. "p_sub", "p_obj", "p_act".
	Tokens []string

	// Policy holds the rule tuples for p*/g* assertions, in insertion
	// order.
	Policy [][]string
	// PolicyMap indexes Policy by its joined tuple for O(1) Has/lookup.
	PolicyMap map[string]int

	// FieldIndexMap maps a logical field name ("priority", "sub", ...)
	// to its position for get_*_for_user style queries and priority
	// sorting.
	FieldIndexMap map[string]int

	// RM is the role manager backing a "g"-section assertion; nil for
	// p-section assertions.
	RM rbac.RoleManager
}

// PriorityIndex is the well-known field name used by priority-effect
// modes.
const PriorityIndex = "priority"

func newAssertion() *Assertion {
	return &Assertion{
		PolicyMap:     map[string]int{},
		FieldIndexMap: map[string]int{},
	}
}

func (a *Assertion) buildIncrementalRoleLinks(rm rbac.RoleManager, op PolicyOp, rules [][]string) error {
	count := len(a.Tokens)
	if count < 2 {
		return fmt.Errorf("the length of role definition tokens is not correct: %d", count)
	}
	for _, rule := range rules {
		if len(rule) < count {
			return fmt.Errorf("grouping rule does not match role definition: expected %d fields, got %d", count, len(rule))
		}
		var err error
		switch op {
		case PolicyAdd:
			if count == 2 {
				err = rm.AddLink(rule[0], rule[1])
			} else {
				err = rm.AddLink(rule[0], rule[1], rule[2:]...)
			}
		case PolicyRemove:
			if count == 2 {
				err = rm.DeleteLink(rule[0], rule[1])
			} else {
				err = rm.DeleteLink(rule[0], rule[1], rule[2:]...)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Assertion) buildRoleLinks(rm rbac.RoleManager) error {
	a.RM = rm
	return a.buildIncrementalRoleLinks(rm, PolicyAdd, a.Policy)
}

// copy returns a deep-enough copy for LoadPolicy's double-buffering: the
// policy slice and index are copied, RM is carried over by reference
// (rebuilt separately by BuildRoleLinks).
func (a *Assertion) copy() *Assertion {
	c := newAssertion()
	c.Key = a.Key
	c.Value = a.Value
	c.Tokens = append([]string{}, a.Tokens...)
	c.Policy = make([][]string, len(a.Policy))
	for i, p := range a.Policy {
		c.Policy[i] = append([]string{}, p...)
	}
	for k, v := range a.PolicyMap {
		c.PolicyMap[k] = v
	}
	for k, v := range a.FieldIndexMap {
		c.FieldIndexMap[k] = v
	}
	c.RM = a.RM
	return c
}

func ruleKey(rule []string) string {
	return strings.Join(rule, "\x00")
}
