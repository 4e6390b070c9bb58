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

// Package model parses Casbin-style model configuration text into a typed
// Model and provides the in-memory policy store (§3.1-§3.3 of the design):
// request/policy/role/effect/matcher assertions plus the add/remove/update/
// filter operations on policy and grouping rules.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/EnthuZiastic/casbin-ex2-sub003/config"
	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
	"github.com/EnthuZiastic/casbin-ex2-sub003/util"
)

// Section keys, as used to index a Model.
const (
	SectionRequest = "r"
	SectionPolicy  = "p"
	SectionRole    = "g"
	SectionEffect  = "e"
	SectionMatcher = "m"
)

var sectionNameMap = map[string]string{
	SectionRequest: "request_definition",
	SectionPolicy:  "policy_definition",
	SectionRole:    "role_definition",
	SectionEffect:  "policy_effect",
	SectionMatcher: "matchers",
}

var knownEffects = map[string]bool{
	"some(where (p.eft == allow))":                                    true,
	"!some(where (p.eft == deny))":                                    true,
	"some(where (p.eft == allow)) && !some(where (p.eft == deny))":    true,
	"priority(p.eft) || deny":                                         true,
	"subjectPriority(p.eft) || deny":                                  true,
}

// AssertionMap holds every assertion declared under one section (e.g. "p"
// and "p2" both live in the policy_definition section).
type AssertionMap map[string]*Assertion

// Model is the parsed representation of model configuration text: a
// section key ("r", "p", "g", "e", "m") mapped to its assertions.
type Model map[string]AssertionMap

// NewModel returns an empty model.
func NewModel() Model {
	return Model{}
}

// NewModelFromFile parses model configuration from a file path.
func NewModelFromFile(path string) (Model, error) {
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, err
	}
	return NewModelFromConfig(cfg)
}

// NewModelFromString parses model configuration from raw text.
func NewModelFromString(text string) (Model, error) {
	cfg, err := config.NewConfigFromText(text)
	if err != nil {
		return nil, err
	}
	return NewModelFromConfig(cfg)
}

// NewModelFromConfig builds a Model out of an already-parsed Config.
func NewModelFromConfig(cfg *config.Config) (Model, error) {
	m := NewModel()
	for sec, name := range sectionNameMap {
		for key, value := range cfg.Section(name) {
			if _, err := m.AddDef(sec, key, value); err != nil {
				return nil, err
			}
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// AddDef adds an assertion for "key" (e.g. "r", "p2") to section sec. A
// value of "" is ignored and returns (false, nil), matching Casbin's
// convention of tolerating absent optional sections.
func (m Model) AddDef(sec string, key string, value string) (bool, error) {
	if value == "" {
		return false, nil
	}

	ast := newAssertion()
	ast.Key = key
	ast.Value = value

	switch sec {
	case SectionRequest, SectionPolicy, SectionRole:
		tokens := strings.Split(value, ",")
		for i, t := range tokens {
			t = strings.TrimSpace(t)
			if !isValidTokenName(t) {
				return false, &ModelError{Msg: fmt.Sprintf("%q is not a valid token name in %s", t, key)}
			}
			tokens[i] = key + "_" + t
		}
		ast.Tokens = tokens
	case SectionMatcher:
		ast.Value = util.RemoveComments(util.EscapeAssertion(value))
	case SectionEffect:
		ast.Value = strings.TrimSpace(value)
	default:
		return false, &ModelError{Msg: fmt.Sprintf("unknown section %q", sec)}
	}

	if _, ok := m[sec]; !ok {
		m[sec] = AssertionMap{}
	}
	m[sec][key] = ast
	return true, nil
}

func isValidTokenName(t string) bool {
	if t == "" {
		return false
	}
	for i, c := range t {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// validate checks cross-assertion invariants: every e-assertion names a
// supported effect mode, and every priority-effect mode has a paired
// policy definition carrying a "priority" token.
func (m Model) validate() error {
	for ekey, eAst := range m[SectionEffect] {
		if !knownEffects[eAst.Value] {
			return &ModelError{Msg: fmt.Sprintf("unsupported policy_effect value for %q: %q", ekey, eAst.Value)}
		}
		if eAst.Value == "priority(p.eft) || deny" || eAst.Value == "subjectPriority(p.eft) || deny" {
			ptype := pairedPType(ekey)
			pAst, ok := m[SectionPolicy][ptype]
			if !ok {
				return &ModelError{Msg: fmt.Sprintf("priority effect %q has no matching policy definition %q", ekey, ptype)}
			}
			if pAst.fieldIndex(PriorityIndex) == -1 {
				return &ModelError{Msg: fmt.Sprintf("priority effect requires a %q field in policy definition %q", PriorityIndex, ptype)}
			}
		}
	}
	return nil
}

func pairedPType(ekey string) string {
	if ekey == "e" {
		return "p"
	}
	return "p" + strings.TrimPrefix(ekey, "e")
}

// fieldIndex returns the position of logical field name in the
// assertion's own token list (unprefixed), honoring any override set via
// SetFieldIndex, or -1 when absent.
func (a *Assertion) fieldIndex(name string) int {
	if i, ok := a.FieldIndexMap[name]; ok {
		return i
	}
	target := a.Key + "_" + name
	for i, t := range a.Tokens {
		if t == target {
			return i
		}
	}
	return -1
}

// SetFieldIndex overrides the position of a logical field name for ptype.
func (m Model) SetFieldIndex(ptype string, field string, index int) {
	if ast, ok := m[SectionPolicy][ptype]; ok {
		ast.FieldIndexMap[field] = index
	}
}

// Copy returns a deep-enough copy of the model for LoadPolicy's
// double-buffered reload: a fresh Model with copied assertions, sharing
// no policy slices with the original.
func (m Model) Copy() Model {
	out := NewModel()
	for sec, amap := range m {
		out[sec] = AssertionMap{}
		for key, ast := range amap {
			out[sec][key] = ast.copy()
		}
	}
	return out
}

// ClearPolicy empties every p*/g* assertion's rule data in place.
func (m Model) ClearPolicy() {
	for _, sec := range []string{SectionPolicy, SectionRole} {
		for _, ast := range m[sec] {
			ast.Policy = nil
			ast.PolicyMap = map[string]int{}
		}
	}
}

// SetLogger propagates a logger to every role manager already attached to
// a "g" assertion.
func (m Model) SetLogger(logger log.Logger) {
	for _, ast := range m[SectionRole] {
		if ast.RM != nil {
			ast.RM.SetLogger(logger)
		}
	}
}

// PrintModel logs the request/policy/role/effect/matcher definitions.
func (m Model) PrintModel(logger log.Logger) {
	if logger == nil || !logger.IsEnabled() {
		return
	}
	var lines [][]string
	for _, sec := range []string{SectionRequest, SectionPolicy, SectionRole, SectionEffect, SectionMatcher} {
		for key, ast := range m[sec] {
			lines = append(lines, []string{sec, key, ast.Value})
		}
	}
	logger.LogModel(lines)
}

// PrintPolicy logs every rule of every p*/g* assertion via the given
// logger.
func (m Model) PrintPolicy(logger log.Logger) {
	if logger == nil || !logger.IsEnabled() {
		return
	}
	snap := map[string][][]string{}
	for _, sec := range []string{SectionPolicy, SectionRole} {
		for key, ast := range m[sec] {
			snap[key] = ast.Policy
		}
	}
	logger.LogPolicy(snap)
}

// BuildRoleLinks rebuilds every "g"-section role manager from the current
// grouping policy rules.
func (m Model) BuildRoleLinks(rmMap map[string]rbac.RoleManager) error {
	for ptype, ast := range m[SectionRole] {
		rm, ok := rmMap[ptype]
		if !ok {
			continue
		}
		if err := ast.buildRoleLinks(rm); err != nil {
			return err
		}
	}
	return nil
}

// BuildIncrementalRoleLinks applies just the touched rules to the role
// manager for ptype, without rebuilding the whole graph.
func (m Model) BuildIncrementalRoleLinks(rmMap map[string]rbac.RoleManager, op PolicyOp, sec string, ptype string, rules [][]string) error {
	ast, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	rm, ok := rmMap[ptype]
	if !ok {
		return nil
	}
	ast.RM = rm
	return ast.buildIncrementalRoleLinks(rm, op, rules)
}

// SortPoliciesByPriority sorts every policy assertion paired with a
// priority-effect mode by ascending integer value of its "priority"
// field, stable on ties.
func (m Model) SortPoliciesByPriority() error {
	for ekey, eAst := range m[SectionEffect] {
		if eAst.Value != "priority(p.eft) || deny" {
			continue
		}
		ptype := pairedPType(ekey)
		ast, ok := m[SectionPolicy][ptype]
		if !ok {
			continue
		}
		idx := ast.fieldIndex(PriorityIndex)
		if idx == -1 {
			return &ModelError{Msg: fmt.Sprintf("priority effect requires a %q field in policy definition %q", PriorityIndex, ptype)}
		}
		rules := ast.Policy
		sort.SliceStable(rules, func(i, j int) bool {
			pi, _ := strconv.Atoi(rules[i][idx])
			pj, _ := strconv.Atoi(rules[j][idx])
			return pi < pj
		})
		ast.reindex()
	}
	return nil
}

// SortPoliciesBySubjectHierarchy sorts every policy assertion paired with
// the subjectPriority-effect mode so that rules whose subject sits
// deeper in the role hierarchy (a more specific grant) are considered
// before shallower ones, breaking ties by original order.
func (m Model) SortPoliciesBySubjectHierarchy() error {
	for ekey, eAst := range m[SectionEffect] {
		if eAst.Value != "subjectPriority(p.eft) || deny" {
			continue
		}
		ptype := pairedPType(ekey)
		ast, ok := m[SectionPolicy][ptype]
		if !ok {
			continue
		}
		gType := "g"
		if ptype != "p" {
			gType = "g" + strings.TrimPrefix(ptype, "p")
		}
		depth := subjectDepths(m[SectionRole][gType])

		rules := ast.Policy
		type ranked struct {
			rule []string
			d    int
			idx  int
		}
		ranked2 := make([]ranked, len(rules))
		for i, r := range rules {
			sub := ""
			if len(r) > 0 {
				sub = r[0]
			}
			ranked2[i] = ranked{rule: r, d: depth[sub], idx: i}
		}
		sort.SliceStable(ranked2, func(i, j int) bool {
			if ranked2[i].d != ranked2[j].d {
				return ranked2[i].d > ranked2[j].d
			}
			return ranked2[i].idx < ranked2[j].idx
		})
		for i, rk := range ranked2 {
			rules[i] = rk.rule
		}
		ast.reindex()
	}
	return nil
}

// subjectDepths computes, for every name appearing in a grouping
// assertion's rules, how many inheritance hops separate it from a root
// role (a role nothing else points to). Users with no grouping rule get
// depth 0. Used only to rank subjectPriority policies; not a substitute
// for RoleManager.HasLink.
func subjectDepths(gAst *Assertion) map[string]int {
	depth := map[string]int{}
	if gAst == nil {
		return depth
	}
	parents := map[string][]string{}
	for _, rule := range gAst.Policy {
		if len(rule) < 2 {
			continue
		}
		parents[rule[0]] = append(parents[rule[0]], rule[1])
	}
	var depthOf func(name string, seen map[string]bool) int
	depthOf = func(name string, seen map[string]bool) int {
		if seen[name] {
			return 0
		}
		seen[name] = true
		best := 0
		for _, p := range parents[name] {
			if d := depthOf(p, seen) + 1; d > best {
				best = d
			}
		}
		return best
	}
	for name := range parents {
		depth[name] = depthOf(name, map[string]bool{})
	}
	return depth
}

func (a *Assertion) reindex() {
	a.PolicyMap = map[string]int{}
	for i, r := range a.Policy {
		a.PolicyMap[ruleKey(r)] = i
	}
}
