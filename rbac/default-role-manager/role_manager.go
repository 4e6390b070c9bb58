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

// Package defaultrolemanager provides the default implementation of the
// rbac.RoleManager interface: a directed inheritance graph, one per
// grouping definition, with optional pattern-matching and conditional
// edges.
package defaultrolemanager

import (
	"errors"
	"sync"

	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
)

const defaultDomain = ""

// role is a single node in the inheritance graph: a name plus the set of
// roles it directly inherits from (its "parents").
type role struct {
	name    string
	parents map[string]*role
}

func newRole(name string) *role {
	return &role{name: name, parents: map[string]*role{}}
}

func (r *role) addParent(p *role) {
	r.parents[p.name] = p
}

func (r *role) removeParent(name string) {
	delete(r.parents, name)
}

type condEntry struct {
	fn     rbac.LinkConditionFunc
	params []string
}

// RoleManager is the default, in-memory RoleManager implementation. It is
// safe for concurrent use: reads share its RWMutex, and writes
// (AddLink/DeleteLink/Clear) hold it exclusively.
type RoleManager struct {
	mu sync.RWMutex

	maxHierarchyLevel int

	// roles[domain][name] holds every node referenced by an edge endpoint
	// or an AddLink call; DeleteLink prunes nodes left without edges.
	roles map[string]map[string]*role
	// children[domain][name] holds the reverse edges for GetUsers.
	children map[string]map[string]map[string]struct{}

	matchingFunc       rbac.MatchingFunc
	domainMatchingFunc rbac.MatchingFunc

	// conditions[domain][user][role] gates traversal of a direct edge.
	conditions map[string]map[string]map[string]*condEntry

	logger rbac.Logger
}

// NewRoleManager creates a RoleManager with the given maximum hierarchy
// traversal depth (matches Casbin's constructor signature).
func NewRoleManager(maxHierarchyLevel int) *RoleManager {
	if maxHierarchyLevel <= 0 {
		maxHierarchyLevel = 10
	}
	rm := &RoleManager{maxHierarchyLevel: maxHierarchyLevel}
	_ = rm.Clear()
	return rm
}

// Clear implements rbac.RoleManager.
func (rm *RoleManager) Clear() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.roles = map[string]map[string]*role{defaultDomain: {}}
	rm.children = map[string]map[string]map[string]struct{}{defaultDomain: {}}
	rm.conditions = map[string]map[string]map[string]*condEntry{}
	return nil
}

// SetLogger implements rbac.RoleManager.
func (rm *RoleManager) SetLogger(logger rbac.Logger) {
	rm.logger = logger
}

// AddMatchingFunc implements rbac.MatchingFuncRoleManager.
func (rm *RoleManager) AddMatchingFunc(name string, fn rbac.MatchingFunc) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.matchingFunc = fn
}

// AddDomainMatchingFunc implements rbac.MatchingFuncRoleManager.
func (rm *RoleManager) AddDomainMatchingFunc(name string, fn rbac.MatchingFunc) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.domainMatchingFunc = fn
}

func domainOf(domain []string) string {
	if len(domain) == 0 {
		return defaultDomain
	}
	return domain[0]
}

func (rm *RoleManager) domainMap(domain string) map[string]*role {
	d, ok := rm.roles[domain]
	if !ok {
		d = map[string]*role{}
		rm.roles[domain] = d
		rm.children[domain] = map[string]map[string]struct{}{}
	}
	return d
}

func (rm *RoleManager) getOrCreate(domain string, name string) *role {
	d := rm.domainMap(domain)
	r, ok := d[name]
	if !ok {
		r = newRole(name)
		d[name] = r
	}
	return r
}

func (rm *RoleManager) addChild(domain, parent, child string) {
	dc := rm.children[domain]
	if dc == nil {
		dc = map[string]map[string]struct{}{}
		rm.children[domain] = dc
	}
	set, ok := dc[parent]
	if !ok {
		set = map[string]struct{}{}
		dc[parent] = set
	}
	set[child] = struct{}{}
}

func (rm *RoleManager) removeChild(domain, parent, child string) {
	if dc, ok := rm.children[domain]; ok {
		if set, ok := dc[parent]; ok {
			delete(set, child)
			if len(set) == 0 {
				delete(dc, parent)
			}
		}
	}
}

// AddLink implements rbac.RoleManager. Idempotent: adding the same link
// twice is a no-op.
func (rm *RoleManager) AddLink(name1 string, name2 string, domain ...string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	d := domainOf(domain)
	user := rm.getOrCreate(d, name1)
	parent := rm.getOrCreate(d, name2)
	user.addParent(parent)
	rm.addChild(d, name2, name1)
	return nil
}

// DeleteLink implements rbac.RoleManager. Orphaned nodes (no remaining
// parents or children) are pruned.
func (rm *RoleManager) DeleteLink(name1 string, name2 string, domain ...string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	d := domainOf(domain)
	dmap, ok := rm.roles[d]
	if !ok {
		return errors.New("error: name1 or name2 does not exist")
	}
	user, ok1 := dmap[name1]
	_, ok2 := dmap[name2]
	if !ok1 || !ok2 {
		return errors.New("error: name1 or name2 does not exist")
	}
	user.removeParent(name2)
	rm.removeChild(d, name2, name1)

	if condMap, ok := rm.conditions[d]; ok {
		if userConds, ok := condMap[name1]; ok {
			delete(userConds, name2)
		}
	}
	rm.pruneIfOrphan(d, name1)
	rm.pruneIfOrphan(d, name2)
	return nil
}

func (rm *RoleManager) pruneIfOrphan(domain, name string) {
	dmap := rm.roles[domain]
	r, ok := dmap[name]
	if !ok {
		return
	}
	hasChildren := len(rm.children[domain][name]) > 0
	if len(r.parents) == 0 && !hasChildren {
		delete(dmap, name)
	}
}

// nodesMatching returns every node in dmap whose name equals, or (when a
// matching function is configured) pattern-matches in either direction,
// the queried name.
func (rm *RoleManager) nodesMatching(dmap map[string]*role, name string) []*role {
	var res []*role
	if r, ok := dmap[name]; ok {
		res = append(res, r)
	}
	if rm.matchingFunc != nil {
		for key, r := range dmap {
			if key == name {
				continue
			}
			if rm.matchingFunc(name, key) || rm.matchingFunc(key, name) {
				res = append(res, r)
			}
		}
	}
	return res
}

func (rm *RoleManager) namesMatch(a, b string) bool {
	if a == b {
		return true
	}
	if rm.matchingFunc != nil {
		return rm.matchingFunc(a, b) || rm.matchingFunc(b, a)
	}
	return false
}

// domainsToSearch returns the queried domain plus any other known domain
// that pattern-matches it when a domain matching function is configured.
func (rm *RoleManager) domainsToSearch(domain string) []string {
	if rm.domainMatchingFunc == nil {
		return []string{domain}
	}
	res := []string{domain}
	for d := range rm.roles {
		if d == domain {
			continue
		}
		if rm.domainMatchingFunc(domain, d) || rm.domainMatchingFunc(d, domain) {
			res = append(res, d)
		}
	}
	return res
}

func (rm *RoleManager) condition(domain, user, roleName string) *condEntry {
	if dm, ok := rm.conditions[domain]; ok {
		if um, ok := dm[user]; ok {
			return um[roleName]
		}
	}
	return nil
}

// HasLink implements rbac.RoleManager. name2 is reachable from name1 if
// there is a directed path of inheritance edges from name1 to name2,
// subject to configured matching functions, conditional edges and the
// manager's maximum hierarchy level.
func (rm *RoleManager) HasLink(name1 string, name2 string, domain ...string) (bool, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if name1 == name2 {
		return true, nil
	}

	d := domainOf(domain)
	visited := map[string]struct{}{}

	for _, dom := range rm.domainsToSearch(d) {
		dmap, ok := rm.roles[dom]
		if !ok {
			continue
		}
		ok, err := rm.hasLinkInDomain(dmap, dom, name1, name2, 0, visited)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (rm *RoleManager) hasLinkInDomain(dmap map[string]*role, domain, cur, target string, depth int, visited map[string]struct{}) (bool, error) {
	if rm.namesMatch(cur, target) {
		return true, nil
	}
	if depth >= rm.maxHierarchyLevel {
		// Truncates the search rather than surfacing RoleGraphError:
		// a legitimately deep but finite hierarchy would otherwise
		// fail has-link checks outright instead of just missing
		// reachability past the configured bound.
		return false, nil
	}
	if _, ok := visited[cur]; ok {
		return false, nil
	}
	visited[cur] = struct{}{}

	for _, node := range rm.nodesMatching(dmap, cur) {
		for parentName, parent := range node.parents {
			if cond := rm.condition(domain, node.name, parentName); cond != nil {
				if !cond.fn(cond.params...) {
					continue
				}
			}
			ok, err := rm.hasLinkInDomain(dmap, domain, parent.name, target, depth+1, visited)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// GetRoles implements rbac.RoleManager: direct parents only.
func (rm *RoleManager) GetRoles(name string, domain ...string) ([]string, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	d := domainOf(domain)
	dmap, ok := rm.roles[d]
	if !ok {
		return []string{}, nil
	}
	r, ok := dmap[name]
	if !ok {
		return []string{}, nil
	}
	res := make([]string, 0, len(r.parents))
	for name := range r.parents {
		res = append(res, name)
	}
	return res, nil
}

// GetUsers implements rbac.RoleManager: direct children only.
func (rm *RoleManager) GetUsers(name string, domain ...string) ([]string, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	d := domainOf(domain)
	dc, ok := rm.children[d]
	if !ok {
		return []string{}, nil
	}
	set, ok := dc[name]
	if !ok {
		return []string{}, nil
	}
	res := make([]string, 0, len(set))
	for name := range set {
		res = append(res, name)
	}
	return res, nil
}

// GetDomains implements rbac.RoleManager.
func (rm *RoleManager) GetDomains(name string) ([]string, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	res := make([]string, 0)
	for d, dmap := range rm.roles {
		if _, ok := dmap[name]; ok {
			res = append(res, d)
		}
	}
	return res, nil
}

// GetAllDomains implements rbac.RoleManager.
func (rm *RoleManager) GetAllDomains() ([]string, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	res := make([]string, 0, len(rm.roles))
	for d := range rm.roles {
		res = append(res, d)
	}
	return res, nil
}

// PrintRoles implements rbac.RoleManager.
func (rm *RoleManager) PrintRoles() error {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if rm.logger == nil || !rm.logger.IsEnabled() {
		return nil
	}
	var lines []string
	for domain, dmap := range rm.roles {
		for name, r := range dmap {
			for parent := range r.parents {
				if domain == defaultDomain {
					lines = append(lines, name+" < "+parent)
				} else {
					lines = append(lines, name+" < "+parent+" in "+domain)
				}
			}
		}
	}
	rm.logger.LogRole(lines)
	return nil
}

// AddLinkConditionFunc implements rbac.ConditionalRoleManager.
func (rm *RoleManager) AddLinkConditionFunc(user string, roleName string, fn rbac.LinkConditionFunc) {
	rm.AddDomainLinkConditionFunc(user, roleName, defaultDomain, fn)
}

// AddDomainLinkConditionFunc implements rbac.ConditionalRoleManager.
func (rm *RoleManager) AddDomainLinkConditionFunc(user string, roleName string, domain string, fn rbac.LinkConditionFunc) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.conditions == nil {
		rm.conditions = map[string]map[string]map[string]*condEntry{}
	}
	dm, ok := rm.conditions[domain]
	if !ok {
		dm = map[string]map[string]*condEntry{}
		rm.conditions[domain] = dm
	}
	um, ok := dm[user]
	if !ok {
		um = map[string]*condEntry{}
		dm[user] = um
	}
	entry, ok := um[roleName]
	if !ok {
		entry = &condEntry{}
		um[roleName] = entry
	}
	entry.fn = fn
}

// SetLinkConditionFuncParams implements rbac.ConditionalRoleManager.
func (rm *RoleManager) SetLinkConditionFuncParams(user string, roleName string, params ...string) {
	rm.SetDomainLinkConditionFuncParams(user, roleName, defaultDomain, params...)
}

// SetDomainLinkConditionFuncParams implements rbac.ConditionalRoleManager.
func (rm *RoleManager) SetDomainLinkConditionFuncParams(user string, roleName string, domain string, params ...string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if dm, ok := rm.conditions[domain]; ok {
		if um, ok := dm[user]; ok {
			if entry, ok := um[roleName]; ok {
				entry.params = params
				return
			}
		}
	}
}

var (
	_ rbac.RoleManager              = (*RoleManager)(nil)
	_ rbac.MatchingFuncRoleManager  = (*RoleManager)(nil)
	_ rbac.ConditionalRoleManager   = (*RoleManager)(nil)
)
