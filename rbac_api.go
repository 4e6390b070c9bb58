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

// GetRolesForUser returns the roles directly assigned to name under the
// default "g" definition.
func (e *Enforcer) GetRolesForUser(name string, domain ...string) ([]string, error) {
	rm, ok := e.rmMap["g"]
	if !ok {
		return nil, nil
	}
	return rm.GetRoles(name, domain...)
}

// GetUsersForRole returns the users directly holding name under the
// default "g" definition.
func (e *Enforcer) GetUsersForRole(name string, domain ...string) ([]string, error) {
	rm, ok := e.rmMap["g"]
	if !ok {
		return nil, nil
	}
	return rm.GetUsers(name, domain...)
}

// HasRoleForUser reports whether name has been assigned role, directly
// or transitively.
func (e *Enforcer) HasRoleForUser(name string, role string, domain ...string) (bool, error) {
	roles, err := e.GetImplicitRolesForUser(name, domain...)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// AddRoleForUser assigns role to user.
func (e *Enforcer) AddRoleForUser(user string, role string, domain ...string) (bool, error) {
	return e.AddGroupingPolicy(append([]string{user, role}, domain...))
}

// DeleteRoleForUser revokes role from user.
func (e *Enforcer) DeleteRoleForUser(user string, role string, domain ...string) (bool, error) {
	return e.RemoveGroupingPolicy(append([]string{user, role}, domain...))
}

// DeleteRolesForUser revokes every role user directly holds.
func (e *Enforcer) DeleteRolesForUser(user string, domain ...string) (bool, error) {
	if len(domain) == 0 {
		return e.RemoveFilteredGroupingPolicy(0, user)
	}
	return e.RemoveFilteredGroupingPolicy(0, user, domain[0])
}

// DeleteUser removes every grouping and policy rule naming user as the
// subject.
func (e *Enforcer) DeleteUser(user string) (bool, error) {
	res1, err := e.RemoveFilteredGroupingPolicy(0, user)
	if err != nil {
		return res1, err
	}
	res2, err := e.RemoveFilteredPolicy(0, user)
	return res1 || res2, err
}

// DeleteRole removes role from every grouping rule (as user or as role)
// and every policy rule naming it as the subject.
func (e *Enforcer) DeleteRole(role string) (bool, error) {
	res1, err := e.RemoveFilteredGroupingPolicy(0, role)
	if err != nil {
		return res1, err
	}
	res2, err := e.RemoveFilteredGroupingPolicy(1, role)
	if err != nil {
		return res1 || res2, err
	}
	res3, err := e.RemoveFilteredPolicy(0, role)
	return res1 || res2 || res3, err
}

// DeletePermission removes every "p" rule granting exactly
// (object, action, ...) to any subject.
func (e *Enforcer) DeletePermission(permission ...string) (bool, error) {
	return e.RemoveFilteredPolicy(1, permission...)
}

// AddPermissionForUser grants permission (object, action, ...) to user.
func (e *Enforcer) AddPermissionForUser(user string, permission ...string) (bool, error) {
	return e.AddPolicy(append([]string{user}, permission...))
}

// AddPermissionsForUser grants every permission in permissions to user,
// atomically.
func (e *Enforcer) AddPermissionsForUser(user string, permissions ...[]string) (bool, error) {
	rules := make([][]string, len(permissions))
	for i, p := range permissions {
		rules[i] = append([]string{user}, p...)
	}
	return e.AddPolicies(rules)
}

// DeletePermissionForUser revokes permission (object, action, ...) from
// user.
func (e *Enforcer) DeletePermissionForUser(user string, permission ...string) (bool, error) {
	return e.RemovePolicy(append([]string{user}, permission...))
}

// DeletePermissionsForUser revokes every "p" rule naming user as the
// subject.
func (e *Enforcer) DeletePermissionsForUser(user string) (bool, error) {
	return e.RemoveFilteredPolicy(0, user)
}

// GetPermissionsForUser returns every "p" rule naming user as the
// subject directly (not transitively through role inheritance). When
// domain is given, a rule's own domain field is stripped from the
// returned tuple iff it equals the requested domain, so the shape
// matches GetImplicitPermissionsForUser's.
func (e *Enforcer) GetPermissionsForUser(user string, domain ...string) [][]string {
	if len(domain) == 0 {
		return e.GetFilteredPolicy(0, user)
	}
	return e.getFilteredPolicyWithDomain(user, domain[0])
}

func (e *Enforcer) getFilteredPolicyWithDomain(user string, domain string) [][]string {
	domIdx := e.model.GetFieldIndex("p", "dom")
	if domIdx == -1 {
		return e.GetFilteredPolicy(0, user)
	}
	var out [][]string
	for _, rule := range e.GetFilteredPolicy(0, user) {
		if domIdx >= len(rule) || rule[domIdx] != domain {
			continue
		}
		out = append(out, stripDomainField(rule, domIdx, domain))
	}
	return out
}

// stripDomainField removes rule's domain field at domIdx when it
// equals domain, so domain-scoped permission tuples come back in the
// same (sub, obj, act, ...) shape whether they were granted directly
// or reached through role inheritance.
func stripDomainField(rule []string, domIdx int, domain string) []string {
	if domIdx == -1 || domIdx >= len(rule) || rule[domIdx] != domain {
		return rule
	}
	return append(append([]string{}, rule[:domIdx]...), rule[domIdx+1:]...)
}

// HasPermissionForUser reports whether user has been granted permission
// directly (see GetPermissionsForUser).
func (e *Enforcer) HasPermissionForUser(user string, permission ...string) bool {
	return e.model.HasPolicy("p", "p", append([]string{user}, permission...))
}

// GetImplicitRolesForUser returns every role reachable from name,
// directly or transitively, through every "g*" definition combined.
func (e *Enforcer) GetImplicitRolesForUser(name string, domain ...string) ([]string, error) {
	seen := map[string]bool{name: true}
	queue := []string{name}
	var roles []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for ptype, rm := range e.rmMap {
			if ptype == "" {
				continue
			}
			next, err := rm.GetRoles(cur, domain...)
			if err != nil {
				continue
			}
			for _, r := range next {
				if !seen[r] {
					seen[r] = true
					roles = append(roles, r)
					queue = append(queue, r)
				}
			}
		}
	}
	return roles, nil
}

// GetImplicitUsersForRole returns every user that transitively holds
// role, the inverse of GetImplicitRolesForUser.
func (e *Enforcer) GetImplicitUsersForRole(name string, domain ...string) ([]string, error) {
	seen := map[string]bool{name: true}
	queue := []string{name}
	var users []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, rm := range e.rmMap {
			prev, err := rm.GetUsers(cur, domain...)
			if err != nil {
				continue
			}
			for _, u := range prev {
				if !seen[u] {
					seen[u] = true
					users = append(users, u)
					queue = append(queue, u)
				}
			}
		}
	}
	return users, nil
}

// GetImplicitPermissionsForUser returns every permission granted to
// name, directly or via any role reachable from it. When domain is
// given, a permission rule's own domain field is stripped out of the
// returned tuple iff it equals the requested domain, so the result
// shape always matches GetPermissionsForUser's (sub, obj, act, ...).
func (e *Enforcer) GetImplicitPermissionsForUser(name string, domain ...string) ([][]string, error) {
	roles, err := e.GetImplicitRolesForUser(name, domain...)
	if err != nil {
		return nil, err
	}
	subjects := append([]string{name}, roles...)

	domIdx := e.model.GetFieldIndex("p", "dom")
	var out [][]string
	seen := map[string]bool{}
	for _, sub := range subjects {
		for _, rule := range e.model.GetFilteredPolicy("p", "p", 0, sub) {
			out2 := rule
			if len(domain) > 0 {
				if domIdx == -1 || domIdx >= len(rule) || rule[domIdx] != domain[0] {
					continue
				}
				out2 = stripDomainField(rule, domIdx, domain[0])
			}
			if joined := rowKey(out2); !seen[joined] {
				seen[joined] = true
				out = append(out, out2)
			}
		}
	}
	return out, nil
}

func rowKey(rule []string) string {
	s := ""
	for _, v := range rule {
		s += v + "\x00"
	}
	return s
}

// GetImplicitUsersForPermission returns every user who, directly or
// through role inheritance, is granted permission.
func (e *Enforcer) GetImplicitUsersForPermission(permission ...string) ([]string, error) {
	pSubjects := e.GetAllSubjects()
	gSubjects := e.model.GetValuesForFieldInPolicy("g", "g", 0)
	gInherit := e.model.GetValuesForFieldInPolicy("g", "g", 1)

	var result []string
	seen := map[string]bool{}
	for _, sub := range append(pSubjects, gSubjects...) {
		isRole := false
		for _, r := range gInherit {
			if r == sub {
				isRole = true
				break
			}
		}
		if isRole {
			continue
		}
		allowed, err := e.Enforce(append([]string{sub}, permission...)...)
		if err == nil && allowed && !seen[sub] {
			seen[sub] = true
			result = append(result, sub)
		}
	}
	return result, nil
}
