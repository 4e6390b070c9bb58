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

// Package rbac provides interfaces for role-inheritance graph management
// used by the matcher evaluator's g(...) function bindings.
package rbac

// MatchingFunc determines whether two role-graph node names should be
// treated as equivalent, e.g. glob or keyMatch style patterns.
type MatchingFunc func(str string, pattern string) bool

// LinkConditionFunc is evaluated on traversal of a conditional edge; the
// edge is only followed when it returns true. params are bound via
// SetLinkConditionFuncParams / SetDomainLinkConditionFuncParams.
type LinkConditionFunc func(params ...string) bool

// Logger is the minimal logging surface a RoleManager needs; satisfied by
// log.Logger without creating an import cycle on the log package.
type Logger interface {
	EnableLog(bool)
	IsEnabled() bool
	LogRole([]string)
}

// RoleManager provides interfaces to deal with the role-inheritance graph of
// one grouping definition (g, g2, ...).
type RoleManager interface {
	// Clear clears all stored data and resets the role manager to the
	// initial state.
	Clear() error

	// AddLink adds the inheritance link between two roles. role1 inherits
	// role2 (i.e. role1 has role2's permissions). domain is optional.
	AddLink(name1 string, name2 string, domain ...string) error

	// DeleteLink deletes the inheritance link between two roles. domain is
	// optional.
	DeleteLink(name1 string, name2 string, domain ...string) error

	// HasLink determines whether a link exists between two roles, i.e.
	// whether name2 is reachable from name1 (considering configured
	// matching functions). domain is optional.
	HasLink(name1 string, name2 string, domain ...string) (bool, error)

	// GetRoles gets the roles (direct neighbors) that a name has. domain is
	// optional.
	GetRoles(name string, domain ...string) ([]string, error)

	// GetUsers gets the users (direct neighbors) that have a role. domain is
	// optional.
	GetUsers(name string, domain ...string) ([]string, error)

	// GetDomains gets the domains that a name has.
	GetDomains(name string) ([]string, error)

	// GetAllDomains gets all the domains known to the role manager.
	GetAllDomains() ([]string, error)

	// PrintRoles prints all the roles to the logger.
	PrintRoles() error

	// SetLogger sets the role manager's logger.
	SetLogger(logger Logger)
}

// MatchingFuncRoleManager is implemented by role managers that support
// registering pattern-matching functions for nodes and domains.
type MatchingFuncRoleManager interface {
	RoleManager

	// AddMatchingFunc adds a matching function by the name for the
	// role-manager to use. fn must be a MatchingFunc.
	AddMatchingFunc(name string, fn MatchingFunc)

	// AddDomainMatchingFunc adds a domain matching function by the name
	// for the role-manager to use. fn must be a MatchingFunc.
	AddDomainMatchingFunc(name string, fn MatchingFunc)
}

// ConditionalRoleManager is implemented by role managers that support
// attaching a traversal predicate to an inheritance edge.
type ConditionalRoleManager interface {
	RoleManager

	// AddLinkConditionFunc adds a condition function fn for the
	// inheritance link between user and role. When fn is evaluated to
	// false, the link is temporarily invalid during traversal.
	AddLinkConditionFunc(userName string, roleName string, fn LinkConditionFunc)

	// AddDomainLinkConditionFunc adds a condition function fn for the
	// inheritance link between user and role under domain.
	AddDomainLinkConditionFunc(userName string, roleName string, domain string, fn LinkConditionFunc)

	// SetLinkConditionFuncParams sets the parameters passed to the
	// condition function registered for the user-role link.
	SetLinkConditionFuncParams(userName string, roleName string, params ...string)

	// SetDomainLinkConditionFuncParams sets the parameters passed to the
	// condition function registered for the user-role link under domain.
	SetDomainLinkConditionFuncParams(userName string, roleName string, domain string, params ...string)
}
