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
	"github.com/EnthuZiastic/casbin-ex2-sub003/effector"
	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
	"github.com/EnthuZiastic/casbin-ex2-sub003/persist"
	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
)

// IEnforcer is the common surface of Enforcer and every wrapper built on
// top of it (SyncedEnforcer, CachedEnforcer, DistributedEnforcer), so
// callers can depend on "something that enforces" without committing to
// a concrete concurrency or caching strategy.
type IEnforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
	EnforceWithMatcher(matcher string, rvals ...interface{}) (bool, error)
	EnforceEx(rvals ...interface{}) (bool, []string, error)
	EnforceExWithMatcher(matcher string, rvals ...interface{}) (bool, []string, error)
	BatchEnforce(requests [][]interface{}) ([]bool, error)
	BatchEnforceWithMatcher(matcher string, requests [][]interface{}) ([]bool, error)

	LoadModel() error
	GetModel() model.Model
	SetModel(m model.Model)
	GetAdapter() persist.Adapter
	SetAdapter(adapter persist.Adapter)
	SetWatcher(watcher persist.Watcher) error
	GetRoleManager() rbac.RoleManager
	SetRoleManager(rm rbac.RoleManager)
	SetEffector(eft effector.Effector)
	ClearPolicy()
	LoadPolicy() error
	SavePolicy() error

	EnableEnforce(enable bool)
	EnableLog(enable bool)
	EnableAutoSave(autoSave bool)
	EnableAutoBuildRoleLinks(autoBuildRoleLinks bool)
	BuildRoleLinks() error

	GetAllSubjects() []string
	GetAllObjects() []string
	GetAllActions() []string
	GetAllRoles() []string
	GetPolicy() [][]string
	HasPolicy(params ...interface{}) bool
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)

	GetRolesForUser(name string, domain ...string) ([]string, error)
	GetUsersForRole(name string, domain ...string) ([]string, error)
	HasRoleForUser(name string, role string, domain ...string) (bool, error)
	AddRoleForUser(user string, role string, domain ...string) (bool, error)
	DeleteRoleForUser(user string, role string, domain ...string) (bool, error)
	DeleteRolesForUser(user string, domain ...string) (bool, error)
	DeleteUser(user string) (bool, error)
	DeleteRole(role string) (bool, error)
	DeletePermission(permission ...string) (bool, error)
	AddPermissionForUser(user string, permission ...string) (bool, error)
	DeletePermissionForUser(user string, permission ...string) (bool, error)
	GetPermissionsForUser(user string, domain ...string) [][]string
	HasPermissionForUser(user string, permission ...string) bool

	SetLogger(logger log.Logger)
}

var (
	_ IEnforcer = (*Enforcer)(nil)
	_ IEnforcer = (*SyncedEnforcer)(nil)
	_ IEnforcer = (*CachedEnforcer)(nil)
	_ IEnforcer = (*DistributedEnforcer)(nil)
)
