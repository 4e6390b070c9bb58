package casbin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

const rbacMultiLevelModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newRBACEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	m, err := model.NewModelFromString(rbacMultiLevelModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)
	return e
}

func TestAddRoleForUserAndHasRoleForUser(t *testing.T) {
	e := newRBACEnforcer(t)
	ok, err := e.AddRoleForUser("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	has, err := e.HasRoleForUser("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, has)

	has, err = e.HasRoleForUser("alice", "editor")
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestDeleteRoleForUser(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddRoleForUser("alice", "admin")
	_, _ = e.AddRoleForUser("alice", "editor")

	ok, err := e.DeleteRoleForUser("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	roles, err := e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{"editor"}, roles)
}

func TestDeleteRolesForUser(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddRoleForUser("alice", "admin")
	_, _ = e.AddRoleForUser("alice", "editor")

	ok, err := e.DeleteRolesForUser("alice")
	assert.NoError(t, err)
	assert.True(t, ok)

	roles, err := e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAddPermissionForUserAndEnforce(t *testing.T) {
	e := newRBACEnforcer(t)
	_, err := e.AddPermissionForUser("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	has := e.HasPermissionForUser("alice", "data1", "read")
	assert.True(t, has)
}

func TestGetPermissionsForUser(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddPermissionForUser("alice", "data1", "read")
	_, _ = e.AddPermissionForUser("alice", "data2", "write")
	_, _ = e.AddPermissionForUser("bob", "data3", "read")

	perms := e.GetPermissionsForUser("alice")
	assert.ElementsMatch(t, [][]string{
		{"alice", "data1", "read"},
		{"alice", "data2", "write"},
	}, perms)
}

func TestGetImplicitRolesForUserTransitive(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddGroupingPolicy("alice", "admin")
	_, _ = e.AddGroupingPolicy("admin", "superadmin")

	roles, err := e.GetImplicitRolesForUser("alice")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "superadmin"}, roles)
}

func TestGetImplicitPermissionsForUserThroughRoles(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddPermissionForUser("admin", "data1", "read")
	_, _ = e.AddGroupingPolicy("alice", "admin")

	perms, err := e.GetImplicitPermissionsForUser("alice")
	assert.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"admin", "data1", "read"}}, perms)
}

const domainRBACModelText = `
[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

func TestGetPermissionsForUserStripsDomainField(t *testing.T) {
	m, err := model.NewModelFromString(domainRBACModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("alice", "tenantA", "data1", "read")
	assert.NoError(t, err)

	perms := e.GetPermissionsForUser("alice", "tenantA")
	assert.Equal(t, [][]string{{"alice", "data1", "read"}}, perms,
		"domain field must be stripped so the tuple matches GetImplicitPermissionsForUser's shape")
}

func TestGetPermissionsForUserAndImplicitAgreeOnShape(t *testing.T) {
	m, err := model.NewModelFromString(domainRBACModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("admin", "tenantA", "data1", "read")
	assert.NoError(t, err)
	_, err = e.AddGroupingPolicy("alice", "admin", "tenantA")
	assert.NoError(t, err)

	direct := e.GetPermissionsForUser("admin", "tenantA")
	implicit, err := e.GetImplicitPermissionsForUser("alice", "tenantA")
	assert.NoError(t, err)
	assert.Equal(t, direct, implicit,
		"direct and role-inherited domain-scoped permissions must come back in the same tuple shape")
}

func TestGetImplicitUsersForRole(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddGroupingPolicy("alice", "admin")
	_, _ = e.AddGroupingPolicy("bob", "admin")

	users, err := e.GetImplicitUsersForRole("admin")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

func TestDeleteUserRemovesGroupingAndPolicyRules(t *testing.T) {
	e := newRBACEnforcer(t)
	_, _ = e.AddGroupingPolicy("alice", "admin")
	_, _ = e.AddPermissionForUser("alice", "data1", "read")

	ok, err := e.DeleteUser("alice")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Empty(t, e.GetRolesForUserOrEmpty("alice"))
	assert.Empty(t, e.GetPermissionsForUser("alice"))
}

// GetRolesForUserOrEmpty is a small test-only convenience wrapping
// GetRolesForUser's error away, since this suite never expects it to
// fail once the enforcer itself constructed successfully.
func (e *Enforcer) GetRolesForUserOrEmpty(name string) []string {
	roles, _ := e.GetRolesForUser(name)
	return roles
}
