package casbin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

func newManagementEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)
	return e
}

func TestAddAndGetPolicy(t *testing.T) {
	e := newManagementEnforcer(t)
	ok, err := e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok, "duplicate rule should be rejected")

	assert.ElementsMatch(t, [][]string{{"alice", "data1", "read"}}, e.GetPolicy())
}

func TestAddPoliciesAtomicDuplicateRejection(t *testing.T) {
	e := newManagementEnforcer(t)
	_, err := e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.AddPolicies([][]string{
		{"bob", "data2", "write"},
		{"alice", "data1", "read"}, // duplicate - should fail the whole batch
	})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, e.GetPolicy(), 1, "a failed AddPolicies must not partially apply")
}

func TestAddPoliciesExSkipsDuplicates(t *testing.T) {
	e := newManagementEnforcer(t)
	_, err := e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.AddPoliciesEx([][]string{
		{"bob", "data2", "write"},
		{"alice", "data1", "read"},
	})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, e.GetPolicy(), 2)
}

func TestRemovePolicy(t *testing.T) {
	e := newManagementEnforcer(t)
	_, err := e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.RemovePolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, e.GetPolicy())

	ok, err = e.RemovePolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveFilteredPolicy(t *testing.T) {
	e := newManagementEnforcer(t)
	_, _ = e.AddPolicy("alice", "data1", "read")
	_, _ = e.AddPolicy("alice", "data2", "write")
	_, _ = e.AddPolicy("bob", "data1", "read")

	ok, err := e.RemoveFilteredPolicy(0, "alice")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.ElementsMatch(t, [][]string{{"bob", "data1", "read"}}, e.GetPolicy())
}

func TestUpdatePolicy(t *testing.T) {
	e := newManagementEnforcer(t)
	_, err := e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.UpdatePolicy([]string{"alice", "data1", "read"}, []string{"alice", "data1", "write"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.ElementsMatch(t, [][]string{{"alice", "data1", "write"}}, e.GetPolicy())
}

func TestGetAllSubjectsObjectsActions(t *testing.T) {
	e := newManagementEnforcer(t)
	_, _ = e.AddPolicy("alice", "data1", "read")
	_, _ = e.AddPolicy("bob", "data2", "write")

	assert.ElementsMatch(t, []string{"alice", "bob"}, e.GetAllSubjects())
	assert.ElementsMatch(t, []string{"data1", "data2"}, e.GetAllObjects())
	assert.ElementsMatch(t, []string{"read", "write"}, e.GetAllActions())
}

func TestHasPolicy(t *testing.T) {
	e := newManagementEnforcer(t)
	assert.False(t, e.HasPolicy("alice", "data1", "read"))
	_, _ = e.AddPolicy("alice", "data1", "read")
	assert.True(t, e.HasPolicy("alice", "data1", "read"))
}

func TestGroupingPolicyCRUD(t *testing.T) {
	m, err := model.NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	ok, err := e.AddGroupingPolicy("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.ElementsMatch(t, [][]string{{"alice", "admin"}}, e.GetGroupingPolicy())

	roles, err := e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin"}, roles)

	ok, err = e.RemoveGroupingPolicy("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	roles, err = e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Empty(t, roles)
}
