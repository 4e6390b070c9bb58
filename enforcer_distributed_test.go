package casbin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

func newDistributedACLEnforcer(t *testing.T) *DistributedEnforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	de, err := NewDistributedEnforcer(m)
	assert.NoError(t, err)
	return de
}

func TestDistributedEnforcerHasUniqueNodeID(t *testing.T) {
	d1 := newDistributedACLEnforcer(t)
	d2 := newDistributedACLEnforcer(t)
	assert.NotEqual(t, d1.NodeID, d2.NodeID)
}

func TestDistributedEnforcerAddPoliciesSelfAppliesLocallyOnly(t *testing.T) {
	d := newDistributedACLEnforcer(t)

	affected := d.AddPoliciesSelf("p", "p", [][]string{
		{"alice", "data1", "read"},
		{"bob", "data2", "write"},
	})
	assert.ElementsMatch(t, [][]string{{"alice", "data1", "read"}, {"bob", "data2", "write"}}, affected)

	ok, err := d.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestDistributedEnforcerAddPoliciesSelfSkipsExisting(t *testing.T) {
	d := newDistributedACLEnforcer(t)
	d.AddPoliciesSelf("p", "p", [][]string{{"alice", "data1", "read"}})

	affected := d.AddPoliciesSelf("p", "p", [][]string{
		{"alice", "data1", "read"},
		{"bob", "data2", "write"},
	})
	assert.ElementsMatch(t, [][]string{{"bob", "data2", "write"}}, affected)
}

func TestDistributedEnforcerRemovePoliciesSelf(t *testing.T) {
	d := newDistributedACLEnforcer(t)
	d.AddPoliciesSelf("p", "p", [][]string{
		{"alice", "data1", "read"},
		{"bob", "data2", "write"},
	})

	affected := d.RemovePoliciesSelf("p", "p", [][]string{{"alice", "data1", "read"}})
	assert.Equal(t, [][]string{{"alice", "data1", "read"}}, affected)

	ok, err := d.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = d.Enforce("bob", "data2", "write")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestDistributedEnforcerRemoveFilteredPolicySelf(t *testing.T) {
	d := newDistributedACLEnforcer(t)
	d.AddPoliciesSelf("p", "p", [][]string{
		{"alice", "data1", "read"},
		{"alice", "data2", "write"},
		{"bob", "data1", "read"},
	})

	removed := d.RemoveFilteredPolicySelf("p", "p", 0, "alice")
	assert.Len(t, removed, 2)

	ok, err := d.Enforce("bob", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestDistributedEnforcerClearPolicySelf(t *testing.T) {
	d := newDistributedACLEnforcer(t)
	d.AddPoliciesSelf("p", "p", [][]string{{"alice", "data1", "read"}})

	d.ClearPolicySelf()

	ok, err := d.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDistributedEnforcerRebuildsRoleLinksOnGroupingMutation(t *testing.T) {
	m, err := model.NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	d, err := NewDistributedEnforcer(m)
	assert.NoError(t, err)

	d.AddPoliciesSelf("p", "p", [][]string{{"admin", "data1", "write"}})
	d.AddPoliciesSelf("g", "g", [][]string{{"alice", "admin"}})

	ok, err := d.Enforce("alice", "data1", "write")
	assert.NoError(t, err)
	assert.True(t, ok, "role link should rebuild after a grouping mutation applied via AddPoliciesSelf")
}
