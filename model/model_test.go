package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const rbacModelText = `
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

func TestNewModelFromString(t *testing.T) {
	m, err := NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	assert.Contains(t, m, SectionRequest)
	assert.Contains(t, m["r"], "r")
	assert.Equal(t, []string{"r_sub", "r_obj", "r_act"}, m["r"]["r"].Tokens)
	assert.Equal(t, "g(r_sub, p_sub) && r_obj == p_obj && r_act == p_act", m["m"]["m"].Value)
}

func TestAddDefEmptyValueIgnored(t *testing.T) {
	m := NewModel()
	ok, err := m.AddDef("p", "p", "")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPolicyCRUD(t *testing.T) {
	m, err := NewModelFromString(rbacModelText)
	assert.NoError(t, err)

	assert.True(t, m.AddPolicy("p", "p", []string{"alice", "data1", "read"}))
	assert.False(t, m.AddPolicy("p", "p", []string{"alice", "data1", "read"}))
	assert.True(t, m.HasPolicy("p", "p", []string{"alice", "data1", "read"}))

	assert.True(t, m.AddPolicies("p", "p", [][]string{
		{"bob", "data2", "write"},
		{"carol", "data3", "read"},
	}, false))
	assert.Len(t, m.GetPolicy("p", "p"), 3)

	filtered := m.GetFilteredPolicy("p", "p", 2, "read")
	assert.Len(t, filtered, 2)

	assert.True(t, m.RemovePolicy("p", "p", []string{"bob", "data2", "write"}))
	assert.False(t, m.RemovePolicy("p", "p", []string{"bob", "data2", "write"}))
	assert.Len(t, m.GetPolicy("p", "p"), 2)

	err = m.UpdatePolicy("p", "p", []string{"alice", "data1", "read"}, []string{"alice", "data1", "write"})
	assert.NoError(t, err)
	assert.True(t, m.HasPolicy("p", "p", []string{"alice", "data1", "write"}))
}

func TestRemoveFilteredPolicy(t *testing.T) {
	m, _ := NewModelFromString(rbacModelText)
	m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	m.AddPolicy("p", "p", []string{"alice", "data2", "read"})
	m.AddPolicy("p", "p", []string{"bob", "data1", "write"})

	ok, removed := m.RemoveFilteredPolicy("p", "p", 0, "alice")
	assert.True(t, ok)
	assert.Len(t, removed, 2)
	assert.Len(t, m.GetPolicy("p", "p"), 1)
}

func TestPriorityEffectRequiresPriorityField(t *testing.T) {
	text := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = priority(p.eft) || deny

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`
	_, err := NewModelFromString(text)
	assert.Error(t, err)
	var merr *ModelError
	assert.ErrorAs(t, err, &merr)
}

func TestPriorityEffectWithPriorityFieldLoads(t *testing.T) {
	text := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, priority, eft

[role_definition]
g = _, _

[policy_effect]
e = priority(p.eft) || deny

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`
	m, err := NewModelFromString(text)
	assert.NoError(t, err)
	assert.Equal(t, 3, m.GetFieldIndex("p", "priority"))
}

func TestUnsupportedEffectRejected(t *testing.T) {
	text := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = bogus(p.eft)

[matchers]
m = r.sub == p.sub
`
	_, err := NewModelFromString(text)
	assert.Error(t, err)
}

func TestSortPoliciesByPriority(t *testing.T) {
	text := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, priority, eft

[role_definition]
g = _, _

[policy_effect]
e = priority(p.eft) || deny

[matchers]
m = r.sub == p.sub
`
	m, err := NewModelFromString(text)
	assert.NoError(t, err)
	m.AddPolicy("p", "p", []string{"alice", "data1", "read", "20", "allow"})
	m.AddPolicy("p", "p", []string{"alice", "data1", "read", "10", "deny"})

	assert.NoError(t, m.SortPoliciesByPriority())
	rules := m.GetPolicy("p", "p")
	assert.Equal(t, "10", rules[0][3])
	assert.Equal(t, "20", rules[1][3])
}

func TestCopyIsIndependent(t *testing.T) {
	m, _ := NewModelFromString(rbacModelText)
	m.AddPolicy("p", "p", []string{"alice", "data1", "read"})

	c := m.Copy()
	c.AddPolicy("p", "p", []string{"bob", "data2", "write"})

	assert.Len(t, m.GetPolicy("p", "p"), 1)
	assert.Len(t, c.GetPolicy("p", "p"), 2)
}

func TestClearPolicy(t *testing.T) {
	m, _ := NewModelFromString(rbacModelText)
	m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	m.ClearPolicy()
	assert.Len(t, m.GetPolicy("p", "p"), 0)
}
