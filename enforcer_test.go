package casbin

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

const aclModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

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

const priorityModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft, priority

[policy_effect]
e = priority(p.eft) || deny

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

func newACLEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)
	_, err = e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	_, err = e.AddPolicy("bob", "data2", "write")
	assert.NoError(t, err)
	return e
}

func TestEnforceAllowsMatchingRule(t *testing.T) {
	e := newACLEnforcer(t)
	ok, err := e.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforceDeniesUnknownRequest(t *testing.T) {
	e := newACLEnforcer(t)
	ok, err := e.Enforce("alice", "data2", "write")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforceWithMatcherOverridesModel(t *testing.T) {
	e := newACLEnforcer(t)
	ok, err := e.EnforceWithMatcher(`r.sub == p.sub && r.act == p.act`, "alice", "data2", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforceExReturnsDecidingRule(t *testing.T) {
	e := newACLEnforcer(t)
	ok, explain, err := e.EnforceEx("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"alice", "data1", "read"}, explain)
}

func TestBatchEnforce(t *testing.T) {
	e := newACLEnforcer(t)
	results, err := e.BatchEnforce([][]interface{}{
		{"alice", "data1", "read"},
		{"bob", "data2", "write"},
		{"mallory", "data1", "read"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, results)
}

func TestEnableEnforceDisablesChecks(t *testing.T) {
	e := newACLEnforcer(t)
	e.EnableEnforce(false)
	ok, err := e.Enforce("mallory", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRBACEnforceThroughRoleInheritance(t *testing.T) {
	m, err := model.NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("admin", "data1", "write")
	assert.NoError(t, err)
	_, err = e.AddGroupingPolicy("alice", "admin")
	assert.NoError(t, err)

	ok, err := e.Enforce("alice", "data1", "write")
	assert.NoError(t, err)
	assert.True(t, ok, "alice should inherit admin's permission through the grouping policy")

	ok, err = e.Enforce("bob", "data1", "write")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPriorityEffectStopsAtFirstDecisiveRule(t *testing.T) {
	m, err := model.NewModelFromString(priorityModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("alice", "data1", "read", "deny", "10")
	assert.NoError(t, err)
	_, err = e.AddPolicy("alice", "data1", "read", "allow", "20")
	assert.NoError(t, err)

	ok, err := e.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok, "the higher-priority deny rule must win")
}

func TestAddFunctionIsUsableFromMatcher(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = upper(r.sub) == p.sub && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	e.AddFunction("upper", func(args ...interface{}) (interface{}, error) {
		s := args[0].(string)
		out := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			out[i] = c
		}
		return string(out), nil
	})

	_, err = e.AddPolicy("ALICE", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforceSkipsRuleWhoseMatcherErrorsAndContinues(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = numEq(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	e.AddFunction("numEq", func(args ...interface{}) (interface{}, error) {
		a, aErr := strconv.Atoi(args[0].(string))
		if aErr != nil {
			return nil, aErr
		}
		b, bErr := strconv.Atoi(args[1].(string))
		if bErr != nil {
			return nil, bErr
		}
		return a == b, nil
	})

	// the first rule's p.sub is non-numeric, so numEq errors evaluating
	// it; the second rule matches. A matcher error on one rule must not
	// abort the whole enforce call.
	_, err = e.AddPolicy("not-a-number", "data1", "read")
	assert.NoError(t, err)
	_, err = e.AddPolicy("7", "data1", "read")
	assert.NoError(t, err)

	ok, err := e.Enforce("7", "data1", "read")
	assert.NoError(t, err, "a per-rule matcher evaluation error must not be surfaced as an enforce error")
	assert.True(t, ok, "the later, error-free rule must still be evaluated and allowed")
}

func TestBuildRoleLinksRebuildsAfterDirectModelMutation(t *testing.T) {
	m, err := model.NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("admin", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, e.GetModel().AddPolicy("g", "g", []string{"alice", "admin"}))
	assert.NoError(t, e.BuildRoleLinks())

	roles, err := e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin"}, roles)
}
