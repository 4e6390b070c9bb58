package casbin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

func newInstrumentedACLEnforcer(t *testing.T) *InstrumentedEnforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	e, err := NewEnforcer(m)
	assert.NoError(t, err)
	ie, err := NewInstrumentedEnforcer(e, "casbin-instrumented-test")
	assert.NoError(t, err)
	return ie
}

func TestInstrumentedEnforcerDelegatesEnforce(t *testing.T) {
	ie := newInstrumentedACLEnforcer(t)
	_, err := ie.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := ie.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ie.Enforce("mallory", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestInstrumentedEnforcerDelegatesMutations(t *testing.T) {
	ie := newInstrumentedACLEnforcer(t)

	ok, err := ie.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ie.RemovePolicy("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	enforced, err := ie.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, enforced)
}

func TestInstrumentedEnforcerWrapsSyncedEnforcer(t *testing.T) {
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	se, err := NewSyncedEnforcer(m)
	assert.NoError(t, err)

	ie, err := NewInstrumentedEnforcer(se, "casbin-instrumented-synced-test")
	assert.NoError(t, err)

	_, err = ie.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := ie.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}
