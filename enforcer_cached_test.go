package casbin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

func newCachedACLEnforcer(t *testing.T) *CachedEnforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	ce, err := NewCachedEnforcer(m)
	assert.NoError(t, err)
	return ce
}

func TestCachedEnforcerReturnsCachedDecision(t *testing.T) {
	ce := newCachedACLEnforcer(t)
	_, err := ce.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	// mutate the underlying model directly, bypassing AddPolicy/cache
	// invalidation, to prove the second Enforce call is served from the
	// cache rather than re-running the matcher.
	ce.Enforcer.GetModel().RemovePolicy("p", "p", []string{"alice", "data1", "read"})

	ok, err = ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok, "stale cached decision should still be served")
}

func TestCachedEnforcerInvalidatesOnAddPolicy(t *testing.T) {
	ce := newCachedACLEnforcer(t)
	ok, err := ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = ce.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err = ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok, "AddPolicy must invalidate the cache so the new rule is seen")
}

func TestCachedEnforcerDisableCacheBypassesIt(t *testing.T) {
	ce := newCachedACLEnforcer(t)
	ce.EnableCache(false)

	_, err := ce.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	ce.Enforcer.GetModel().RemovePolicy("p", "p", []string{"alice", "data1", "read"})

	ok, err = ce.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok, "with caching disabled every call must re-evaluate")
}

func TestCachedEnforcerSetCacheCapacityEvicts(t *testing.T) {
	ce := newCachedACLEnforcer(t)
	ce.SetCacheCapacity(2)

	_, err := ce.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	_, err = ce.AddPolicy("bob", "data2", "write")
	assert.NoError(t, err)
	_, err = ce.AddPolicy("carol", "data3", "read")
	assert.NoError(t, err)

	_, _ = ce.Enforce("alice", "data1", "read")
	_, _ = ce.Enforce("bob", "data2", "write")
	_, _ = ce.Enforce("carol", "data3", "read")

	_, hit := ce.cache.get(cacheKey([]interface{}{"alice", "data1", "read"}))
	assert.False(t, hit, "oldest entry should have been evicted at capacity 2")

	_, hit = ce.cache.get(cacheKey([]interface{}{"carol", "data3", "read"}))
	assert.True(t, hit)
}
