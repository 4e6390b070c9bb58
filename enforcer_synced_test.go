package casbin

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

func newSyncedACLEnforcer(t *testing.T) *SyncedEnforcer {
	t.Helper()
	m, err := model.NewModelFromString(aclModelText)
	assert.NoError(t, err)
	se, err := NewSyncedEnforcer(m)
	assert.NoError(t, err)
	return se
}

func TestSyncedEnforcerEnforceAfterAddPolicy(t *testing.T) {
	se := newSyncedACLEnforcer(t)
	_, err := se.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	ok, err := se.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSyncedEnforcerConcurrentEnforceAndMutation(t *testing.T) {
	se := newSyncedACLEnforcer(t)
	_, err := se.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = se.Enforce("alice", "data1", "read")
		}()
		go func(n int) {
			defer wg.Done()
			_, _ = se.AddPolicy("bob", "data2", "write")
			_, _ = se.RemovePolicy("bob", "data2", "write")
		}(i)
	}
	wg.Wait()

	ok, err := se.Enforce("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSyncedEnforcerAutoLoadPolicyLifecycle(t *testing.T) {
	se := newSyncedACLEnforcer(t)
	assert.False(t, se.IsAutoLoadingRunning())

	se.StartAutoLoadPolicy(5 * time.Millisecond)
	assert.True(t, se.IsAutoLoadingRunning())

	// starting again while already running must be a no-op, not a
	// second goroutine or a panic closing an already-closed channel.
	se.StartAutoLoadPolicy(5 * time.Millisecond)
	assert.True(t, se.IsAutoLoadingRunning())

	time.Sleep(20 * time.Millisecond)

	se.StopAutoLoadPolicy()
	assert.False(t, se.IsAutoLoadingRunning())

	// stopping twice must not panic on an already-closed channel.
	se.StopAutoLoadPolicy()
	assert.False(t, se.IsAutoLoadingRunning())
}

func TestSyncedEnforcerRoleInheritanceUnderLock(t *testing.T) {
	m, err := model.NewModelFromString(rbacModelText)
	assert.NoError(t, err)
	se, err := NewSyncedEnforcer(m)
	assert.NoError(t, err)

	_, err = se.AddPolicy("admin", "data1", "write")
	assert.NoError(t, err)
	_, err = se.AddGroupingPolicy("alice", "admin")
	assert.NoError(t, err)

	ok, err := se.Enforce("alice", "data1", "write")
	assert.NoError(t, err)
	assert.True(t, ok)

	roles, err := se.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin"}, roles)
}
