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
	"sync"
	"time"
)

// SyncedEnforcer wraps Enforcer with a single RWMutex shared by policy
// reads, policy mutations, and role-manager traversal: the model and the
// role managers derived from it are never safe to touch independently,
// so one lock covers both rather than one per concern.
type SyncedEnforcer struct {
	*Enforcer
	mu             sync.RWMutex
	stopAutoLoad   chan struct{}
	autoLoadRunning bool
}

// NewSyncedEnforcer wraps NewEnforcer's result for concurrent use.
func NewSyncedEnforcer(params ...interface{}) (*SyncedEnforcer, error) {
	e, err := NewEnforcer(params...)
	if err != nil {
		return nil, err
	}
	return &SyncedEnforcer{Enforcer: e}, nil
}

// StartAutoLoadPolicy reloads the policy from the adapter every interval
// on a background goroutine, until StopAutoLoadPolicy is called.
func (se *SyncedEnforcer) StartAutoLoadPolicy(interval time.Duration) {
	se.mu.Lock()
	if se.autoLoadRunning {
		se.mu.Unlock()
		return
	}
	se.autoLoadRunning = true
	se.stopAutoLoad = make(chan struct{})
	stop := se.stopAutoLoad
	se.mu.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := se.LoadPolicy(); err != nil {
					se.Enforcer.logger.LogError(err, "auto load policy")
				}
			case <-stop:
				return
			}
		}
	}()
}

// IsAutoLoadingRunning reports whether a background auto-load loop is
// currently active.
func (se *SyncedEnforcer) IsAutoLoadingRunning() bool {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.autoLoadRunning
}

// StopAutoLoadPolicy stops a running auto-load loop, if any.
func (se *SyncedEnforcer) StopAutoLoadPolicy() {
	se.mu.Lock()
	defer se.mu.Unlock()
	if !se.autoLoadRunning {
		return
	}
	close(se.stopAutoLoad)
	se.autoLoadRunning = false
}

// Enforce decides rvals under a read lock.
func (se *SyncedEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.Enforce(rvals...)
}

// EnforceWithMatcher decides rvals against matcher under a read lock.
func (se *SyncedEnforcer) EnforceWithMatcher(matcher string, rvals ...interface{}) (bool, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.EnforceWithMatcher(matcher, rvals...)
}

// EnforceEx decides rvals under a read lock, also returning the
// deciding rule.
func (se *SyncedEnforcer) EnforceEx(rvals ...interface{}) (bool, []string, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.EnforceEx(rvals...)
}

// EnforceExWithMatcher is EnforceEx against a custom matcher.
func (se *SyncedEnforcer) EnforceExWithMatcher(matcher string, rvals ...interface{}) (bool, []string, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.EnforceExWithMatcher(matcher, rvals...)
}

// BatchEnforce decides every request under a single read lock.
func (se *SyncedEnforcer) BatchEnforce(requests [][]interface{}) ([]bool, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.BatchEnforce(requests)
}

// BatchEnforceWithMatcher is BatchEnforce against a custom matcher.
func (se *SyncedEnforcer) BatchEnforceWithMatcher(matcher string, requests [][]interface{}) ([]bool, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.BatchEnforceWithMatcher(matcher, requests)
}

// LoadPolicy reloads the policy under a write lock.
func (se *SyncedEnforcer) LoadPolicy() error {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.LoadPolicy()
}

// SavePolicy persists the policy under a read lock (it only reads the
// model, it does not mutate it).
func (se *SyncedEnforcer) SavePolicy() error {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.SavePolicy()
}

// ClearPolicy removes every rule under a write lock.
func (se *SyncedEnforcer) ClearPolicy() {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.Enforcer.ClearPolicy()
}

// BuildRoleLinks rebuilds every role manager's graph under a write lock.
func (se *SyncedEnforcer) BuildRoleLinks() error {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.BuildRoleLinks()
}

// AddPolicy adds a "p" rule under a write lock.
func (se *SyncedEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.AddPolicy(params...)
}

// RemovePolicy removes a "p" rule under a write lock.
func (se *SyncedEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.RemovePolicy(params...)
}

// AddGroupingPolicy adds a "g" rule under a write lock.
func (se *SyncedEnforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.AddGroupingPolicy(params...)
}

// RemoveGroupingPolicy removes a "g" rule under a write lock.
func (se *SyncedEnforcer) RemoveGroupingPolicy(params ...interface{}) (bool, error) {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.Enforcer.RemoveGroupingPolicy(params...)
}

// GetRolesForUser reads the role graph under a read lock.
func (se *SyncedEnforcer) GetRolesForUser(name string, domain ...string) ([]string, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.GetRolesForUser(name, domain...)
}

// GetUsersForRole reads the role graph under a read lock.
func (se *SyncedEnforcer) GetUsersForRole(name string, domain ...string) ([]string, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.Enforcer.GetUsersForRole(name, domain...)
}

var _ IEnforcer = (*SyncedEnforcer)(nil)
