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
	"github.com/google/uuid"
)

// DistributedEnforcer wraps SyncedEnforcer so policy mutations can be
// forwarded to a persist.Dispatcher (e.g. a Raft group or a pub/sub
// fan-out) instead of applied only to the local model. Each node gets a
// stable NodeID so a dispatcher implementation can tell which replica
// originated a mutation and avoid re-broadcasting it back to its source.
//
// SetDispatcher (inherited from Enforcer) is what actually routes
// AddPolicy/RemovePolicy/etc. through the cluster; the *Self methods
// below are what a Dispatcher implementation calls on every node,
// including the originator, once a mutation is known to be committed.
type DistributedEnforcer struct {
	*SyncedEnforcer
	NodeID uuid.UUID
}

// NewDistributedEnforcer wraps NewSyncedEnforcer's result with a random
// NodeID.
func NewDistributedEnforcer(params ...interface{}) (*DistributedEnforcer, error) {
	se, err := NewSyncedEnforcer(params...)
	if err != nil {
		return nil, err
	}
	return &DistributedEnforcer{SyncedEnforcer: se, NodeID: uuid.New()}, nil
}

// AddPoliciesSelf applies rules to the local model only, bypassing the
// dispatcher, and reports which of them were actually new.
func (d *DistributedEnforcer) AddPoliciesSelf(sec string, ptype string, rules [][]string) (affected [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m := d.Enforcer.GetModel()
	for _, rule := range rules {
		if m.HasPolicy(sec, ptype, rule) {
			continue
		}
		m.AddPolicy(sec, ptype, rule)
		affected = append(affected, rule)
	}
	d.rebuildRoleLinksIfGrouping(sec)
	return affected
}

// RemovePoliciesSelf applies a batch removal to the local model only,
// bypassing the dispatcher, and reports which rules were actually
// removed.
func (d *DistributedEnforcer) RemovePoliciesSelf(sec string, ptype string, rules [][]string) (affected [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m := d.Enforcer.GetModel()
	if m.RemovePolicies(sec, ptype, rules) {
		affected = rules
	}
	d.rebuildRoleLinksIfGrouping(sec)
	return affected
}

// RemoveFilteredPolicySelf applies a filtered removal to the local model
// only, bypassing the dispatcher.
func (d *DistributedEnforcer) RemoveFilteredPolicySelf(sec string, ptype string, fieldIndex int, fieldValues ...string) (removed [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, removed = d.Enforcer.GetModel().RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...)
	d.rebuildRoleLinksIfGrouping(sec)
	return removed
}

// ClearPolicySelf clears the local model only, bypassing the
// dispatcher.
func (d *DistributedEnforcer) ClearPolicySelf() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Enforcer.GetModel().ClearPolicy()
	for _, rm := range d.Enforcer.rmMap {
		_ = rm.Clear()
	}
}

func (d *DistributedEnforcer) rebuildRoleLinksIfGrouping(sec string) {
	if sec != "g" {
		return
	}
	_ = d.Enforcer.BuildRoleLinks()
}
