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

package persist

// Watcher lets an enforcer notify peer processes that the policy changed
// underneath them (after a mutation commits to the adapter), so they can
// reload.
type Watcher interface {
	// SetUpdateCallback registers the function invoked when a peer's
	// change notification arrives; typically wired to the local
	// enforcer's LoadPolicy.
	SetUpdateCallback(func(string)) error
	// Update broadcasts that the local enforcer's policy changed.
	Update() error
	Close()
}

// WatcherEx carries enough detail about the mutation for a peer to apply
// an equivalent incremental update instead of a full reload.
type WatcherEx interface {
	Watcher
	UpdateForAddPolicy(sec string, ptype string, params ...string) error
	UpdateForRemovePolicy(sec string, ptype string, params ...string) error
	UpdateForRemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error
	UpdateForSavePolicy(model interface{}) error
	UpdateForUpdatePolicy(sec string, ptype string, oldRule, newRule []string) error
}
