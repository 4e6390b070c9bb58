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

// Dispatcher forwards policy mutations to every node of a distributed
// enforcer cluster instead of applying them only to the local in-memory
// model, so that every replica's decision stays consistent.
type Dispatcher interface {
	AddPolicies(sec string, ptype string, rules [][]string) error
	RemovePolicies(sec string, ptype string, rules [][]string) error
	RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues []string) error
	ClearPolicy() error
	UpdatePolicy(sec string, ptype string, oldRule, newRule []string) error
	UpdatePolicies(sec string, ptype string, oldRules, newRules [][]string) error
}
