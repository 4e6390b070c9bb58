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

// BatchAdapter is implemented by adapters that can write many rules in
// one round trip instead of one statement per rule (e.g. a single
// multi-row INSERT against Postgres).
type BatchAdapter interface {
	Adapter
	AddPolicies(sec string, ptype string, rules [][]string) error
	RemovePolicies(sec string, ptype string, rules [][]string) error
}

// UpdateAdapter is implemented by adapters that can replace a rule in
// place without a remove-then-add round trip.
type UpdateAdapter interface {
	Adapter
	UpdatePolicy(sec string, ptype string, oldRule []string, newRule []string) error
	UpdatePolicies(sec string, ptype string, oldRules [][]string, newRules [][]string) error
}
