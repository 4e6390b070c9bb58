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

import "fmt"

// AdapterError wraps a failure returned by the configured persist.Adapter
// (connection drop, malformed row, constraint violation) so callers can
// distinguish storage failures from policy/model errors.
type AdapterError struct {
	Cause error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("casbin: adapter error: %v", e.Cause)
}

func (e *AdapterError) Unwrap() error {
	return e.Cause
}

// MatcherError reports that evaluating the matcher expression against a
// specific policy rule failed (bad function call, type mismatch).
type MatcherError struct {
	RuleIndex int
	Cause     error
}

func (e *MatcherError) Error() string {
	return fmt.Sprintf("casbin: matcher error at rule %d: %v", e.RuleIndex, e.Cause)
}

func (e *MatcherError) Unwrap() error {
	return e.Cause
}

// RoleGraphError wraps a failure raised by a role manager while adding,
// deleting, or traversing role links.
type RoleGraphError struct {
	Cause error
}

func (e *RoleGraphError) Error() string {
	return fmt.Sprintf("casbin: role graph error: %v", e.Cause)
}

func (e *RoleGraphError) Unwrap() error {
	return e.Cause
}

// ErrDisabled reports that the enforcer is disabled. No method of this
// package returns it: a disabled Enforcer answers Enforce with true and
// still applies policy mutations.
var ErrDisabled = fmt.Errorf("casbin: enforcer is disabled")

// ErrFilteredPolicy is returned by operations that can't run safely
// against a filtered policy load (e.g. SavePolicy, which would silently
// drop every rule outside the loaded filter's scope).
var ErrFilteredPolicy = fmt.Errorf("casbin: cannot run against a filtered policy")
