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

package effector

import "fmt"

const (
	someAllow        = "some(where (p.eft == allow))"
	noDeny           = "!some(where (p.eft == deny))"
	allowAndNotDeny  = "some(where (p.eft == allow)) && !some(where (p.eft == deny))"
	priorityOrDeny   = "priority(p.eft) || deny"
	subjectPriority  = "subjectPriority(p.eft) || deny"
)

// DefaultEffector implements the closed set of policy-effect modes in
// §4.6. Every call re-scans effects[0:policyIndex+1]/matches[0:policyIndex+1]
// rather than keeping running state, since the caller passes the full,
// progressively-populated arrays on every rule iteration; this makes the
// combined allow-and-not-deny mode correct without a stateful effector.
type DefaultEffector struct{}

// NewDefaultEffector constructs the closed-set effector.
func NewDefaultEffector() *DefaultEffector {
	return &DefaultEffector{}
}

func (e *DefaultEffector) MergeEffects(expr string, effects []Effect, matches []float64, policyIndex int, cap int) (Effect, int, error) {
	switch expr {
	case someAllow:
		for i := 0; i <= policyIndex; i++ {
			if matches[i] != 0 && effects[i] == Allow {
				return Allow, i, nil
			}
		}
		if policyIndex == cap-1 {
			return Deny, -1, nil
		}
		return Indeterminate, -1, nil

	case noDeny:
		for i := 0; i <= policyIndex; i++ {
			if matches[i] != 0 && effects[i] == Deny {
				return Deny, i, nil
			}
		}
		if policyIndex == cap-1 {
			return Allow, -1, nil
		}
		return Indeterminate, -1, nil

	case allowAndNotDeny:
		sawAllow := -1
		for i := 0; i <= policyIndex; i++ {
			if matches[i] == 0 {
				continue
			}
			if effects[i] == Deny {
				return Deny, i, nil
			}
			if effects[i] == Allow && sawAllow == -1 {
				sawAllow = i
			}
		}
		if policyIndex == cap-1 {
			if sawAllow != -1 {
				return Allow, sawAllow, nil
			}
			return Deny, -1, nil
		}
		return Indeterminate, -1, nil

	case priorityOrDeny, subjectPriority:
		// The first matched rule in iteration order is authoritative.
		// LoadPolicy sorts the rules (by priority field, or by
		// subject-role hierarchy depth); rules added after the load are
		// appended and keep insertion order.
		for i := 0; i <= policyIndex; i++ {
			if matches[i] == 0 {
				continue
			}
			if effects[i] == Allow {
				return Allow, i, nil
			}
			return Deny, i, nil
		}
		if policyIndex == cap-1 {
			return Deny, -1, nil
		}
		return Indeterminate, -1, nil

	default:
		return Indeterminate, -1, fmt.Errorf("unsupported effect: %s", expr)
	}
}

var _ Effector = (*DefaultEffector)(nil)
