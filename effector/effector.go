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

// Package effector reduces the per-rule (matched, eft) results produced by
// the matcher evaluator into one allow/deny decision, per the model's
// policy_effect expression.
package effector

// Effect is a per-rule or final decision value.
type Effect int

const (
	// Allow means the request is allowed by this rule/decision.
	Allow Effect = iota
	// Indeterminate means this rule did not decide the request.
	Indeterminate
	// Deny means the request is denied by this rule/decision.
	Deny
)

// Effector merges an ordered list of per-rule effects (and the matcher's
// numeric result for each rule) into a final decision, per the configured
// policy-effect expression.
type Effector interface {
	// MergeEffects returns the merged effect, and the index of the policy
	// rule responsible for that effect (or -1 when no rule decided it).
	// cap is the expected total number of rules, effects/matches are
	// sized to at least policyIndex+1.
	MergeEffects(expr string, effects []Effect, matches []float64, policyIndex int, cap int) (Effect, int, error)
}
