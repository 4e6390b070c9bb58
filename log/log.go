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

// Package log defines the logging surface the core calls into. Consumers
// can plug in any backend (see logrus-logger for an ecosystem-backed one)
// by implementing Logger and calling Enforcer.SetLogger; the core itself
// never depends on a concrete logging library so embedding it never drags
// one into a consumer's binary.
package log

// Logger is the interface the core uses for diagnostic output: model
// structure, enforcement decisions, policy/role mutations, and
// per-rule matcher errors.
type Logger interface {
	// EnableLog controls whether subsequent calls actually produce output.
	EnableLog(bool)

	// IsEnabled reports the current enabled state.
	IsEnabled() bool

	// LogModel prints the parsed model's assertions.
	LogModel(model [][]string)

	// LogEnforce prints one enforcement decision: the matcher text, the
	// request values, the result, and the rules that were considered.
	LogEnforce(matcher string, request []interface{}, result bool, explains [][]string)

	// LogRole prints the current role-inheritance edges.
	LogRole(roles []string)

	// LogPolicy prints the current policy rules grouped by ptype.
	LogPolicy(policy map[string][][]string)

	// LogError prints an error encountered while processing request msg.
	LogError(err error, msg ...string)
}
