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

package model

// ModelError reports a semantic violation of a parsed model: an invalid
// token name, an unknown section, an unsupported policy-effect
// expression, or a priority effect without a "priority" field. Names used
// in a matcher are not checked here, and a rule whose arity doesn't match
// its definition is reported by Enforce as a plain error.
type ModelError struct {
	Msg string
}

func (e *ModelError) Error() string {
	return "model: " + e.Msg
}
