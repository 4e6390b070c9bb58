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

import (
	"github.com/Knetic/govaluate"

	"github.com/EnthuZiastic/casbin-ex2-sub003/util"
)

// FunctionMap holds the matcher-callable functions available to a
// compiled expression: the built-in operator library plus whatever a
// caller registers with AddFunction (custom matcher helpers, g/g2/...
// role-check functions).
type FunctionMap map[string]govaluate.ExpressionFunction

// LoadFunctionMap returns a FunctionMap seeded with every built-in
// matcher operator.
func LoadFunctionMap() FunctionMap {
	return FunctionMap{
		"keyMatch":   util.KeyMatchFunc,
		"keyMatch2":  util.KeyMatch2Func,
		"keyMatch3":  util.KeyMatch3Func,
		"keyMatch4":  util.KeyMatch4Func,
		"keyMatch5":  util.KeyMatch5Func,
		"keyGet":     util.KeyGetFunc,
		"keyGet2":    util.KeyGet2Func,
		"keyGet3":    util.KeyGet3Func,
		"regexMatch": util.RegexMatchFunc,
		"globMatch":  util.GlobMatchFunc,
		"ipMatch":    util.IPMatchFunc,
		"timeMatch":  util.TimeMatchFunc,
	}
}

// AddFunction registers fn under name, overriding any existing function
// of the same name (including a built-in).
func (fm FunctionMap) AddFunction(name string, fn govaluate.ExpressionFunction) {
	fm[name] = fn
}

// GetFunctions returns the map as a plain govaluate function table,
// ready to pass to govaluate.EvaluableExpressionWithFunctions.
func (fm FunctionMap) GetFunctions() map[string]govaluate.ExpressionFunction {
	return fm
}
