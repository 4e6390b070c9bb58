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

package log

import (
	"log"
	"strings"
)

// DefaultLogger writes to the standard library's "log" package. It is the
// Enforcer's logger until SetLogger/SetLogger is called.
type DefaultLogger struct {
	enabled bool
}

func (l *DefaultLogger) EnableLog(enable bool) {
	l.enabled = enable
}

func (l *DefaultLogger) IsEnabled() bool {
	return l.enabled
}

func (l *DefaultLogger) LogModel(model [][]string) {
	if !l.enabled {
		return
	}
	var sb strings.Builder
	sb.WriteString("Model: ")
	for _, v := range model {
		sb.WriteString(strings.Join(v, ", "))
		sb.WriteString(" | ")
	}
	log.Println(sb.String())
}

func (l *DefaultLogger) LogEnforce(matcher string, request []interface{}, result bool, explains [][]string) {
	if !l.enabled {
		return
	}
	reqs := make([]string, len(request))
	for i, r := range request {
		reqs[i] = toString(r)
	}
	log.Printf("[casbin] matcher=%q request=[%s] result=%v explain=%v\n",
		matcher, strings.Join(reqs, ", "), result, explains)
}

func (l *DefaultLogger) LogRole(roles []string) {
	if !l.enabled || len(roles) == 0 {
		return
	}
	log.Println("Roles: " + strings.Join(roles, ", "))
}

func (l *DefaultLogger) LogPolicy(policy map[string][][]string) {
	if !l.enabled {
		return
	}
	for ptype, rules := range policy {
		for _, r := range rules {
			log.Printf("Policy %s: %s\n", ptype, strings.Join(r, ", "))
		}
	}
}

func (l *DefaultLogger) LogError(err error, msg ...string) {
	if !l.enabled {
		return
	}
	log.Printf("%s: %v\n", strings.Join(msg, " "), err)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "<non-string>"
}

var _ Logger = (*DefaultLogger)(nil)
