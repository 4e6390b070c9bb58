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

package util

import (
	"strconv"
	"strings"

	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
)

// EscapeAssertion escapes the dots in a string to become valid identifiers
// in matcher expressions, i.e. r.sub -> r_sub, p2.obj -> p2_obj.
func EscapeAssertion(s string) string {
	s = EscapeAssertionExceptChar(s, '.', 'r')
	s = EscapeAssertionExceptChar(s, '.', 'p')
	return s
}

// EscapeAssertionExceptChar replaces "prefix.token" with "prefix_token" when
// the run starts with prefix (r, r2, p, p2, ...) followed by a digit-optional
// suffix and the separator rune.
func EscapeAssertionExceptChar(s string, sep byte, prefix byte) string {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == prefix && isIdentStart(s, i) {
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j < len(s) && s[j] == sep {
				sb.WriteString(s[i:j])
				sb.WriteByte('_')
				i = j + 1
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

func isIdentStart(s string, i int) bool {
	if i > 0 {
		c := s[i-1]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// RemoveComments removes the comment starting with # in the matcher.
func RemoveComments(s string) string {
	pos := strings.Index(s, "#")
	if pos == -1 {
		return s
	}
	return strings.TrimSpace(s[:pos])
}

// ArrayEquals determines whether two string slices are identical.
func ArrayEquals(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Array2DEquals determines whether two slices of string slices are
// identical (order-sensitive).
func Array2DEquals(a [][]string, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ArrayEquals(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ArrayRemoveDuplicates removes duplicate elements from a string slice,
// preserving the order of first occurrence.
func ArrayRemoveDuplicates(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// JoinSlice joins a field with the rest of a variadic string slice. Used to
// reconstruct a full rule tuple from a field index and remaining values.
func JoinSlice(field string, rest ...string) []string {
	res := make([]string, 0, len(rest)+1)
	res = append(res, field)
	res = append(res, rest...)
	return res
}

// SetSubtract returns the elements of a that are not present in b.
func SetSubtract(a []string, b []string) []string {
	bSet := make(map[string]struct{}, len(b))
	for _, v := range b {
		bSet[v] = struct{}{}
	}
	out := make([]string, 0)
	for _, v := range a {
		if _, ok := bSet[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// IsNumeric reports whether s parses as an integer or floating-point value.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// HasEval determines whether an expression contains an eval() function call.
func HasEval(s string) bool {
	return strings.Contains(s, "eval(")
}

// GenerateGFunction wraps a role manager's HasLink as a matcher-callable
// function bound to a grouping definition's name (e.g. "g", "g2").
func GenerateGFunction(rm rbac.RoleManager) func(args ...interface{}) (interface{}, error) {
	return func(args ...interface{}) (interface{}, error) {
		name1 := args[0].(string)
		name2 := args[1].(string)

		if rm == nil {
			return name1 == name2, nil
		} else if len(args) == 2 {
			res, err := rm.HasLink(name1, name2)
			return res, err
		}
		domain := args[2].(string)
		res, err := rm.HasLink(name1, name2, domain)
		return res, err
	}
}
