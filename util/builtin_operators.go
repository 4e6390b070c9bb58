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
	"errors"
	"fmt"
	"net"
	"path"
	"regexp"
	"strings"
	"time"
)

// validate the variadic parameter size and type as string
func validateVariadicArgs(expectedLen int, args ...interface{}) error {
	if len(args) != expectedLen {
		return fmt.Errorf("expected %d arguments, but got %d", expectedLen, len(args))
	}

	for _, p := range args {
		_, ok := p.(string)
		if !ok {
			return errors.New("argument must be a string")
		}
	}

	return nil
}

// KeyMatch determines whether key1 matches key2, key2 can contain a *.
func KeyMatch(key1 string, key2 string) bool {
	i := strings.Index(key2, "*")
	if i == -1 {
		return key1 == key2
	}

	if len(key1) > i {
		return key1[:i] == key2[:i]
	}
	return key1 == key2[:i]
}

// KeyMatchFunc is the wrapper for KeyMatch.
func KeyMatchFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyMatch", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return bool(KeyMatch(name1, name2)), nil
}

// KeyGet returns the matched part.
// For example, "/foo/bar/foo" matches "/foo/*", returns "bar/foo".
func KeyGet(key1 string, key2 string) string {
	i := strings.Index(key2, "*")
	if i == -1 {
		return ""
	}

	if len(key1) > i {
		if key1[:i] == key2[:i] {
			return key1[i:]
		}
	}
	return ""
}

// KeyGetFunc is the wrapper for KeyGet.
func KeyGetFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyGet", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return KeyGet(name1, name2), nil
}

// KeyMatch2 determines whether key1 matches the pattern of key2, key2 can
// contain a *, then the pattern will be changed by replacing * with .*.
// And key2 can contain multiple ":" to represent path parameters, e.g.
// "/resource1/:resource2/:resource3".
func KeyMatch2(key1 string, key2 string) bool {
	key2 = strings.Replace(key2, "/*", "/.*", -1)

	keySplit := strings.Split(key2, "/")
	for i, k := range keySplit {
		if strings.HasPrefix(k, ":") {
			keySplit[i] = "[^/]+"
		}
	}
	key2 = strings.Join(keySplit, "/")

	return RegexMatch(key1, "^"+key2+"$")
}

// KeyMatch2Func is the wrapper for KeyMatch2.
func KeyMatch2Func(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyMatch2", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return bool(KeyMatch2(name1, name2)), nil
}

// KeyGet2 returns value matched pattern.
// For example, "/resource1/myid" matches "/resource1/:id", "myid" will
// be returned.
func KeyGet2(key1 string, key2 string, pathVar string) string {
	key2 = strings.Replace(key2, "/*", "/.*", -1)

	keySplit := strings.Split(key2, "/")
	for i, k := range keySplit {
		if strings.HasPrefix(k, ":") {
			keySplit[i] = "([^/]+)"
		}
	}
	key2 = "^" + strings.Join(keySplit, "/") + "$"

	re := regexp.MustCompile(key2)
	matches := re.FindStringSubmatch(key1)
	if matches == nil {
		return ""
	}

	keySplit = strings.Split(key2[1:len(key2)-1], "/")
	j := 0
	for i, k := range keySplit {
		if strings.HasPrefix(k, "([^") {
			if ":"+pathVar == strings.Split(key2, "/")[i] {
				return matches[j+1]
			}
			j++
		}
	}
	return ""
}

// KeyGet2Func is the wrapper for KeyGet2.
func KeyGet2Func(args ...interface{}) (interface{}, error) {
	if len(args) != 3 {
		return false, fmt.Errorf("keyGet2: expected 3 arguments, but got %d", len(args))
	}

	name1 := args[0].(string)
	name2 := args[1].(string)
	pathVar := args[2].(string)

	return KeyGet2(name1, name2, pathVar), nil
}

// KeyMatch3 determines whether key1 matches the pattern of key2, key2 can
// contain a *, then the pattern will be changed by replacing * with .*.
// And key2 can contain multiple {xxx} to represent path parameters, e.g.
// "/resource1/{resource2}/{resource3}".
func KeyMatch3(key1 string, key2 string) bool {
	key2 = strings.Replace(key2, "/*", "/.*", -1)

	re := regexp.MustCompile(`\{[^/]+?\}`)
	key2 = re.ReplaceAllString(key2, "[^/]+")

	return RegexMatch(key1, "^"+key2+"$")
}

// KeyMatch3Func is the wrapper for KeyMatch3.
func KeyMatch3Func(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyMatch3", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return bool(KeyMatch3(name1, name2)), nil
}

// KeyGet3 returns value matched pattern.
// For example, "/resource1/myid/other" matches "/resource1/{id}/other",
// "myid" will be returned.
func KeyGet3(key1 string, key2 string, pathVar string) string {
	key2 = strings.Replace(key2, "/*", "/.*", -1)

	re := regexp.MustCompile(`\{[^/]+?\}`)
	tokens := re.FindAllString(key2, -1)
	pattern := re.ReplaceAllString(key2, "([^/]+?)")
	pattern = "^" + pattern + "$"

	r := regexp.MustCompile(pattern)
	matches := r.FindStringSubmatch(key1)
	if matches == nil {
		return ""
	}

	for i, token := range tokens {
		name := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
		if name == pathVar {
			return matches[i+1]
		}
	}
	return ""
}

// KeyGet3Func is the wrapper for KeyGet3.
func KeyGet3Func(args ...interface{}) (interface{}, error) {
	if len(args) != 3 {
		return false, fmt.Errorf("keyGet3: expected 3 arguments, but got %d", len(args))
	}

	name1 := args[0].(string)
	name2 := args[1].(string)
	pathVar := args[2].(string)

	return KeyGet3(name1, name2, pathVar), nil
}

// keyMatch4 determines whether key1 matches the pattern of key2, similar to
// KeyMatch3, except that the tokens of the same name must bind to the same
// value everywhere they occur.
func KeyMatch4(key1 string, key2 string) bool {
	key2 = strings.Replace(key2, "/*", "/.*", -1)

	tokens := make([]string, 0)
	re := regexp.MustCompile(`\{[^/]+?\}`)
	key2 = re.ReplaceAllStringFunc(key2, func(s string) string {
		tokens = append(tokens, s)
		return "([^/]+?)"
	})

	re = regexp.MustCompile("^" + key2 + "$")
	matches := re.FindStringSubmatch(key1)
	if matches == nil {
		return false
	}
	matches = matches[1:]

	if len(matches) != len(tokens) {
		return false
	}

	values := make(map[string]string)
	for i, token := range tokens {
		if v, ok := values[token]; !ok {
			values[token] = matches[i]
		} else if v != matches[i] {
			return false
		}
	}

	return true
}

// KeyMatch4Func is the wrapper for KeyMatch4.
func KeyMatch4Func(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyMatch4", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return KeyMatch4(name1, name2), nil
}

// KeyMatch5 determines whether key1 matches the pattern of key2, similar to
// KeyMatch4, except that query strings in key1 are stripped before matching.
func KeyMatch5(key1 string, key2 string) bool {
	i := strings.Index(key1, "?")
	if i != -1 {
		key1 = key1[:i]
	}

	return KeyMatch4(key1, key2)
}

// KeyMatch5Func is the wrapper for KeyMatch5.
func KeyMatch5Func(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "keyMatch5", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return KeyMatch5(name1, name2), nil
}

// RegexMatch determines whether key1 matches the pattern of key2 in
// regular expression.
func RegexMatch(key1 string, key2 string) bool {
	res, err := regexp.MatchString(key2, key1)
	if err != nil {
		return false
	}
	return res
}

// RegexMatchFunc is the wrapper for RegexMatch.
func RegexMatchFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "regexMatch", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return bool(RegexMatch(name1, name2)), nil
}

// GlobMatch determines whether key1 matches the shell pattern of key2.
// A "**" segment in key2 matches zero or more path segments in key1.
func GlobMatch(key1 string, key2 string) bool {
	if !strings.Contains(key2, "**") {
		ok, err := path.Match(key2, key1)
		if err != nil {
			return false
		}
		return ok
	}

	parts := strings.Split(key2, "**")
	segs1 := strings.Split(key1, "/")

	first := 0
	if strings.HasPrefix(key2, "/") {
		if !strings.HasPrefix(key1, "/") {
			return false
		}
		first = 1
	}
	idx := first
	for pi, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}
		sub := strings.Split(part, "/")
		lo := idx
		if pi == len(parts)-1 && !strings.HasSuffix(key2, "**") {
			lo = len(segs1) - len(sub)
		}
		found := -1
		for start := lo; start >= idx && start+len(sub) <= len(segs1); start++ {
			matched := true
			for j, p := range sub {
				ok, err := path.Match(p, segs1[start+j])
				if err != nil || !ok {
					matched = false
					break
				}
			}
			if matched {
				found = start
				break
			}
		}
		if found == -1 {
			return false
		}
		if pi == 0 && found != first {
			return false
		}
		idx = found + len(sub)
	}
	if !strings.HasSuffix(key2, "**") && idx != len(segs1) {
		return false
	}
	return true
}

// GlobMatchFunc is the wrapper for GlobMatch.
func GlobMatchFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "globMatch", err)
	}

	name1 := args[0].(string)
	name2 := args[1].(string)

	return bool(GlobMatch(name1, name2)), nil
}

// IPMatch determines whether IP address ip1 matches the pattern of ip2,
// ip2 can be an IP address or a CIDR pattern. For example, "192.168.2.123"
// matches "192.168.2.0/24".
func IPMatch(ip1 string, ip2 string) bool {
	ip1Addr := net.ParseIP(ip1)
	if ip1Addr == nil {
		return false
	}

	if !strings.Contains(ip2, "/") {
		ip2Addr := net.ParseIP(ip2)
		if ip2Addr == nil {
			return false
		}
		return ip1Addr.Equal(ip2Addr)
	}

	_, ipNet, err := net.ParseCIDR(ip2)
	if err != nil {
		return false
	}
	return ipNet.Contains(ip1Addr)
}

// IPMatchFunc is the wrapper for IPMatch.
func IPMatchFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "ipMatch", err)
	}

	ip1 := args[0].(string)
	ip2 := args[1].(string)

	return bool(IPMatch(ip1, ip2)), nil
}

// TimeMatch determines whether now lies within [t1, t2] (both RFC3339).
// Either bound may be an empty string to leave that side unbounded.
func TimeMatch(t1 string, t2 string) bool {
	now := time.Now()
	if t1 != "" {
		start, err := time.Parse(time.RFC3339, t1)
		if err != nil {
			return false
		}
		if now.Before(start) {
			return false
		}
	}
	if t2 != "" {
		end, err := time.Parse(time.RFC3339, t2)
		if err != nil {
			return false
		}
		if now.After(end) {
			return false
		}
	}
	return true
}

// TimeMatchFunc is the wrapper for TimeMatch.
func TimeMatchFunc(args ...interface{}) (interface{}, error) {
	if err := validateVariadicArgs(2, args...); err != nil {
		return false, fmt.Errorf("%s: %s", "timeMatch", err)
	}

	t1 := args[0].(string)
	t2 := args[1].(string)

	return bool(TimeMatch(t1, t2)), nil
}
