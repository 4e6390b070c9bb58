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

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/EnthuZiastic/casbin-ex2-sub003/telemetry"
)

const defaultCacheCapacity = 1000

// cachedDecision is one memoized Enforce outcome.
type cachedDecision struct {
	key    string
	result bool
}

// decisionCache is a fixed-capacity LRU keyed by the joined request
// values. A plain map would grow without bound under a long-running
// enforcer serving unique requests; eviction needs an ordering
// structure, which is what the list gives it.
type decisionCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func newDecisionCache(capacity int) *decisionCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &decisionCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *decisionCache) get(key string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return false, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cachedDecision).result, true
}

func (c *decisionCache) set(key string, result bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cachedDecision).result = result
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&cachedDecision{key: key, result: result})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*cachedDecision).key)
		}
	}
}

func (c *decisionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element)
}

func (c *decisionCache) remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// CachedEnforcer wraps Enforcer with an LRU decision cache, for
// workloads that repeat the same (sub, obj, act) request often enough
// that re-running the matcher every time is wasted work. LoadPolicy,
// ClearPolicy, AddPolicy, RemovePolicy, RemoveFilteredPolicy,
// AddGroupingPolicy and RemoveGroupingPolicy invalidate the whole cache,
// since a single rule change can flip the outcome of an arbitrary number
// of past requests. The other mutation methods promoted from Enforcer
// (AddPolicies, UpdatePolicy, AddRoleForUser, DeleteUser, ...) do not
// invalidate it; InvalidateCache drops it explicitly.
type CachedEnforcer struct {
	*Enforcer
	cache       *decisionCache
	enableCache bool
	rec         *telemetry.Recorder
}

// SetRecorder attaches an OpenTelemetry recorder so cache hits/misses
// show up as metrics. Optional; nil (the default) disables it.
func (ce *CachedEnforcer) SetRecorder(rec *telemetry.Recorder) {
	ce.rec = rec
}

// NewCachedEnforcer wraps NewEnforcer's result with a decision cache of
// the default capacity, enabled by default.
func NewCachedEnforcer(params ...interface{}) (*CachedEnforcer, error) {
	e, err := NewEnforcer(params...)
	if err != nil {
		return nil, err
	}
	return &CachedEnforcer{
		Enforcer:    e,
		cache:       newDecisionCache(defaultCacheCapacity),
		enableCache: true,
	}, nil
}

// EnableCache toggles whether Enforce consults/populates the cache.
func (ce *CachedEnforcer) EnableCache(enable bool) {
	ce.enableCache = enable
}

// SetCacheCapacity replaces the cache with an empty one of the given
// capacity.
func (ce *CachedEnforcer) SetCacheCapacity(capacity int) {
	ce.cache = newDecisionCache(capacity)
}

func cacheKey(rvals []interface{}) string {
	parts := make([]string, len(rvals))
	for i, v := range rvals {
		if ctx, ok := v.(EnforceContext); ok {
			parts[i] = ctx.GetCacheKey()
			continue
		}
		parts[i] = stringifyForCache(v)
	}
	return strings.Join(parts, "\x1f")
}

func stringifyForCache(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Enforce consults the cache before running the matcher, and populates
// it with the outcome on a miss. An EnforceContext passed as the first
// argument becomes part of the key (via GetCacheKey), so calls selecting
// different ptypes do not share entries. Only Enforce itself is cached:
// EnforceWithMatcher, EnforceEx and the other promoted Enforcer methods
// bypass the cache.
func (ce *CachedEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if !ce.enableCache {
		return ce.Enforcer.Enforce(rvals...)
	}
	key := cacheKey(rvals)
	if result, ok := ce.cache.get(key); ok {
		if ce.rec != nil {
			ce.rec.RecordCacheHit(context.Background())
		}
		return result, nil
	}
	if ce.rec != nil {
		ce.rec.RecordCacheMiss(context.Background())
	}
	result, err := ce.Enforcer.Enforce(rvals...)
	if err != nil {
		return result, err
	}
	ce.cache.set(key, result)
	return result, nil
}

// InvalidateCache drops every cached decision. Called automatically by
// every mutation below; exported so a caller driving the adapter
// directly (bypassing AddPolicy/RemovePolicy) can still invalidate.
func (ce *CachedEnforcer) InvalidateCache() {
	ce.cache.clear()
}

// LoadPolicy reloads the policy and invalidates the cache.
func (ce *CachedEnforcer) LoadPolicy() error {
	defer ce.InvalidateCache()
	return ce.Enforcer.LoadPolicy()
}

// ClearPolicy removes every rule and invalidates the cache.
func (ce *CachedEnforcer) ClearPolicy() {
	defer ce.InvalidateCache()
	ce.Enforcer.ClearPolicy()
}

// AddPolicy adds a "p" rule and invalidates the cache.
func (ce *CachedEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	defer ce.InvalidateCache()
	return ce.Enforcer.AddPolicy(params...)
}

// RemovePolicy removes a "p" rule and invalidates the cache.
func (ce *CachedEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	defer ce.InvalidateCache()
	return ce.Enforcer.RemovePolicy(params...)
}

// RemoveFilteredPolicy removes every "p" rule matching the filter and
// invalidates the cache.
func (ce *CachedEnforcer) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	defer ce.InvalidateCache()
	return ce.Enforcer.RemoveFilteredPolicy(fieldIndex, fieldValues...)
}

// AddGroupingPolicy adds a "g" rule and invalidates the cache, since
// role-graph changes can flip enforcement outcomes too.
func (ce *CachedEnforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	defer ce.InvalidateCache()
	return ce.Enforcer.AddGroupingPolicy(params...)
}

// RemoveGroupingPolicy removes a "g" rule and invalidates the cache.
func (ce *CachedEnforcer) RemoveGroupingPolicy(params ...interface{}) (bool, error) {
	defer ce.InvalidateCache()
	return ce.Enforcer.RemoveGroupingPolicy(params...)
}

var _ IEnforcer = (*CachedEnforcer)(nil)
