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

// Package telemetry instruments enforcement and cache behavior with
// OpenTelemetry metrics. It is opt-in: nothing is recorded unless a
// Recorder is attached through CachedEnforcer.SetRecorder or
// NewInstrumentedEnforcer.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder records the events a metrics-aware caller wants visibility
// into: enforcement decisions, decision-cache hits/misses, and policy
// mutations.
type Recorder struct {
	enforceTotal     metric.Int64Counter
	enforceDuration  metric.Float64Histogram
	cacheHitTotal    metric.Int64Counter
	cacheMissTotal   metric.Int64Counter
	mutationTotal    metric.Int64Counter
}

// NewRecorder builds a Recorder on meterName, using the globally
// registered otel MeterProvider (set it with otel.SetMeterProvider
// before constructing one, or leave the no-op default in place - every
// instrument below degrades to a no-op automatically in that case).
func NewRecorder(meterName string) (*Recorder, error) {
	meter := otel.Meter(meterName)

	enforceTotal, err := meter.Int64Counter(
		"casbin_enforce_total",
		metric.WithDescription("Number of Enforce calls, by result"),
	)
	if err != nil {
		return nil, err
	}
	enforceDuration, err := meter.Float64Histogram(
		"casbin_enforce_duration_seconds",
		metric.WithDescription("Enforce call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	cacheHitTotal, err := meter.Int64Counter(
		"casbin_cache_hit_total",
		metric.WithDescription("Decision cache hits"),
	)
	if err != nil {
		return nil, err
	}
	cacheMissTotal, err := meter.Int64Counter(
		"casbin_cache_miss_total",
		metric.WithDescription("Decision cache misses"),
	)
	if err != nil {
		return nil, err
	}
	mutationTotal, err := meter.Int64Counter(
		"casbin_policy_mutation_total",
		metric.WithDescription("Policy and grouping rule mutations, by operation"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		enforceTotal:    enforceTotal,
		enforceDuration: enforceDuration,
		cacheHitTotal:   cacheHitTotal,
		cacheMissTotal:  cacheMissTotal,
		mutationTotal:   mutationTotal,
	}, nil
}

// RecordEnforce records one Enforce call's outcome and latency.
func (r *Recorder) RecordEnforce(ctx context.Context, allowed bool, durationSeconds float64) {
	r.enforceTotal.Add(ctx, 1, metric.WithAttributes(resultAttr(allowed)))
	r.enforceDuration.Record(ctx, durationSeconds, metric.WithAttributes(resultAttr(allowed)))
}

// RecordCacheHit records a decision-cache hit.
func (r *Recorder) RecordCacheHit(ctx context.Context) {
	r.cacheHitTotal.Add(ctx, 1)
}

// RecordCacheMiss records a decision-cache miss.
func (r *Recorder) RecordCacheMiss(ctx context.Context) {
	r.cacheMissTotal.Add(ctx, 1)
}

// RecordMutation records a policy or grouping rule mutation of the
// given kind ("add", "remove", "update", "clear").
func (r *Recorder) RecordMutation(ctx context.Context, sec string, kind string) {
	r.mutationTotal.Add(ctx, 1, metric.WithAttributes(
		attrString("sec", sec),
		attrString("op", kind),
	))
}

func resultAttr(allowed bool) attribute.KeyValue {
	if allowed {
		return attribute.String("result", "allow")
	}
	return attribute.String("result", "deny")
}

func attrString(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}
