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
	"context"
	"time"

	"github.com/EnthuZiastic/casbin-ex2-sub003/telemetry"
)

// InstrumentedEnforcer wraps any IEnforcer with an OpenTelemetry
// telemetry.Recorder, reporting enforcement latency/outcome and policy
// mutation counts without requiring the wrapped enforcer itself to know
// about metrics.
type InstrumentedEnforcer struct {
	IEnforcer
	rec *telemetry.Recorder
}

// NewInstrumentedEnforcer wraps inner, recording metrics under
// meterName.
func NewInstrumentedEnforcer(inner IEnforcer, meterName string) (*InstrumentedEnforcer, error) {
	rec, err := telemetry.NewRecorder(meterName)
	if err != nil {
		return nil, err
	}
	return &InstrumentedEnforcer{IEnforcer: inner, rec: rec}, nil
}

// Enforce decides rvals via the wrapped enforcer, recording the
// decision's latency and outcome.
func (ie *InstrumentedEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	start := time.Now()
	result, err := ie.IEnforcer.Enforce(rvals...)
	ie.rec.RecordEnforce(context.Background(), result, time.Since(start).Seconds())
	return result, err
}

// AddPolicy adds a "p" rule via the wrapped enforcer, recording the
// mutation.
func (ie *InstrumentedEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	ok, err := ie.IEnforcer.AddPolicy(params...)
	if ok {
		ie.rec.RecordMutation(context.Background(), "p", "add")
	}
	return ok, err
}

// RemovePolicy removes a "p" rule via the wrapped enforcer, recording
// the mutation.
func (ie *InstrumentedEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	ok, err := ie.IEnforcer.RemovePolicy(params...)
	if ok {
		ie.rec.RecordMutation(context.Background(), "p", "remove")
	}
	return ok, err
}

var _ IEnforcer = (*InstrumentedEnforcer)(nil)
