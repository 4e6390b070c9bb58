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

package persist

import (
	"context"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

// ContextAdapter is implemented by adapters backed by a remote store
// (a database, an HTTP policy service) so that load/save calls can carry
// caller-supplied cancellation and deadlines.
type ContextAdapter interface {
	LoadPolicyCtx(ctx context.Context, model model.Model) error
	SavePolicyCtx(ctx context.Context, model model.Model) error
	AddPolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error
	RemovePolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error
	RemoveFilteredPolicyCtx(ctx context.Context, sec string, ptype string, fieldIndex int, fieldValues ...string) error
}
