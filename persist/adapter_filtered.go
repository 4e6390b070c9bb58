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

import "github.com/EnthuZiastic/casbin-ex2-sub003/model"

// Filter narrows what LoadFilteredPolicy pulls from the backing store, by
// ptype. An empty slice for a given ptype means "no filter, load
// everything for that ptype".
type Filter struct {
	P []string
	G []string
}

// FilteredAdapter is implemented by adapters that can load a subset of
// the stored policy, e.g. to scope a large shared table to one tenant.
type FilteredAdapter interface {
	Adapter
	// LoadFilteredPolicy loads only the rules matching filter. A nil
	// filter behaves like LoadPolicy.
	LoadFilteredPolicy(model model.Model, filter interface{}) error
	// IsFiltered reports whether the adapter's last load applied a
	// filter (and SavePolicy should therefore be refused, since it
	// would silently drop everything outside scope).
	IsFiltered() bool
}
