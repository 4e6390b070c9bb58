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

// PolicyOp describes an incremental role-link rebuild operation: whether
// the touched grouping rules were added or removed.
type PolicyOp int

const (
	// PolicyAdd means the rules were added; their edges should be added
	// to the role graph.
	PolicyAdd PolicyOp = iota
	// PolicyRemove means the rules were removed; their edges should be
	// pruned from the role graph.
	PolicyRemove
)
