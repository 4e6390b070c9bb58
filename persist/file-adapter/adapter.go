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

// Package fileadapter implements a persist.Adapter backed by a flat CSV
// file, one rule per line: "ptype, field1, field2, ...". Suitable for
// development and small, single-process deployments; SavePolicy rewrites
// the whole file, so concurrent external edits aren't safe.
package fileadapter

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
	"github.com/EnthuZiastic/casbin-ex2-sub003/persist"
)

// Adapter reads and writes policy rules from a CSV file on disk.
type Adapter struct {
	filePath string
}

// NewAdapter returns a file adapter bound to filePath. The file need not
// exist yet; SavePolicy creates it.
func NewAdapter(filePath string) *Adapter {
	return &Adapter{filePath: filePath}
}

// LoadPolicy reads every line of the file into model.
func (a *Adapter) LoadPolicy(m model.Model) error {
	if a.filePath == "" {
		return fmt.Errorf("fileadapter: invalid file path, file path cannot be empty")
	}
	f, err := os.Open(a.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		persist.LoadPolicyLine(line, m)
	}
	return scanner.Err()
}

// SavePolicy overwrites the file with every p*/g* rule currently in
// model, one per line.
func (a *Adapter) SavePolicy(m model.Model) error {
	if a.filePath == "" {
		return fmt.Errorf("fileadapter: invalid file path, file path cannot be empty")
	}

	var sb strings.Builder
	for sec, amap := range m {
		if sec != "p" && sec != "g" {
			continue
		}
		for ptype, ast := range amap {
			for _, rule := range ast.Policy {
				sb.WriteString(ptype)
				for _, v := range rule {
					sb.WriteString(", ")
					sb.WriteString(v)
				}
				sb.WriteString("\n")
			}
		}
	}
	return os.WriteFile(a.filePath, []byte(sb.String()), 0o644)
}

// AddPolicy is unsupported: the file adapter only round-trips whole
// snapshots, via LoadPolicy/SavePolicy.
func (a *Adapter) AddPolicy(sec string, ptype string, rule []string) error {
	return persist.ErrUnsupported
}

// RemovePolicy is unsupported; see AddPolicy.
func (a *Adapter) RemovePolicy(sec string, ptype string, rule []string) error {
	return persist.ErrUnsupported
}

// RemoveFilteredPolicy is unsupported; see AddPolicy.
func (a *Adapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return persist.ErrUnsupported
}

var _ persist.Adapter = (*Adapter)(nil)
