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

// Package pgxadapter implements a persist.Adapter backed by a Postgres
// table, one row per rule: (id, ptype, v0, v1, v2, v3, v4, v5). It uses
// pgx's connection pool directly rather than database/sql, matching how
// pgx is typically wired into Go services that already depend on it for
// everything else.
package pgxadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
	"github.com/EnthuZiastic/casbin-ex2-sub003/persist"
)

const defaultTableName = "casbin_rule"

const maxFields = 6

// Adapter persists policy rules to a Postgres table through a pgx
// connection pool.
type Adapter struct {
	pool      *pgxpool.Pool
	tableName string
	filtered  bool
}

// Option configures an Adapter at construction time.
type Option func(*Adapter)

// WithTableName overrides the default "casbin_rule" table name.
func WithTableName(name string) Option {
	return func(a *Adapter) { a.tableName = name }
}

// NewAdapter connects to connString and ensures the backing table
// exists.
func NewAdapter(ctx context.Context, connString string, opts ...Option) (*Adapter, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("pgxadapter: connect: %w", err)
	}
	a := &Adapter{pool: pool, tableName: defaultTableName}
	for _, o := range opts {
		o(a)
	}
	if err := a.createTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// NewAdapterFromPool wraps an existing pool instead of opening a new
// one, for callers that already manage pgx connection lifecycles.
func NewAdapterFromPool(pool *pgxpool.Pool, opts ...Option) *Adapter {
	a := &Adapter{pool: pool, tableName: defaultTableName}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Adapter) createTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		ptype VARCHAR(16) NOT NULL,
		v0 VARCHAR(255) NOT NULL DEFAULT '',
		v1 VARCHAR(255) NOT NULL DEFAULT '',
		v2 VARCHAR(255) NOT NULL DEFAULT '',
		v3 VARCHAR(255) NOT NULL DEFAULT '',
		v4 VARCHAR(255) NOT NULL DEFAULT '',
		v5 VARCHAR(255) NOT NULL DEFAULT ''
	)`, a.tableName)
	_, err := a.pool.Exec(ctx, ddl)
	return err
}

// Close releases the underlying connection pool.
func (a *Adapter) Close() {
	a.pool.Close()
}

// LoadPolicy loads every row into m. Equivalent to LoadPolicyCtx with
// context.Background.
func (a *Adapter) LoadPolicy(m model.Model) error {
	return a.LoadPolicyCtx(context.Background(), m)
}

// LoadPolicyCtx loads every row into m.
func (a *Adapter) LoadPolicyCtx(ctx context.Context, m model.Model) error {
	rows, err := a.pool.Query(ctx, fmt.Sprintf("SELECT ptype, v0, v1, v2, v3, v4, v5 FROM %s", a.tableName))
	if err != nil {
		return fmt.Errorf("pgxadapter: load: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ptype string
		var fields [maxFields]string
		if err := rows.Scan(&ptype, &fields[0], &fields[1], &fields[2], &fields[3], &fields[4], &fields[5]); err != nil {
			return fmt.Errorf("pgxadapter: scan: %w", err)
		}
		rule := trimTrailingEmpty(fields[:])
		sec := ptype[:1]
		m.AddPolicy(sec, ptype, rule)
	}
	return rows.Err()
}

// SavePolicy overwrites the table with every rule currently in m, inside
// a single transaction.
func (a *Adapter) SavePolicy(m model.Model) error {
	return a.SavePolicyCtx(context.Background(), m)
}

// SavePolicyCtx overwrites the table with every rule currently in m.
func (a *Adapter) SavePolicyCtx(ctx context.Context, m model.Model) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgxadapter: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", a.tableName)); err != nil {
		return fmt.Errorf("pgxadapter: clear: %w", err)
	}

	var batch [][]interface{}
	for sec, amap := range m {
		if sec != "p" && sec != "g" {
			continue
		}
		for ptype, ast := range amap {
			for _, rule := range ast.Policy {
				batch = append(batch, rowValues(ptype, rule))
			}
		}
	}
	if len(batch) > 0 {
		cols := []string{"ptype", "v0", "v1", "v2", "v3", "v4", "v5"}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{a.tableName}, cols, pgx.CopyFromRows(batch)); err != nil {
			return fmt.Errorf("pgxadapter: copy: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgxadapter: commit: %w", err)
	}
	return nil
}

// AddPolicy inserts a single rule row.
func (a *Adapter) AddPolicy(sec string, ptype string, rule []string) error {
	return a.AddPolicyCtx(context.Background(), sec, ptype, rule)
}

// AddPolicyCtx inserts a single rule row.
func (a *Adapter) AddPolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error {
	values := rowValues(ptype, rule)
	_, err := a.pool.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (ptype, v0, v1, v2, v3, v4, v5) VALUES ($1, $2, $3, $4, $5, $6, $7)", a.tableName),
		values...)
	if err != nil {
		return fmt.Errorf("pgxadapter: insert: %w", err)
	}
	return nil
}

// RemovePolicy deletes every row matching ptype and rule exactly.
func (a *Adapter) RemovePolicy(sec string, ptype string, rule []string) error {
	return a.RemovePolicyCtx(context.Background(), sec, ptype, rule)
}

// RemovePolicyCtx deletes every row matching ptype and rule exactly.
func (a *Adapter) RemovePolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error {
	values := rowValues(ptype, rule)
	_, err := a.pool.Exec(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE ptype = $1 AND v0 = $2 AND v1 = $3 AND v2 = $4 AND v3 = $5 AND v4 = $6 AND v5 = $7", a.tableName),
		values...)
	if err != nil {
		return fmt.Errorf("pgxadapter: delete: %w", err)
	}
	return nil
}

// RemoveFilteredPolicy deletes every row matching ptype and the filter
// described by fieldIndex/fieldValues.
func (a *Adapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.RemoveFilteredPolicyCtx(context.Background(), sec, ptype, fieldIndex, fieldValues...)
}

// RemoveFilteredPolicyCtx deletes every row matching ptype and the
// filter described by fieldIndex/fieldValues.
func (a *Adapter) RemoveFilteredPolicyCtx(ctx context.Context, sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	where, args := whereClause(ptype, fieldIndex, fieldValues)
	_, err := a.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", a.tableName, where), args...)
	if err != nil {
		return fmt.Errorf("pgxadapter: delete filtered: %w", err)
	}
	return nil
}

func rowValues(ptype string, rule []string) []interface{} {
	row := make([]interface{}, maxFields+1)
	row[0] = ptype
	for i := 0; i < maxFields; i++ {
		if i < len(rule) {
			row[i+1] = rule[i]
		} else {
			row[i+1] = ""
		}
	}
	return row
}

func whereClause(ptype string, fieldIndex int, fieldValues []string) (string, []interface{}) {
	var clauses []string
	args := []interface{}{ptype}
	clauses = append(clauses, "ptype = $1")
	for i, v := range fieldValues {
		if v == "" {
			continue
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("v%d = $%d", fieldIndex+i, len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func trimTrailingEmpty(fields []string) []string {
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	return append([]string{}, fields[:end]...)
}

var (
	_ persist.Adapter        = (*Adapter)(nil)
	_ persist.ContextAdapter = (*Adapter)(nil)
)
