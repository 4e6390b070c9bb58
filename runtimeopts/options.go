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

// Package runtimeopts loads the tunables that shape an enforcer's
// runtime behavior (cache sizing, auto-save/auto-notify toggles, logger
// backend) from a TOML file, so a deployment can change them without a
// rebuild.
package runtimeopts

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
	logruslogger "github.com/EnthuZiastic/casbin-ex2-sub003/log/logrus-logger"
)

// LoggerKind selects which log.Logger implementation an enforcer wires
// up at startup.
type LoggerKind string

const (
	LoggerDefault LoggerKind = "default"
	LoggerLogrus  LoggerKind = "logrus"
	LoggerNone    LoggerKind = "none"
)

// EnforcerOptions mirrors the Enforcer.Enable* toggles and cache sizing
// knobs, loadable from config rather than wired in code.
type EnforcerOptions struct {
	CacheSize            int        `toml:"cache_size"`
	MaxHierarchyLevel    int        `toml:"max_hierarchy_level"`
	AutoSave             bool       `toml:"auto_save"`
	AutoBuildRoleLinks   bool       `toml:"auto_build_role_links"`
	AutoNotifyWatcher    bool       `toml:"auto_notify_watcher"`
	AutoNotifyDispatcher bool       `toml:"auto_notify_dispatcher"`
	AcceptJSONRequest    bool       `toml:"accept_json_request"`
	Logger               LoggerKind `toml:"logger"`
}

// Default returns the options an Enforcer is constructed with when no
// config file is present.
func Default() EnforcerOptions {
	return EnforcerOptions{
		CacheSize:            1000,
		MaxHierarchyLevel:    10,
		AutoSave:             true,
		AutoBuildRoleLinks:   true,
		AutoNotifyWatcher:    true,
		AutoNotifyDispatcher: true,
		AcceptJSONRequest:    false,
		Logger:               LoggerDefault,
	}
}

// Load reads path and overlays it on top of Default(), so a file that
// only sets one field leaves the rest at their defaults.
func Load(path string) (EnforcerOptions, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return opts, fmt.Errorf("runtimeopts: load %s: %w", path, err)
	}
	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// LoadString is Load for a config already held in memory (e.g. fetched
// from a secrets manager or embedded at build time).
func LoadString(data string) (EnforcerOptions, error) {
	opts := Default()
	if _, err := toml.Decode(data, &opts); err != nil {
		return opts, fmt.Errorf("runtimeopts: decode: %w", err)
	}
	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// NewLogger builds the log.Logger this configuration names, enabled
// according to the caller's request.
func (o EnforcerOptions) NewLogger(enable bool) (log.Logger, error) {
	var l log.Logger
	switch o.Logger {
	case LoggerLogrus:
		l = logruslogger.New(nil)
	case LoggerNone, LoggerDefault, "":
		l = &log.DefaultLogger{}
	default:
		return nil, fmt.Errorf("runtimeopts: unknown logger kind %q", o.Logger)
	}
	l.EnableLog(enable && o.Logger != LoggerNone)
	return l, nil
}

func (o EnforcerOptions) validate() error {
	if o.CacheSize < 0 {
		return fmt.Errorf("runtimeopts: cache_size must be >= 0, got %d", o.CacheSize)
	}
	if o.MaxHierarchyLevel <= 0 {
		return fmt.Errorf("runtimeopts: max_hierarchy_level must be > 0, got %d", o.MaxHierarchyLevel)
	}
	switch o.Logger {
	case LoggerDefault, LoggerLogrus, LoggerNone, "":
	default:
		return fmt.Errorf("runtimeopts: unknown logger kind %q", o.Logger)
	}
	return nil
}
