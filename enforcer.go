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

// Package casbin implements an authorization library that supports
// access control models like ACL, RBAC and ABAC, driven entirely by
// configuration text rather than hard-coded policy logic.
package casbin

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/EnthuZiastic/casbin-ex2-sub003/effector"
	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
	"github.com/EnthuZiastic/casbin-ex2-sub003/persist"
	fileadapter "github.com/EnthuZiastic/casbin-ex2-sub003/persist/file-adapter"
	"github.com/EnthuZiastic/casbin-ex2-sub003/rbac"
	defaultrolemanager "github.com/EnthuZiastic/casbin-ex2-sub003/rbac/default-role-manager"
	"github.com/EnthuZiastic/casbin-ex2-sub003/util"

	"github.com/Knetic/govaluate"
	"github.com/tidwall/gjson"
)

// Enforcer is the primary entry point: it owns the model, the policy
// store embedded in that model, the role managers derived from it, and
// the adapter/watcher/dispatcher that keep it in sync with the outside
// world.
type Enforcer struct {
	modelPath string
	model     model.Model
	fm        model.FunctionMap
	eft       effector.Effector

	adapter    persist.Adapter
	watcher    persist.Watcher
	dispatcher persist.Dispatcher
	rmMap      map[string]rbac.RoleManager
	// matcherMap caches compiled matcher expressions keyed by their
	// (escaped, comment-stripped) text, since govaluate parsing is the
	// most expensive part of a hot enforce() call.
	matcherMap sync.Map

	enabled               bool
	autoSave              bool
	autoBuildRoleLinks    bool
	autoNotifyWatcher     bool
	autoNotifyDispatcher  bool
	acceptJSONRequest     bool

	logger log.Logger
}

// EnforceContext selects a non-default request/policy/effect/matcher
// definition (e.g. "r2"/"p2"/"e2"/"m2") for a single Enforce call, so one
// enforcer can serve more than one model shape.
type EnforceContext struct {
	RType string
	PType string
	EType string
	MType string
}

// GetCacheKey returns a string uniquely identifying this context, for use
// as a decision-cache namespace.
func (e EnforceContext) GetCacheKey() string {
	return "EnforceContext{" + e.RType + "-" + e.PType + "-" + e.EType + "-" + e.MType + "}"
}

// NewEnforceContext builds the r/p/e/m context for suffix (e.g. "2" for
// r2/p2/e2/m2).
func NewEnforceContext(suffix string) EnforceContext {
	return EnforceContext{
		RType: "r" + suffix,
		PType: "p" + suffix,
		EType: "e" + suffix,
		MType: "m" + suffix,
	}
}

// NewEnforcer creates an enforcer from a model and, optionally, an
// adapter or policy source. Accepted forms:
//
//	NewEnforcer("model.conf", "policy.csv")
//	NewEnforcer("model.conf", someAdapter)
//	NewEnforcer(someModel, someAdapter)
//	NewEnforcer(someModel)
//	NewEnforcer("model.conf")
//
// A trailing bool enables logging; a trailing log.Logger (checked before
// the bool) overrides the default logger.
func NewEnforcer(params ...interface{}) (*Enforcer, error) {
	e := &Enforcer{logger: &log.DefaultLogger{}}

	parsedParamLen := 0
	paramLen := len(params)
	if paramLen >= 1 {
		if enableLog, ok := params[paramLen-1].(bool); ok {
			e.EnableLog(enableLog)
			parsedParamLen++
		}
	}

	if paramLen-parsedParamLen >= 1 {
		if logger, ok := params[paramLen-parsedParamLen-1].(log.Logger); ok {
			e.logger = logger
			parsedParamLen++
		}
	}

	switch paramLen - parsedParamLen {
	case 2:
		switch p0 := params[0].(type) {
		case string:
			switch p1 := params[1].(type) {
			case string:
				if err := e.InitWithFile(p0, p1); err != nil {
					return nil, err
				}
			default:
				adapter, ok := p1.(persist.Adapter)
				if !ok {
					return nil, errors.New("invalid parameters for enforcer")
				}
				if err := e.InitWithAdapter(p0, adapter); err != nil {
					return nil, err
				}
			}
		case model.Model:
			adapter, _ := params[1].(persist.Adapter)
			if err := e.InitWithModelAndAdapter(p0, adapter); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("invalid parameters for enforcer")
		}
	case 1:
		switch p0 := params[0].(type) {
		case string:
			if err := e.InitWithFile(p0, ""); err != nil {
				return nil, err
			}
		case model.Model:
			if err := e.InitWithModelAndAdapter(p0, nil); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("invalid parameters for enforcer")
		}
	case 0:
		return e, nil
	default:
		return nil, errors.New("invalid parameters for enforcer")
	}

	return e, nil
}

// InitWithFile initializes an enforcer from a model file and a CSV
// policy file.
func (e *Enforcer) InitWithFile(modelPath string, policyPath string) error {
	a := fileadapter.NewAdapter(policyPath)
	return e.InitWithAdapter(modelPath, a)
}

// InitWithAdapter initializes an enforcer from a model file and an
// arbitrary adapter.
func (e *Enforcer) InitWithAdapter(modelPath string, adapter persist.Adapter) error {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return err
	}
	if err := e.InitWithModelAndAdapter(m, adapter); err != nil {
		return err
	}
	e.modelPath = modelPath
	return nil
}

// InitWithModelAndAdapter initializes an enforcer from an already-parsed
// model and an adapter, loading the policy unless the adapter is a
// FilteredAdapter that hasn't been asked to load yet.
func (e *Enforcer) InitWithModelAndAdapter(m model.Model, adapter persist.Adapter) error {
	e.adapter = adapter
	e.model = m
	m.SetLogger(e.logger)
	e.model.PrintModel(e.logger)
	e.fm = model.LoadFunctionMap()

	e.initialize()

	fa, ok := e.adapter.(persist.FilteredAdapter)
	if e.adapter != nil && (!ok || !fa.IsFiltered()) {
		if err := e.LoadPolicy(); err != nil {
			return err
		}
	}
	return nil
}

// SetLogger changes the enforcer's logger, propagating it to the model
// and every role manager.
func (e *Enforcer) SetLogger(logger log.Logger) {
	e.logger = logger
	e.model.SetLogger(e.logger)
	for k := range e.rmMap {
		e.rmMap[k].SetLogger(e.logger)
	}
}

func (e *Enforcer) initialize() {
	e.rmMap = map[string]rbac.RoleManager{}
	e.eft = effector.NewDefaultEffector()
	e.watcher = nil
	e.matcherMap = sync.Map{}

	e.enabled = true
	e.autoSave = true
	e.autoBuildRoleLinks = true
	e.autoNotifyWatcher = true
	e.autoNotifyDispatcher = true
	e.initRmMap()
}

// LoadModel reparses the model from modelPath. The existing policy is
// discarded; call LoadPolicy afterward to repopulate it.
func (e *Enforcer) LoadModel() error {
	m, err := model.NewModelFromFile(e.modelPath)
	if err != nil {
		return err
	}
	e.model = m
	e.model.SetLogger(e.logger)
	e.model.PrintModel(e.logger)
	e.fm = model.LoadFunctionMap()

	e.initialize()
	return nil
}

// GetModel returns the current model.
func (e *Enforcer) GetModel() model.Model {
	return e.model
}

// SetModel replaces the current model, rebuilding role managers and the
// function map. The policy is not reloaded.
func (e *Enforcer) SetModel(m model.Model) {
	e.model = m
	e.fm = model.LoadFunctionMap()
	e.model.SetLogger(e.logger)
	e.initialize()
}

// GetAdapter returns the current adapter.
func (e *Enforcer) GetAdapter() persist.Adapter {
	return e.adapter
}

// SetAdapter replaces the current adapter. It does not reload the
// policy; call LoadPolicy to do so.
func (e *Enforcer) SetAdapter(adapter persist.Adapter) {
	e.adapter = adapter
}

// SetWatcher registers watcher and wires its update callback to
// LoadPolicy, unless watcher implements WatcherEx (whose richer callback
// has no generic implementation and must be wired by the caller).
func (e *Enforcer) SetWatcher(watcher persist.Watcher) error {
	e.watcher = watcher
	if _, ok := e.watcher.(persist.WatcherEx); ok {
		return nil
	}
	return watcher.SetUpdateCallback(func(string) { _ = e.LoadPolicy() })
}

// SetDispatcher registers dispatcher; once set, policy mutations are
// forwarded to it instead of applied directly to the local model (see
// enforcer_distributed.go).
func (e *Enforcer) SetDispatcher(dispatcher persist.Dispatcher) {
	e.dispatcher = dispatcher
}

// GetRoleManager returns the role manager for the default "g" section.
func (e *Enforcer) GetRoleManager() rbac.RoleManager {
	return e.rmMap["g"]
}

// GetNamedRoleManager returns the role manager for ptype (e.g. "g2").
func (e *Enforcer) GetNamedRoleManager(ptype string) rbac.RoleManager {
	return e.rmMap[ptype]
}

// SetRoleManager replaces the role manager for the default "g" section.
func (e *Enforcer) SetRoleManager(rm rbac.RoleManager) {
	e.invalidateMatcherMap()
	e.rmMap["g"] = rm
}

// SetNamedRoleManager replaces the role manager for ptype.
func (e *Enforcer) SetNamedRoleManager(ptype string, rm rbac.RoleManager) {
	e.invalidateMatcherMap()
	e.rmMap[ptype] = rm
}

// SetEffector replaces the policy-effect combiner.
func (e *Enforcer) SetEffector(eft effector.Effector) {
	e.eft = eft
}

// AddFunction registers fn under name so matcher expressions can call it
// as name(...). Overrides any built-in or previously registered function
// of the same name; invalidates cached matcher expressions since they
// were compiled against the old function set.
func (e *Enforcer) AddFunction(name string, fn govaluate.ExpressionFunction) {
	e.invalidateMatcherMap()
	e.fm.AddFunction(name, fn)
}

// ClearPolicy removes every policy and grouping rule, routing through
// the dispatcher when one is configured and auto-notification is on.
func (e *Enforcer) ClearPolicy() {
	e.invalidateMatcherMap()
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		_ = e.dispatcher.ClearPolicy()
		return
	}
	e.model.ClearPolicy()
}

// LoadPolicy reloads every rule from the adapter into a fresh copy of
// the model, sorts priority/subject-hierarchy policies, and rebuilds
// role links, swapping the new model in only once all of that succeeds.
func (e *Enforcer) LoadPolicy() error {
	e.invalidateMatcherMap()

	needToRebuild := false
	newModel := e.model.Copy()
	newModel.ClearPolicy()

	var err error
	defer func() {
		if err != nil && e.autoBuildRoleLinks && needToRebuild {
			_ = e.BuildRoleLinks()
		}
	}()

	if err = e.adapter.LoadPolicy(newModel); err != nil {
		return &AdapterError{Cause: err}
	}
	if err = newModel.SortPoliciesBySubjectHierarchy(); err != nil {
		return err
	}
	if err = newModel.SortPoliciesByPriority(); err != nil {
		return err
	}

	if e.autoBuildRoleLinks {
		needToRebuild = true
		for _, rm := range e.rmMap {
			if err = rm.Clear(); err != nil {
				return err
			}
		}
		if err = newModel.BuildRoleLinks(e.rmMap); err != nil {
			return err
		}
	}
	e.model = newModel
	return nil
}

func (e *Enforcer) loadFilteredPolicy(filter interface{}) error {
	e.invalidateMatcherMap()

	filteredAdapter, ok := e.adapter.(persist.FilteredAdapter)
	if !ok {
		return errors.New("filtered policies are not supported by this adapter")
	}
	if err := filteredAdapter.LoadFilteredPolicy(e.model, filter); err != nil {
		return &AdapterError{Cause: err}
	}
	if err := e.model.SortPoliciesBySubjectHierarchy(); err != nil {
		return err
	}
	if err := e.model.SortPoliciesByPriority(); err != nil {
		return err
	}

	e.initRmMap()
	e.model.PrintPolicy(e.logger)
	if e.autoBuildRoleLinks {
		if err := e.BuildRoleLinks(); err != nil {
			return err
		}
	}
	return nil
}

// LoadFilteredPolicy discards the current policy and loads only the
// rules matching filter, using a FilteredAdapter.
func (e *Enforcer) LoadFilteredPolicy(filter interface{}) error {
	e.model.ClearPolicy()
	return e.loadFilteredPolicy(filter)
}

// LoadIncrementalFilteredPolicy loads the rules matching filter without
// clearing the existing policy first.
func (e *Enforcer) LoadIncrementalFilteredPolicy(filter interface{}) error {
	return e.loadFilteredPolicy(filter)
}

// IsFiltered reports whether the current policy was loaded with a
// filter still in effect.
func (e *Enforcer) IsFiltered() bool {
	fa, ok := e.adapter.(persist.FilteredAdapter)
	return ok && fa.IsFiltered()
}

// SavePolicy writes the current policy back to the adapter and notifies
// the watcher, if any. Refuses to run against a filtered policy, since
// that would silently discard every rule outside the filter's scope.
func (e *Enforcer) SavePolicy() error {
	if e.IsFiltered() {
		return ErrFilteredPolicy
	}
	if err := e.adapter.SavePolicy(e.model); err != nil {
		return &AdapterError{Cause: err}
	}
	if e.watcher == nil {
		return nil
	}
	if watcher, ok := e.watcher.(persist.WatcherEx); ok {
		return watcher.UpdateForSavePolicy(e.model)
	}
	return e.watcher.Update()
}

func (e *Enforcer) initRmMap() {
	for ptype := range e.model["g"] {
		if rm, ok := e.rmMap[ptype]; ok {
			_ = rm.Clear()
			continue
		}
		e.rmMap[ptype] = defaultrolemanager.NewRoleManager(10)
		if mAst, ok := e.model["m"]["m"]; ok && strings.Contains(mAst.Value, "keyMatch(r_dom, p_dom)") {
			e.AddNamedDomainMatchingFunc(ptype, "g", util.KeyMatch)
		}
	}
}

// EnableEnforce toggles enforcement; while disabled, Enforce always
// returns true.
func (e *Enforcer) EnableEnforce(enable bool) {
	e.enabled = enable
}

// EnableLog toggles the logger.
func (e *Enforcer) EnableLog(enable bool) {
	e.logger.EnableLog(enable)
}

// IsLogEnabled reports the logger's current enabled state.
func (e *Enforcer) IsLogEnabled() bool {
	return e.logger.IsEnabled()
}

// EnableAutoNotifyWatcher toggles whether mutations automatically notify
// the watcher.
func (e *Enforcer) EnableAutoNotifyWatcher(enable bool) {
	e.autoNotifyWatcher = enable
}

// EnableAutoNotifyDispatcher toggles whether mutations automatically
// notify the dispatcher.
func (e *Enforcer) EnableAutoNotifyDispatcher(enable bool) {
	e.autoNotifyDispatcher = enable
}

// EnableAutoSave toggles whether mutations automatically persist to the
// adapter.
func (e *Enforcer) EnableAutoSave(autoSave bool) {
	e.autoSave = autoSave
}

// EnableAutoBuildRoleLinks toggles whether grouping-policy mutations
// automatically rebuild role links.
func (e *Enforcer) EnableAutoBuildRoleLinks(autoBuildRoleLinks bool) {
	e.autoBuildRoleLinks = autoBuildRoleLinks
}

// EnableAcceptJSONRequest toggles JSON-object support for request
// fields (see requestJSONReplace).
func (e *Enforcer) EnableAcceptJSONRequest(acceptJSONRequest bool) {
	e.acceptJSONRequest = acceptJSONRequest
}

// BuildRoleLinks rebuilds every role manager's graph from scratch out of
// the current grouping policy.
func (e *Enforcer) BuildRoleLinks() error {
	for _, rm := range e.rmMap {
		if err := rm.Clear(); err != nil {
			return err
		}
	}
	return e.model.BuildRoleLinks(e.rmMap)
}

// BuildIncrementalRoleLinks applies just the given grouping rules
// (added or removed, per op) to ptype's role manager.
func (e *Enforcer) BuildIncrementalRoleLinks(op model.PolicyOp, ptype string, rules [][]string) error {
	e.invalidateMatcherMap()
	return e.model.BuildIncrementalRoleLinks(e.rmMap, op, "g", ptype, rules)
}

func (e *Enforcer) invalidateMatcherMap() {
	e.matcherMap = sync.Map{}
}

// enforce evaluates a single request against the compiled matcher for
// pType/mType, combining per-rule results with the configured effector.
// matcher overrides the model's own matcher text when non-empty.
// explains, when non-nil, is set to the rule that decided the request
// (if any) so callers building EnforceEx can report it.
func (e *Enforcer) enforce(matcher string, explains *[]string, rvals ...interface{}) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()

	if !e.enabled {
		return true, nil
	}

	functions := e.fm.GetFunctions()
	for key, ast := range e.model["g"] {
		functions[key] = util.GenerateGFunction(ast.RM)
	}

	rType, pType, eType, mType := "r", "p", "e", "m"
	if len(rvals) != 0 {
		if ctx, ok := rvals[0].(EnforceContext); ok {
			rType, pType, eType, mType = ctx.RType, ctx.PType, ctx.EType, ctx.MType
			rvals = rvals[1:]
		}
	}

	var expString string
	if matcher == "" {
		expString = e.model["m"][mType].Value
	} else {
		expString = util.RemoveComments(util.EscapeAssertion(matcher))
	}

	rTokens := make(map[string]int, len(e.model["r"][rType].Tokens))
	for i, token := range e.model["r"][rType].Tokens {
		rTokens[token] = i
	}
	pTokens := make(map[string]int, len(e.model["p"][pType].Tokens))
	for i, token := range e.model["p"][pType].Tokens {
		pTokens[token] = i
	}

	if e.acceptJSONRequest {
		expString = requestJSONReplace(expString, rTokens, rvals)
	}

	parameters := enforceParameters{
		rTokens: rTokens,
		rVals:   rvals,
		pTokens: pTokens,
	}

	hasEval := util.HasEval(expString)
	if hasEval {
		functions["eval"] = generateEvalFunction(functions, &parameters)
	}

	expression, err := e.getAndStoreMatcherExpression(hasEval, expString, functions)
	if err != nil {
		return false, err
	}

	if len(e.model["r"][rType].Tokens) != len(rvals) {
		return false, fmt.Errorf("invalid request size: expected %d, got %d, rvals: %v",
			len(e.model["r"][rType].Tokens), len(rvals), rvals)
	}

	var policyEffects []effector.Effect
	var matcherResults []float64
	var effect effector.Effect
	explainIndex := -1

	if policyLen := len(e.model["p"][pType].Policy); policyLen != 0 && strings.Contains(expString, pType+"_") {
		policyEffects = make([]effector.Effect, policyLen)
		matcherResults = make([]float64, policyLen)

		for policyIndex, pvals := range e.model["p"][pType].Policy {
			if len(e.model["p"][pType].Tokens) != len(pvals) {
				return false, fmt.Errorf("invalid policy size: expected %d, got %d, pvals: %v",
					len(e.model["p"][pType].Tokens), len(pvals), pvals)
			}

			if e.acceptJSONRequest {
				pvalsCopy := make([]string, len(pvals))
				for i, pStr := range pvals {
					pvalsCopy[i] = requestJSONReplace(util.EscapeAssertion(pStr), rTokens, rvals)
				}
				parameters.pVals = pvalsCopy
			} else {
				parameters.pVals = pvals
			}

			// A rule whose matcher fails to evaluate (or returns a
			// non-bool/non-numeric value) is treated as not matched,
			// not as a failure of the whole request: matcherResults
			// and policyEffects stay at their zero/Indeterminate
			// values below and evaluation continues with the next
			// rule. Only a whole-expression compile failure (above,
			// at getAndStoreMatcherExpression) is surfaced.
			matcherResults[policyIndex] = 0
			policyEffects[policyIndex] = effector.Indeterminate

			result, err := expression.Eval(parameters)
			if err != nil {
				e.logger.LogError(&MatcherError{RuleIndex: policyIndex, Cause: err}, "matcher evaluation failed for policy rule, treating it as not matched")
			} else {
				matched := false
				switch result := result.(type) {
				case bool:
					matched = result
				case float64:
					matched = result != 0
				default:
					e.logger.LogError(&MatcherError{RuleIndex: policyIndex, Cause: errors.New("matcher result should be bool, int or float")}, "treating policy rule as not matched")
				}

				if matched {
					matcherResults[policyIndex] = 1
					if j, ok := parameters.pTokens[pType+"_eft"]; ok {
						switch parameters.pVals[j] {
						case "allow":
							policyEffects[policyIndex] = effector.Allow
						case "deny":
							policyEffects[policyIndex] = effector.Deny
						default:
							policyEffects[policyIndex] = effector.Indeterminate
						}
					} else {
						policyEffects[policyIndex] = effector.Allow
					}
				}
			}

			effect, explainIndex, err = e.eft.MergeEffects(e.model["e"][eType].Value, policyEffects, matcherResults, policyIndex, policyLen)
			if err != nil {
				return false, err
			}
			if effect != effector.Indeterminate {
				break
			}
		}
	} else {
		if hasEval {
			return false, errors.New("please make sure rule exists in policy when using eval() in matcher")
		}

		policyEffects = make([]effector.Effect, 1)
		matcherResults = make([]float64, 1)
		matcherResults[0] = 1
		parameters.pVals = make([]string, len(parameters.pTokens))

		result, err := expression.Eval(parameters)
		if err != nil {
			return false, err
		}
		if b, _ := result.(bool); b {
			policyEffects[0] = effector.Allow
		} else {
			policyEffects[0] = effector.Indeterminate
		}

		effect, explainIndex, err = e.eft.MergeEffects(e.model["e"][eType].Value, policyEffects, matcherResults, 0, 1)
		if err != nil {
			return false, err
		}
	}

	var logExplains [][]string
	if explains != nil {
		if len(*explains) > 0 {
			logExplains = append(logExplains, *explains)
		}
		if explainIndex != -1 && len(e.model["p"][pType].Policy) > explainIndex {
			*explains = e.model["p"][pType].Policy[explainIndex]
			logExplains = append(logExplains, *explains)
		}
	}

	result := effect == effector.Allow
	e.logger.LogEnforce(expString, rvals, result, logExplains)
	return result, nil
}

var requestObjectRegex = regexp.MustCompile(`r[_.][A-Za-z_0-9]+\.[A-Za-z_0-9.]+[A-Za-z_0-9]`)
var requestObjectRegexPrefix = regexp.MustCompile(`r[_.][A-Za-z_0-9]+\.`)

// requestJSONReplace substitutes gjson-resolved field accesses into a
// matcher/policy-rule string, so a request field carrying a JSON object
// (e.g. r.sub = `{"Owner":"alice","Age":30}`) can be dotted into from
// the matcher (r.sub.Owner) as if it were a struct.
func requestJSONReplace(str string, rTokens map[string]int, rvals []interface{}) string {
	matches := requestObjectRegex.FindAllString(str, -1)
	for _, matchesStr := range matches {
		prefix := requestObjectRegexPrefix.FindString(matchesStr)
		jsonPath := strings.TrimPrefix(matchesStr, prefix)
		tokenIndex := rTokens[prefix[:len(prefix)-1]]
		if jsonStr, ok := rvals[tokenIndex].(string); ok {
			newStr := gjson.Get(jsonStr, jsonPath).String()
			if !util.IsNumeric(newStr) {
				newStr = `"` + newStr + `"`
			}
			str = strings.Replace(str, matchesStr, newStr, -1)
		}
	}
	return str
}

func (e *Enforcer) getAndStoreMatcherExpression(hasEval bool, expString string, functions map[string]govaluate.ExpressionFunction) (*govaluate.EvaluableExpression, error) {
	if !hasEval {
		if cached, ok := e.matcherMap.Load(expString); ok {
			return cached.(*govaluate.EvaluableExpression), nil
		}
	}
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expString, functions)
	if err != nil {
		return nil, err
	}
	if !hasEval {
		e.matcherMap.Store(expString, expression)
	}
	return expression, nil
}

// Enforce decides whether rvals (usually sub, obj, act) is allowed under
// the model's own matcher.
func (e *Enforcer) Enforce(rvals ...interface{}) (bool, error) {
	return e.enforce("", nil, rvals...)
}

// EnforceWithMatcher decides rvals using matcher in place of the model's
// configured matcher text.
func (e *Enforcer) EnforceWithMatcher(matcher string, rvals ...interface{}) (bool, error) {
	return e.enforce(matcher, nil, rvals...)
}

// EnforceEx decides rvals and additionally returns the matched rule's
// fields, if any rule decided the result.
func (e *Enforcer) EnforceEx(rvals ...interface{}) (bool, []string, error) {
	explain := []string{}
	result, err := e.enforce("", &explain, rvals...)
	return result, explain, err
}

// EnforceExWithMatcher is EnforceEx with a custom matcher.
func (e *Enforcer) EnforceExWithMatcher(matcher string, rvals ...interface{}) (bool, []string, error) {
	explain := []string{}
	result, err := e.enforce(matcher, &explain, rvals...)
	return result, explain, err
}

// BatchEnforce decides every request in requests against the model's own
// matcher.
func (e *Enforcer) BatchEnforce(requests [][]interface{}) ([]bool, error) {
	results := make([]bool, 0, len(requests))
	for _, request := range requests {
		result, err := e.enforce("", nil, request...)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// BatchEnforceWithMatcher is BatchEnforce with a custom matcher.
func (e *Enforcer) BatchEnforceWithMatcher(matcher string, requests [][]interface{}) ([]bool, error) {
	results := make([]bool, 0, len(requests))
	for _, request := range requests {
		result, err := e.enforce(matcher, nil, request...)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// AddNamedMatchingFunc registers a node-name pattern-matching function
// on ptype's role manager.
func (e *Enforcer) AddNamedMatchingFunc(ptype, name string, fn rbac.MatchingFunc) bool {
	mrm, ok := e.rmMap[ptype].(rbac.MatchingFuncRoleManager)
	if !ok {
		return false
	}
	mrm.AddMatchingFunc(name, fn)
	return true
}

// AddNamedDomainMatchingFunc registers a domain-name pattern-matching
// function on ptype's role manager.
func (e *Enforcer) AddNamedDomainMatchingFunc(ptype, name string, fn rbac.MatchingFunc) bool {
	mrm, ok := e.rmMap[ptype].(rbac.MatchingFuncRoleManager)
	if !ok {
		return false
	}
	mrm.AddDomainMatchingFunc(name, fn)
	return true
}

// enforceParameters implements govaluate.Parameters, resolving r_* and
// p_* identifiers against the current request and policy-rule values.
type enforceParameters struct {
	rTokens map[string]int
	rVals   []interface{}
	pTokens map[string]int
	pVals   []string
}

func (p enforceParameters) Get(name string) (interface{}, error) {
	if name == "" {
		return nil, nil
	}
	switch name[0] {
	case 'p':
		i, ok := p.pTokens[name]
		if !ok {
			return nil, errors.New("no parameter '" + name + "' found")
		}
		return p.pVals[i], nil
	case 'r':
		i, ok := p.rTokens[name]
		if !ok {
			return nil, errors.New("no parameter '" + name + "' found")
		}
		return p.rVals[i], nil
	default:
		return nil, errors.New("no parameter '" + name + "' found")
	}
}

func generateEvalFunction(functions map[string]govaluate.ExpressionFunction, parameters *enforceParameters) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function eval(subrule string) expected 1 argument, got %d", len(args))
		}
		expression, ok := args[0].(string)
		if !ok {
			return nil, errors.New("argument of eval(subrule string) must be a string")
		}
		expression = util.EscapeAssertion(expression)
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
		if err != nil {
			return nil, fmt.Errorf("error while parsing eval parameter: %s, %s", expression, err.Error())
		}
		return expr.Eval(parameters)
	}
}
