package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/autoreplace/internal/rule"
)

// ModuleName is the global the rules API is installed under.
const ModuleName = "autoreplace"

// RuleStore is the part of the rule store scripts can reach.
type RuleStore interface {
	Append(r rule.Rule) rule.Rule
	RemoveRule(id string) bool
	All() []rule.Rule
}

// OpenRules installs the rules module bound to store.
func (s *State) OpenRules(store RuleStore) {
	api := &rulesAPI{store: store}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"add":    api.add,
		"remove": api.remove,
		"list":   api.list,
	})
}

type rulesAPI struct {
	store RuleStore
}

// add{...} appends a rule and returns its id.
// Table fields: trigger, replacement, exclude_code, apply_on_paste.
func (a *rulesAPI) add(L *lua.LState) int {
	fields := L.CheckTable(1)

	r := rule.New()
	r.Trigger = optString(L, fields, "trigger")
	r.Replacement = optString(L, fields, "replacement")
	r.ExcludeCodeBlocks = optBool(L, fields, "exclude_code", r.ExcludeCodeBlocks)
	r.ApplyOnPaste = optBool(L, fields, "apply_on_paste", r.ApplyOnPaste)

	r = a.store.Append(r)

	L.Push(lua.LString(r.ID))
	return 1
}

// remove(id) removes a rule and reports whether it existed.
func (a *rulesAPI) remove(L *lua.LState) int {
	id := L.CheckString(1)

	L.Push(lua.LBool(a.store.RemoveRule(id)))
	return 1
}

// list() returns every rule as an array of tables in store order.
func (a *rulesAPI) list(L *lua.LState) int {
	rules := a.store.All()

	out := L.CreateTable(len(rules), 0)
	for _, r := range rules {
		t := L.CreateTable(0, 5)
		t.RawSetString("id", lua.LString(r.ID))
		t.RawSetString("trigger", lua.LString(r.Trigger))
		t.RawSetString("replacement", lua.LString(r.Replacement))
		t.RawSetString("exclude_code", lua.LBool(r.ExcludeCodeBlocks))
		t.RawSetString("apply_on_paste", lua.LBool(r.ApplyOnPaste))
		out.Append(t)
	}

	L.Push(out)
	return 1
}

func optString(L *lua.LState, t *lua.LTable, key string) string {
	switch v := t.RawGetString(key).(type) {
	case *lua.LNilType:
		return ""
	case lua.LString:
		return string(v)
	default:
		L.ArgError(1, key+" must be a string")
		return ""
	}
}

func optBool(L *lua.LState, t *lua.LTable, key string, def bool) bool {
	switch v := t.RawGetString(key).(type) {
	case *lua.LNilType:
		return def
	case lua.LBool:
		return bool(v)
	default:
		L.ArgError(1, key+" must be a boolean")
		return def
	}
}
