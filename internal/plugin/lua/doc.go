// Package lua runs rule scripts in a sandboxed gopher-lua state.
//
// Scripts see the safe subset of the standard library (base, string,
// table, math) plus an "autoreplace" module bound to a rule store:
//
//	autoreplace.add{trigger = "btw", replacement = "by the way"}
//	local id = autoreplace.add{trigger = "fn", replacement = "function", exclude_code = false}
//	for _, r in ipairs(autoreplace.list()) do
//	    if r.trigger == "" then autoreplace.remove(r.id) end
//	end
//
// Running a script from Go:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	state.OpenRules(store)
//	if err := state.DoFile("rules.lua"); err != nil {
//	    return err
//	}
//
// The sandbox removes dofile, loadfile, load and loadstring, and require
// only resolves the safe built-in modules. Every DoFile and DoString call
// runs under the execution timeout.
package lua
