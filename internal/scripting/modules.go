package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dnd/internal/dice"
)

// registerModules installs the engine global with its dice and log tables.
// A fatal dice error is stored in *fatal before the Lua error is raised so
// the caller can tell it apart from an ordinary script failure.
//
// Precondition: L must be from NewSandboxedState; fatal must be non-nil.
// Postcondition: engine.dice and engine.log are defined in L.
func (e *Engine) registerModules(L *lua.LState, fatal *error) {
	engine := L.NewTable()

	diceMod := L.NewTable()
	L.SetField(diceMod, "roll", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		res, err := e.roller.RollExpr(text)
		if err != nil {
			if dice.IsFatal(err) {
				*fatal = err
				L.RaiseError("%s", err.Error())
				return 0
			}
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		values := L.NewTable()
		for _, v := range res.Values {
			values.Append(lua.LNumber(v))
		}
		L.Push(values)
		return 1
	}))
	L.SetField(diceMod, "valid", L.NewFunction(func(L *lua.LState) int {
		if _, err := dice.Parse(L.CheckString(1)); err != nil {
			L.Push(lua.LFalse)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	}))
	L.SetField(engine, "dice", diceMod)

	logMod := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": e.logger.Debug,
		"info":  e.logger.Info,
		"warn":  e.logger.Warn,
		"error": e.logger.Error,
	} {
		logFn := fn
		L.SetField(logMod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logMod)

	L.SetGlobal("engine", engine)
}
