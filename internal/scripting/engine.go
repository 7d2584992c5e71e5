package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dnd/internal/dice"
)

// Roller evaluates the expressions passed to engine.dice.roll. *dice.Roller
// implements it.
type Roller interface {
	RollExpr(text string) (dice.Result, error)
}

// Engine runs Lua scripts in a fresh sandbox per call. Scripts roll dice with
// engine.dice.roll(expr), which returns an array of results or nil plus an
// error message.
type Engine struct {
	roller    Roller
	logger    *zap.Logger
	instLimit int
}

// NewEngine creates an Engine.
//
// Precondition: roller and logger must be non-nil; instLimit >= 0.
func NewEngine(roller Roller, logger *zap.Logger, instLimit int) *Engine {
	return &Engine{roller: roller, logger: logger, instLimit: instLimit}
}

// RunFile executes the Lua file at path.
//
// Postcondition: returns nil on success; a dice.IsFatal error if the script
// hit an internal dice invariant violation; otherwise the Lua error.
func (e *Engine) RunFile(path string) error {
	return e.run(path, func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString executes src as a Lua chunk.
func (e *Engine) RunString(src string) error {
	return e.run("<string>", func(L *lua.LState) error { return L.DoString(src) })
}

func (e *Engine) run(name string, exec func(*lua.LState) error) error {
	L, cancel := NewSandboxedState(e.instLimit)
	defer cancel()
	defer L.Close()

	var fatal error
	e.registerModules(L, &fatal)

	err := exec(L)
	if fatal != nil {
		e.logger.Error("scripting: dice invariant violated",
			zap.String("script", name),
			zap.Error(fatal),
		)
		return fatal
	}
	if err != nil {
		e.logger.Warn("scripting: Lua runtime error",
			zap.String("script", name),
			zap.Error(err),
		)
		return fmt.Errorf("scripting: running %s: %w", name, err)
	}
	return nil
}
