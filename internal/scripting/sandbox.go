// Package scripting runs Lua roll scripts: small programs that chain dice
// expressions through engine.dice.roll and report through engine.log. Each
// script gets its own interpreter with file, module and GC access removed and
// a fixed opcode budget.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of a roll script when the
// scripting.instruction_limit setting is zero.
const DefaultInstructionLimit = 100_000

// blockedGlobals are the base-library functions a roll script may not call.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opcodeBudget is spent by one unit every time the VM polls Done, which
// gopher-lua does before each opcode when a context is attached. The context
// is cancelled once the budget is gone, so a looping script fails with a
// context error instead of hanging the CLI.
type opcodeBudget struct {
	context.Context
	left   atomic.Int64
	cancel context.CancelFunc
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpcodeBudget(n int) (*opcodeBudget, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(n))
	return b, cancel
}

// NewSandboxedState returns an interpreter for one roll script. Only the
// base, table, string and math libraries are opened, blockedGlobals are nil,
// and at most instLimit opcodes run (DefaultInstructionLimit when instLimit
// is zero or negative).
//
// The caller must call both the returned cancel func and L.Close.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	budget, cancel := newOpcodeBudget(instLimit)
	L.SetContext(budget)
	return L, cancel
}
