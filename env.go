// env.go — lexical environments.
package tram

import "fmt"

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward from the innermost frame; the first match wins, so an inner
// binding shadows but never destroys an outer one. Frames stay alive for as
// long as any closure captures them.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any outer binding. Re-defining
// a name already present in this frame overwrites its slot.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest visible binding of name. It never defines: if no
// frame in the chain binds name, Set reports an error.
func (e *Env) Set(name string, v Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return nil
		}
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding of name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
