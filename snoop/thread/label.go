// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thread

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// Entry point discovery errors.
var (
	// ErrNoTarget means there is no work to derive a label from.
	ErrNoTarget = errors.New("thread: no target")

	// ErrNoRunMethod means the target is neither a function nor a Runnable.
	ErrNoRunMethod = errors.New("thread: target has no Run method")

	// ErrNoSymbol means the target has no name the runtime can report.
	ErrNoSymbol = errors.New("thread: target has no symbol")
)

// runSuffix is appended to the declaring type or function of the work unit.
const runSuffix = "#run"

// EntryPoint derives the attribution label of a unit of work.
//
// Rules:
//   - a value with a Run() method (any Runnable) yields "<pkg>.<Type>#run",
//     where Type declares Run: pointer indirections are stripped, and a Run
//     promoted from an embedded field names the embedded type
//   - a func() or RunnableFunc yields "<function symbol>#run", e.g.
//     "main.worker#run" or "main.main.func1#run" for a closure
//
// Returns a wrapped ErrNoTarget, ErrNoRunMethod or ErrNoSymbol when no label
// can be derived.
func EntryPoint(target any) (string, error) {
	switch fn := target.(type) {
	case nil:
		return "", ErrNoTarget
	case func():
		return funcEntryPoint(fn)
	case RunnableFunc:
		return funcEntryPoint(fn)
	case Runnable:
		return typeEntryPoint(reflect.TypeOf(fn))
	default:
		return "", fmt.Errorf("%w: %T", ErrNoRunMethod, target)
	}
}

func funcEntryPoint(fn func()) (string, error) {
	if fn == nil {
		return "", ErrNoTarget
	}
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil || f.Name() == "" {
		return "", ErrNoSymbol
	}
	return f.Name() + runSuffix, nil
}

func typeEntryPoint(typ reflect.Type) (string, error) {
	typ = declaringType(typ)
	if typ.Name() == "" {
		return "", fmt.Errorf("%w: unnamed type %s", ErrNoSymbol, typ)
	}
	return typ.String() + runSuffix, nil
}

// autogenerated is the file the runtime reports for compiler-generated
// method wrappers, including those of promoted methods.
const autogenerated = "<autogenerated>"

// declaringType returns the type that declares Run for typ. A promoted
// Run is traced back through embedded fields, shallowest first, as Go
// resolves promotion. It falls back to typ with pointers stripped when no
// declaration is found, such as when Run comes from an embedded interface.
func declaringType(typ reflect.Type) reflect.Type {
	typ = deref(typ)
	seen := map[reflect.Type]bool{typ: true}
	level := []reflect.Type{typ}
	for len(level) > 0 {
		var next []reflect.Type
		for _, t := range level {
			if declaresRun(t) || declaresRun(reflect.PointerTo(t)) {
				return t
			}
			if t.Kind() != reflect.Struct {
				continue
			}
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if !f.Anonymous {
					continue
				}
				ft := deref(f.Type)
				if ft.Kind() == reflect.Interface || seen[ft] {
					continue
				}
				seen[ft] = true
				next = append(next, ft)
			}
		}
		level = next
	}
	return typ
}

func deref(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// declaresRun reports whether the Run method of typ is written in source
// rather than generated as a wrapper.
func declaresRun(typ reflect.Type) bool {
	m, ok := typ.MethodByName("Run")
	if !ok || !m.Func.IsValid() {
		return false
	}
	// The last frame is the physical function at the entry PC, even when
	// another function was inlined into it.
	frames := runtime.CallersFrames([]uintptr{m.Func.Pointer() + 1})
	var outer runtime.Frame
	for {
		frame, more := frames.Next()
		outer = frame
		if !more {
			break
		}
	}
	return outer.File != "" && outer.File != autogenerated
}
