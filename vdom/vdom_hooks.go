// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"github.com/google/uuid"

	"github.com/riptidedev/riptide/util"
)

// Hooks resolve positionally against the current component's hook list,
// so every hook must be called in the same order on every render of a
// component. Every hook except UseDebugValue panics when called outside
// a component body.

// SimpleRef is the typed mutable ref returned by UseRef. It is not tied
// to the document tree; use UseNodeRef (or CreateRef) for ref props.
type SimpleRef[T any] struct {
	Current T
}

type stateSetters struct {
	set   func(any)
	setFn func(func(any) any)
}

func (rc *renderContext) useState(lazyInit func() any) (any, *stateSetters) {
	hook := rc.getOrderedHook()
	if !hook.Init {
		hook.Init = true
		hook.Val = lazyInit()
		inst := rc.comp
		root := rc.root
		hook.setter = &stateSetters{
			set: func(newVal any) {
				if util.SameValue(newVal, hook.Val) {
					return
				}
				hook.Val = newVal
				root.enqueueRender(inst)
			},
			setFn: func(updateFunc func(any) any) {
				newVal := updateFunc(hook.Val)
				if util.SameValue(newVal, hook.Val) {
					return
				}
				hook.Val = newVal
				root.enqueueRender(inst)
			},
		}
	}
	return hook.Val, hook.setter.(*stateSetters)
}

// UseState provides persistent state within a component, returning the
// current value, a setter, and an updater. Setting a value that is the
// same under SameValue is a no-op; anything else queues a re-render. The
// setter identities are stable across renders.
func UseState[T any](initialVal T) (T, func(T), func(func(T) T)) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseState must be called within a component (no render context)")
	}
	return typedState[T](rc, func() any { return initialVal })
}

// UseStateLazy is UseState with a lazy initializer, evaluated only on the
// component's first render.
func UseStateLazy[T any](initFn func() T) (T, func(T), func(func(T) T)) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseStateLazy must be called within a component (no render context)")
	}
	return typedState[T](rc, func() any { return initFn() })
}

func typedState[T any](rc *renderContext, lazyInit func() any) (T, func(T), func(func(T) T)) {
	val, setters := rc.useState(lazyInit)
	rtnVal, ok := val.(T)
	if !ok {
		panic("UseState hook value is not a state (possible out of order or conditional hooks)")
	}
	typedSetVal := func(newVal T) {
		setters.set(newVal)
	}
	typedSetFuncVal := func(updateFunc func(T) T) {
		setters.setFn(func(oldVal any) any {
			return updateFunc(oldVal.(T))
		})
	}
	return rtnVal, typedSetVal, typedSetFuncVal
}

// UseReducer manages state through a reducer. The dispatcher identity is
// stable; the reducer reference is refreshed each render so dispatches
// always see the latest closure.
func UseReducer[S any, A any](reducer func(S, A) S, initialVal S) (S, func(A)) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseReducer must be called within a component (no render context)")
	}
	return typedReducer[S, A](rc, reducer, func() any { return initialVal })
}

// UseReducerInit is UseReducer with an init function transforming the
// initial argument on first render.
func UseReducerInit[S any, I any, A any](reducer func(S, A) S, initialArg I, init func(I) S) (S, func(A)) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseReducerInit must be called within a component (no render context)")
	}
	return typedReducer[S, A](rc, reducer, func() any { return init(initialArg) })
}

func typedReducer[S any, A any](rc *renderContext, reducer func(S, A) S, lazyInit func() any) (S, func(A)) {
	hook := rc.getOrderedHook()
	if !hook.Init {
		hook.Init = true
		hook.Val = lazyInit()
		inst := rc.comp
		root := rc.root
		hook.setter = func(action A) {
			red := hook.latest.(func(S, A) S)
			newVal := red(hook.Val.(S), action)
			if util.SameValue(newVal, hook.Val) {
				return
			}
			hook.Val = newVal
			root.enqueueRender(inst)
		}
	}
	hook.latest = reducer
	val, ok := hook.Val.(S)
	if !ok {
		panic("UseReducer hook value is not a state (possible out of order or conditional hooks)")
	}
	dispatch, ok := hook.setter.(func(A))
	if !ok {
		panic("UseReducer dispatcher type changed across renders")
	}
	return val, dispatch
}

// UseRef returns a mutable ref object that persists for the component's
// lifetime.
func UseRef[T any](initialVal T) *SimpleRef[T] {
	rc := getRenderContext()
	if rc == nil {
		panic("UseRef must be called within a component (no render context)")
	}
	hook := rc.getOrderedHook()
	if !hook.Init {
		hook.Init = true
		hook.Val = &SimpleRef[T]{Current: initialVal}
	}
	ref, ok := hook.Val.(*SimpleRef[T])
	if !ok {
		panic("UseRef hook value is not a ref (possible out of order or conditional hooks)")
	}
	return ref
}

// UseNodeRef returns a stable engine Ref suitable for the ref prop of an
// element or component vnode.
func UseNodeRef() *Ref {
	rc := getRenderContext()
	if rc == nil {
		panic("UseNodeRef must be called within a component (no render context)")
	}
	hook := rc.getOrderedHook()
	if !hook.Init {
		hook.Init = true
		hook.Val = &Ref{}
	}
	ref, ok := hook.Val.(*Ref)
	if !ok {
		panic("UseNodeRef hook value is not a ref (possible out of order or conditional hooks)")
	}
	return ref
}

func (rc *renderContext) useMemo(compute func() any, deps []any) any {
	hook := rc.getOrderedHook()
	if !hook.Init || deps == nil || !util.DepsEqual(hook.Deps, deps) {
		hook.Init = true
		hook.Val = compute()
		hook.Deps = deps
	}
	return hook.Val
}

// UseMemo re-evaluates compute when the dependency list changes
// element-wise under SameValue. A nil deps list re-evaluates every
// render; an empty one evaluates once.
func UseMemo[T any](compute func() T, deps []any) T {
	rc := getRenderContext()
	if rc == nil {
		panic("UseMemo must be called within a component (no render context)")
	}
	val := rc.useMemo(func() any { return compute() }, deps)
	rtn, ok := val.(T)
	if !ok {
		panic("UseMemo hook value type mismatch (possible out of order or conditional hooks)")
	}
	return rtn
}

// UseCallback memoizes a function value against a dependency list.
func UseCallback[F any](fn F, deps []any) F {
	rc := getRenderContext()
	if rc == nil {
		panic("UseCallback must be called within a component (no render context)")
	}
	val := rc.useMemo(func() any { return fn }, deps)
	rtn, ok := val.(F)
	if !ok {
		panic("UseCallback hook value type mismatch (possible out of order or conditional hooks)")
	}
	return rtn
}

func (rc *renderContext) useEffect(fn func() func(), deps []any, layout bool) {
	hook := rc.getOrderedHook()
	run := !hook.Init || deps == nil || !util.DepsEqual(hook.Deps, deps)
	hook.Init = true
	if !run {
		return
	}
	hook.pendingFn = fn
	hook.pendingDeps = deps
	hook.hasPending = true
	if layout {
		rc.comp.pendingLayoutEffects = append(rc.comp.pendingLayoutEffects, hook)
	} else {
		rc.comp.pendingEffects = append(rc.comp.pendingEffects, hook)
	}
}

// UseEffect queues fn to run after the commit has painted (frame callback
// with a timer fallback). fn may return a cleanup which runs before the
// next invocation of the same slot and on unmount. A nil deps list runs
// every render.
func UseEffect(fn func() func(), deps []any) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseEffect must be called within a component (no render context)")
	}
	rc.useEffect(fn, deps, false)
}

// UseLayoutEffect is UseEffect, but the callback runs synchronously
// before the render entry returns.
func UseLayoutEffect(fn func() func(), deps []any) {
	rc := getRenderContext()
	if rc == nil {
		panic("UseLayoutEffect must be called within a component (no render context)")
	}
	rc.useEffect(fn, deps, true)
}

// UseSyncExternalStore subscribes the component to an external store.
// subscribe registers a change callback and returns the unsubscribe
// function; getSnapshot reads the current value. The component re-renders
// when the snapshot changes under SameValue.
func UseSyncExternalStore[T any](subscribe func(onStoreChange func()) func(), getSnapshot func() T, getServerSnapshot ...func() T) T {
	rc := getRenderContext()
	if rc == nil {
		panic("UseSyncExternalStore must be called within a component (no render context)")
	}
	_ = getServerSnapshot // accepted for API compatibility, unused in client rendering
	snapAny, setters := rc.useState(func() any { return getSnapshot() })

	// refreshed every render so notifications read the latest snapshot fn
	gsHook := rc.getOrderedHook()
	gsHook.Init = true
	gsHook.Val = getSnapshot

	rc.useEffect(func() func() {
		notify := func() {
			g := gsHook.Val.(func() T)
			setters.set(g())
		}
		// catch updates that landed between render and subscription
		notify()
		return subscribe(notify)
	}, []any{util.FuncPointer(subscribe)}, false)

	snap, ok := snapAny.(T)
	if !ok {
		panic("UseSyncExternalStore snapshot type mismatch (possible out of order or conditional hooks)")
	}
	return snap
}

// UseId returns an identifier stable across re-renders of the same hook
// slot and unique across the process.
func UseId() string {
	rc := getRenderContext()
	if rc == nil {
		panic("UseId must be called within a component (no render context)")
	}
	hook := rc.getOrderedHook()
	if !hook.Init {
		hook.Init = true
		hook.Val = uuid.New().String()
	}
	return hook.Val.(string)
}

// UseDebugValue is accepted for API compatibility and does nothing.
func UseDebugValue(val any, format ...func(any) string) {
}
