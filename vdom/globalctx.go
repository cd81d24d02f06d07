// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"sync"

	"github.com/outrigdev/goid"
)

// is set ONLY when we're in the render function of a component
// used for hooks
var globalRC *renderContext
var globalRenderGoId uint64
var globalCtxMutex sync.Mutex

// renderContext is the register hooks resolve against while a component
// body runs.
type renderContext struct {
	root    *Root
	comp    *Instance
	hookIdx int
}

func withGlobalRenderContext[T any](rc *renderContext, fn func() T) T {
	globalCtxMutex.Lock()
	globalRC = rc
	globalRenderGoId = goid.Get()
	globalCtxMutex.Unlock()
	defer func() {
		globalCtxMutex.Lock()
		globalRC = nil
		globalRenderGoId = 0
		globalCtxMutex.Unlock()
	}()
	return fn()
}

func getRenderContext() *renderContext {
	globalCtxMutex.Lock()
	defer globalCtxMutex.Unlock()
	gid := goid.Get()
	if gid != globalRenderGoId {
		return nil
	}
	return globalRC
}

func (rc *renderContext) getOrderedHook() *Hook {
	if rc.comp == nil {
		panic("riptide hooks must be called within a component (no current component)")
	}
	for len(rc.comp.hooks) <= rc.hookIdx {
		rc.comp.hooks = append(rc.comp.hooks, &Hook{Idx: len(rc.comp.hooks)})
	}
	hookVal := rc.comp.hooks[rc.hookIdx]
	rc.hookIdx++
	return hookVal
}
