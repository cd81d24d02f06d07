// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"github.com/riptidedev/riptide/dom"
	"github.com/riptidedev/riptide/util"
)

const TextTag = "#text"
const FragmentTag = "#fragment"
const PortalTag = "#portal"

const KeyPropKey = "key"
const RefPropKey = "ref"
const ChildrenPropKey = "children"
const StylePropKey = "style"
const DangerousHTMLPropKey = "dangerouslySetInnerHTML"
const PortalContainerPropKey = "container"
const ProviderValuePropKey = "value"

// Props carries the attributes, handlers, and children of a vnode.
type Props map[string]any

// ComponentFunc is a function component. Identity is the function's code
// pointer: two distinct top-level functions (or distinct func literals)
// are distinct component types, but closures produced by the same literal
// share one identity.
type ComponentFunc func(props Props) any

// Ref is a single-slot container receiving the rendered handle (a
// dom.Element for intrinsic elements, an *Instance for components).
type Ref struct {
	Current any
}

// RefFunc is the callback form of a ref. It receives the handle on mount
// and nil on unmount or replacement.
type RefFunc func(current any)

// CreateRef returns an empty single-slot ref.
func CreateRef() *Ref {
	return &Ref{}
}

// DangerousHTML is the payload type for the dangerouslySetInnerHTML prop.
type DangerousHTML struct {
	HTML string `json:"__html"`
}

// VNode describes a desired node and carries the engine's reconciliation
// state. Tag is set for intrinsic elements and the text/portal sentinels;
// Component is set for function components (Fragment and context
// Providers included). The unexported fields belong to the engine.
type VNode struct {
	Tag       string
	Component ComponentFunc
	Props     Props
	Key       string
	Ref       any // *Ref, RefFunc, or nil
	Text      string

	provider *Context  // set when this vnode is a context Provider
	dom      dom.Node  // live node owned by this vnode (elements, text)
	kids     []*VNode  // normalized children from the most recent diff
	inst     *Instance // hook store, when Component is set
	parent   *VNode
	depth    int
	index    int
}

// DOM returns the live node this vnode currently owns (nil for
// components, fragments, and portals).
func (v *VNode) DOM() dom.Node {
	if v == nil {
		return nil
	}
	return v.dom
}

// Instance returns the component instance, when Component is set and the
// vnode has rendered at least once.
func (v *VNode) Instance() *Instance {
	if v == nil {
		return nil
	}
	return v.inst
}

func (v *VNode) isText() bool      { return v.Tag == TextTag }
func (v *VNode) isPortal() bool    { return v.Tag == PortalTag }
func (v *VNode) isComponent() bool { return v.Component != nil }

// typeKey is the identity used for child matching: tag string for
// intrinsics and sentinels, the Context pointer for Providers, the
// function code pointer for components.
func (v *VNode) typeKey() any {
	if v.Tag != "" {
		return v.Tag
	}
	if v.provider != nil {
		return v.provider
	}
	return util.FuncPointer(v.Component)
}

func sameType(a, b *VNode) bool {
	if a == nil || b == nil {
		return false
	}
	return a.typeKey() == b.typeKey()
}

// Instance is the per-component hook store. It is created when a function
// vnode first diffs and persists while the vnode's type and matched
// position survive.
type Instance struct {
	Id    string
	Props Props

	root  *Root
	vnode *VNode // nil once unmounted
	hooks []*Hook

	pendingEffects       []*Hook
	pendingLayoutEffects []*Hook

	// providers this component currently subscribes to
	contextSubs map[*Instance]bool

	// Provider-only state
	providerValue any
	subscribers   map[*Instance]bool
}

// VNode returns the instance's current vnode, or nil after unmount.
func (c *Instance) VNode() *VNode {
	return c.vnode
}

// generic hook structure
type Hook struct {
	Init      bool          // is initialized
	Idx       int           // index in the hook array
	Val       any           // for UseState, UseMemo, UseRef
	Deps      []any         // accepted dependency list
	Fn        func() func() // committed effect callback
	UnmountFn func()        // effect cleanup

	pendingFn   func() func() // effect callback queued by this render
	pendingDeps []any
	hasPending  bool
	setter      any // stable dispatcher, created once
	latest      any // per-render refreshed closure (reducer, getSnapshot)
}

// Fragment renders its children and nothing else; used as a grouping
// type, including for the root wrapper.
var Fragment ComponentFunc = func(props Props) any {
	return props[ChildrenPropKey]
}
