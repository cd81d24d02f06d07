// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import "github.com/riptidedev/riptide/dom"

// OptionHooks is the process-wide extension surface used by dev-tools and
// hot-reload adapters. Each callback is invoked if installed; the engine
// has no knowledge of the installers beyond calling them.
type OptionHooks struct {
	// VNode fires after the factory constructs a vnode.
	VNode func(v *VNode)
	// BeforeDiff fires at the beginning of each node diff.
	BeforeDiff func(v *VNode)
	// BeforeRender fires just before a component body is invoked.
	BeforeRender func(v *VNode)
	// Diffed fires at the end of each node diff.
	Diffed func(v *VNode)
	// Commit fires at the end of a render entry with the root vnode and
	// the commit queue.
	Commit func(root *VNode, queue []*Instance)
	// Unmount fires just before a vnode is torn down.
	Unmount func(v *VNode)
	// Root fires before each render entry diff, announcing root and
	// container.
	Root func(v *VNode, container dom.Element)
}

// Options is the shared registry. Tests that install hooks should call
// ResetOptions when done.
var Options OptionHooks

// ResetOptions clears every installed option hook.
func ResetOptions() {
	Options = OptionHooks{}
}
