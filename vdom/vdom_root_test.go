// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"
	"testing"
)

func TestParentRendersBeforeChildInDrain(t *testing.T) {
	var order []string
	var setChild func(int)
	var setParent func(int)
	child := ComponentFunc(func(props Props) any {
		val, set, _ := UseState(0)
		setChild = set
		order = append(order, "child")
		return H("span", nil, val)
	})
	parent := ComponentFunc(func(props Props) any {
		val, set, _ := UseState(0)
		setParent = set
		order = append(order, "parent")
		return H("div", nil, val, H(child, nil))
	})
	root, _ := newTestRoot(t)
	root.Render(H(parent, nil))
	order = nil
	// queue the deeper component first; the drain must still run the
	// parent first and subsume the child's entry
	setChild(1)
	setParent(1)
	root.Flush()
	if fmt.Sprint(order) != fmt.Sprint([]string{"parent", "child"}) {
		t.Fatalf("drain order: %v", order)
	}
}

func TestChildSkippedWhenUnmountedByParentRender(t *testing.T) {
	childRenders := 0
	var setChild func(int)
	var hideChild func(bool)
	child := ComponentFunc(func(props Props) any {
		val, set, _ := UseState(0)
		setChild = set
		childRenders++
		return H("span", nil, val)
	})
	parent := ComponentFunc(func(props Props) any {
		show, setShow, _ := UseState(true)
		hideChild = setShow
		return H("div", nil, If(show, H(child, nil)))
	})
	root, _ := newTestRoot(t)
	root.Render(H(parent, nil))
	if childRenders != 1 {
		t.Fatalf("setup: %d", childRenders)
	}
	// both queued in one turn; the parent unmounts the child, so the
	// child's queued entry must be dropped
	setChild(5)
	hideChild(false)
	root.Flush()
	if childRenders != 1 {
		t.Fatalf("unmounted child should be skipped in the drain, rendered %d times", childRenders)
	}
}

func TestRerenderPreservesSiblingPosition(t *testing.T) {
	var setVal func(string)
	comp := ComponentFunc(func(props Props) any {
		val, set, _ := UseState("mid")
		setVal = set
		return H("span", Props{"id": "mid"}, val)
	})
	root, container := newTestRoot(t)
	root.Render(H("div", nil,
		H("span", nil, "before"),
		H(comp, nil),
		H("span", nil, "after"),
	))
	wrap := elementChildren(container)[0]
	if got := wrap.TextContent(); got != "beforemidafter" {
		t.Fatalf("setup: %q", got)
	}
	setVal("MID")
	root.Flush()
	if got := wrap.TextContent(); got != "beforeMIDafter" {
		t.Fatalf("re-rendered component drifted: %q", got)
	}
}

func TestSetterDuringRenderBody(t *testing.T) {
	renders := 0
	comp := ComponentFunc(func(props Props) any {
		val, setVal, _ := UseState(0)
		renders++
		if val == 0 {
			// a synchronous update during render queues the component
			// for the next microtask turn
			setVal(1)
		}
		return H("span", Props{"id": "v"}, val)
	})
	root, container := newTestRoot(t)
	root.Render(H(comp, nil))
	if got := findByID(container, "v").TextContent(); got != "0" {
		t.Fatalf("value before drain: %q", got)
	}
	root.Flush()
	if got := findByID(container, "v").TextContent(); got != "1" {
		t.Fatalf("value after drain: %q", got)
	}
	if renders != 2 {
		t.Fatalf("renders: %d", renders)
	}
}

func TestOptionHooksFire(t *testing.T) {
	defer ResetOptions()
	counts := map[string]int{}
	Options.BeforeDiff = func(v *VNode) { counts["diff"]++ }
	Options.BeforeRender = func(v *VNode) { counts["render"]++ }
	Options.Diffed = func(v *VNode) { counts["diffed"]++ }
	Options.Commit = func(root *VNode, q []*Instance) { counts["commit"]++ }
	Options.Unmount = func(v *VNode) { counts["unmount"]++ }

	comp := ComponentFunc(func(props Props) any {
		return H("span", nil, "x")
	})
	root, _ := newTestRoot(t)
	root.Render(H(comp, nil))
	if counts["diff"] == 0 || counts["diffed"] == 0 {
		t.Fatalf("diff hooks did not fire: %v", counts)
	}
	if counts["render"] == 0 {
		t.Fatalf("render hook did not fire: %v", counts)
	}
	if counts["commit"] != 1 {
		t.Fatalf("commit hook should fire once per render entry: %v", counts)
	}
	root.Render(nil)
	if counts["unmount"] == 0 {
		t.Fatalf("unmount hook did not fire: %v", counts)
	}
}

func TestPackageLevelRenderReusesRoot(t *testing.T) {
	_, container := newTestRoot(t)
	r1 := Render(H("div", nil, "a"), container)
	r2 := Render(H("div", nil, "b"), container)
	if r1 != r2 {
		t.Fatalf("a container must map to a single root")
	}
	if got := container.TextContent(); got != "b" {
		t.Fatalf("second render result: %q", got)
	}
}

func TestHydrateAliasesRender(t *testing.T) {
	_, container := newTestRoot(t)
	Hydrate(H("div", nil, "x"), container)
	if got := container.TextContent(); got != "x" {
		t.Fatalf("hydrate output: %q", got)
	}
}
