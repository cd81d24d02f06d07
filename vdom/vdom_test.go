// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFactoryKeyRefExtraction(t *testing.T) {
	ref := CreateRef()
	v := H("div", Props{"key": "a", "ref": ref, "className": "box"})
	if v.Key != "a" {
		t.Fatalf("key not extracted: %q", v.Key)
	}
	if v.Ref != ref {
		t.Fatalf("ref not extracted")
	}
	if _, ok := v.Props["key"]; ok {
		t.Fatalf("key left in props")
	}
	if _, ok := v.Props["ref"]; ok {
		t.Fatalf("ref left in props")
	}
	if v.Props["className"] != "box" {
		t.Fatalf("className missing from props")
	}
}

func TestFactoryChildFlattening(t *testing.T) {
	inner := H("span", nil)
	v := H("div", nil,
		nil,
		true,
		false,
		[]any{"a", []any{"b", inner}},
		5,
	)
	kids, ok := v.Props[ChildrenPropKey].([]any)
	if !ok {
		t.Fatalf("expected children slice, got %T", v.Props[ChildrenPropKey])
	}
	if len(kids) != 4 {
		t.Fatalf("expected 4 children, got %d: %v", len(kids), kids)
	}
	if kids[0] != "a" || kids[1] != "b" {
		t.Fatalf("strings not spliced: %v", kids)
	}
	if kids[2] != inner {
		t.Fatalf("vnode child lost")
	}
	if kids[3] != 5 {
		t.Fatalf("number child lost: %v", kids[3])
	}
}

func TestFactorySingleChild(t *testing.T) {
	v := H("div", nil, "only")
	if v.Props[ChildrenPropKey] != "only" {
		t.Fatalf("single child should be stored alone, got %v", v.Props[ChildrenPropKey])
	}
	v = H("div", nil)
	if _, ok := v.Props[ChildrenPropKey]; ok {
		t.Fatalf("no children should leave the slot absent")
	}
}

func TestFactoryVNodeOptionHook(t *testing.T) {
	defer ResetOptions()
	var seen []*VNode
	Options.VNode = func(v *VNode) {
		seen = append(seen, v)
	}
	v := H("div", nil)
	if len(seen) != 1 || seen[0] != v {
		t.Fatalf("vnode option hook not fired")
	}
}

func TestNormalizeChildren(t *testing.T) {
	inner := H("em", nil)
	kids := normalizeChildren([]any{"x", 3, inner, nil, false})
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}
	if !kids[0].isText() || kids[0].Text != "x" {
		t.Fatalf("string not converted to text vnode: %+v", kids[0])
	}
	if !kids[1].isText() || kids[1].Text != "3" {
		t.Fatalf("number not converted to text vnode: %+v", kids[1])
	}
	if kids[2] != inner {
		t.Fatalf("vnode not kept")
	}
}

func TestClasses(t *testing.T) {
	got := Classes("a", nil, "", "b", 5, "c")
	if got != "a b c" {
		t.Fatalf("Classes: %q", got)
	}
}

func TestForEach(t *testing.T) {
	items := []string{"x", "y"}
	out := ForEach(items, func(item string, idx int) any {
		return item
	})
	want := []any{"x", "y"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("ForEach mismatch (-want +got):\n%s", diff)
	}
}

func TestPropsBuilder(t *testing.T) {
	type btnProps struct {
		Label    string `json:"label"`
		Disabled bool   `json:"disabled"`
	}
	m := P(btnProps{Label: "go", Disabled: true})
	if m["label"] != "go" || m["disabled"] != true {
		t.Fatalf("P conversion wrong: %v", m)
	}
}

func TestTypedComponent(t *testing.T) {
	type greetProps struct {
		Name string `json:"name"`
	}
	greet := Typed(func(props greetProps) any {
		return H("span", nil, "hello "+props.Name)
	})
	root, container := newTestRoot(t)
	root.Render(H(greet, Props{"name": "ada"}))
	if got := container.TextContent(); got != "hello ada" {
		t.Fatalf("typed component output: %q", got)
	}
}
