// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"testing"

	"github.com/riptidedev/riptide/dom"
)

func TestSVGNamespace(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("svg", Props{"id": "pic"}, H("circle", Props{"id": "c", "r": 5})))
	svg := findByID(container, "pic")
	circle := findByID(container, "c")
	if svg.NamespaceURI() != dom.SVGNamespaceURI {
		t.Fatalf("svg namespace: %q", svg.NamespaceURI())
	}
	if circle.NamespaceURI() != dom.SVGNamespaceURI {
		t.Fatalf("circle should inherit the svg namespace: %q", circle.NamespaceURI())
	}
	if r, _ := circle.GetAttribute("r"); r != "5" {
		t.Fatalf("r attribute: %q", r)
	}
	root.Render(H("svg", Props{"id": "pic"}, H("circle", Props{"id": "c", "r": 10})))
	circle2 := findByID(container, "c")
	if circle2 != circle {
		t.Fatalf("circle should be the same node across renders")
	}
	if r, _ := circle2.GetAttribute("r"); r != "10" {
		t.Fatalf("r attribute after update: %q", r)
	}
}

func TestSVGClassNameMapsToClass(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("svg", Props{"id": "pic", "className": "chart"}))
	svg := findByID(container, "pic")
	if cls, _ := svg.GetAttribute("class"); cls != "chart" {
		t.Fatalf("class attribute: %q", cls)
	}
}

func TestAttributeBooleans(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("input", Props{"id": "f", "disabled": true}))
	input := findByID(container, "f")
	if v, ok := input.GetAttribute("disabled"); !ok || v != "" {
		t.Fatalf("true should set the empty-string attribute, got %q ok=%v", v, ok)
	}
	root.Render(H("input", Props{"id": "f", "disabled": false}))
	if _, ok := input.GetAttribute("disabled"); ok {
		t.Fatalf("false should remove the attribute")
	}
}

func TestAttributeRemovalOnAbsence(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("a", Props{"id": "l", "href": "/x", "title": "go"}))
	link := findByID(container, "l")
	root.Render(H("a", Props{"id": "l", "href": "/x"}))
	if _, ok := link.GetAttribute("title"); ok {
		t.Fatalf("absent prop should be removed from the element")
	}
}

func TestValueAlwaysWritten(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("input", Props{"id": "f", "value": "a"}))
	input := findByID(container, "f")
	if input.GetProperty("value") != "a" {
		t.Fatalf("value property: %v", input.GetProperty("value"))
	}
	// external mutation of the live control
	input.SetProperty("value", "typed junk")
	root.Render(H("input", Props{"id": "f", "value": "a"}))
	if input.GetProperty("value") != "a" {
		t.Fatalf("value must be rewritten even when the diff sees no change: %v", input.GetProperty("value"))
	}
	if _, ok := input.GetAttribute("value"); ok {
		t.Fatalf("value must be a direct property, not an attribute")
	}
}

func TestStyleMapping(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("div", Props{"id": "d", "style": map[string]any{
		"width":   100,
		"zIndex":  5,
		"color":   "red",
		"--brand": "#f00",
	}}))
	div := findByID(container, "d")
	style := div.Style()
	if got := style.GetProperty("width"); got != "100px" {
		t.Fatalf("numeric style should get px suffix: %q", got)
	}
	if got := style.GetProperty("zIndex"); got != "5" {
		t.Fatalf("unitless property must not get px: %q", got)
	}
	if got := style.GetProperty("color"); got != "red" {
		t.Fatalf("color: %q", got)
	}
	if got := style.GetProperty("--brand"); got != "#f00" {
		t.Fatalf("custom property: %q", got)
	}
}

func TestStyleDiffRemovesStaleProps(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("div", Props{"id": "d", "style": map[string]any{"color": "red", "width": 10}}))
	div := findByID(container, "d")
	root.Render(H("div", Props{"id": "d", "style": map[string]any{"color": "blue"}}))
	style := div.Style()
	if got := style.GetProperty("color"); got != "blue" {
		t.Fatalf("color: %q", got)
	}
	if got := style.GetProperty("width"); got != "" {
		t.Fatalf("stale style property not cleared: %q", got)
	}
}

func TestStyleStringToMapTransition(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("div", Props{"id": "d", "style": "color: red;"}))
	div := findByID(container, "d")
	if got := div.Style().CssText(); got != "color: red;" {
		t.Fatalf("cssText: %q", got)
	}
	root.Render(H("div", Props{"id": "d", "style": map[string]any{"width": 5}}))
	if got := div.Style().GetProperty("width"); got != "5px" {
		t.Fatalf("width after transition: %q", got)
	}
	if got := div.Style().GetProperty("color"); got != "" {
		t.Fatalf("string cssText should be cleared before mapping styles apply: %q", got)
	}
}

func TestEventHandlerIdentity(t *testing.T) {
	clicksA := 0
	clicksB := 0
	root, container := newTestRoot(t)
	root.Render(H("button", Props{"id": "b", "onClick": func() { clicksA++ }}))
	button := findByID(container, "b")
	adds, removes := button.ListenerChurn()
	if adds != 1 || removes != 0 {
		t.Fatalf("initial listener churn: adds=%d removes=%d", adds, removes)
	}
	root.Render(H("button", Props{"id": "b", "onClick": func() { clicksB++ }}))
	adds, removes = button.ListenerChurn()
	if adds != 1 || removes != 0 {
		t.Fatalf("handler replacement must not touch the listener table: adds=%d removes=%d", adds, removes)
	}
	click(t, button)
	if clicksA != 0 || clicksB != 1 {
		t.Fatalf("dispatch should reach the latest handler: a=%d b=%d", clicksA, clicksB)
	}
}

func TestEventHandlerRemoval(t *testing.T) {
	root, container := newTestRoot(t)
	root.Render(H("button", Props{"id": "b", "onClick": func() {}}))
	button := findByID(container, "b")
	root.Render(H("button", Props{"id": "b"}))
	if button.ListenerCount("click") != 0 {
		t.Fatalf("listener should be detached when the handler becomes absent")
	}
	adds, removes := button.ListenerChurn()
	if adds != 1 || removes != 1 {
		t.Fatalf("churn after removal: adds=%d removes=%d", adds, removes)
	}
}

func TestEventHandlerReceivesEvent(t *testing.T) {
	var got *dom.Event
	root, container := newTestRoot(t)
	root.Render(H("input", Props{"id": "f", "onChange": func(ev *dom.Event) {
		got = ev
	}}))
	input := findByID(container, "f")
	input.DispatchEvent(&dom.Event{Type: "change", Value: "abc"})
	if got == nil || got.Value != "abc" {
		t.Fatalf("event payload not delivered: %+v", got)
	}
	if got.Target != dom.Element(input) {
		t.Fatalf("event target not set")
	}
}
