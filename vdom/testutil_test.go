// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"testing"

	"github.com/riptidedev/riptide/dom"
)

func newTestRoot(t *testing.T) (*Root, *dom.MemElement) {
	t.Helper()
	doc := dom.NewDocument()
	container := doc.CreateElement("div").(*dom.MemElement)
	root := NewRoot(container, WithManualScheduling())
	return root, container
}

func findByID(el *dom.MemElement, id string) *dom.MemElement {
	if attr, ok := el.GetAttribute("id"); ok && attr == id {
		return el
	}
	for _, child := range el.ChildNodes() {
		if childEl, ok := child.(*dom.MemElement); ok {
			if found := findByID(childEl, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func findByTagName(el *dom.MemElement, tag string) *dom.MemElement {
	if el.TagName() == tag {
		return el
	}
	for _, child := range el.ChildNodes() {
		if childEl, ok := child.(*dom.MemElement); ok {
			if found := findByTagName(childEl, tag); found != nil {
				return found
			}
		}
	}
	return nil
}

func elementChildren(el *dom.MemElement) []*dom.MemElement {
	var out []*dom.MemElement
	for _, child := range el.ChildNodes() {
		if childEl, ok := child.(*dom.MemElement); ok {
			out = append(out, childEl)
		}
	}
	return out
}

func click(t *testing.T, el *dom.MemElement) {
	t.Helper()
	if !el.DispatchEvent(&dom.Event{Type: "click"}) {
		t.Fatalf("no click listener on <%s>", el.TagName())
	}
}
