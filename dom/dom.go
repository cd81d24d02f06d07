// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

// Package dom defines the host document-tree surface the rendering engine
// consumes, plus an in-memory reference document. The engine only ever
// touches the Node, Text, Element, Style, and Document interfaces; any
// host tree that implements them can be rendered into. Implementations
// must be pointer-like: two handles to the same node compare equal.
package dom

const SVGNamespaceURI = "http://www.w3.org/2000/svg"

// Node is the common surface of text nodes and elements.
type Node interface {
	ParentNode() Node
	FirstChild() Node
	LastChild() Node
	NextSibling() Node

	// InsertBefore inserts child before ref. A nil ref appends. Inserting
	// a node that already has a parent moves it.
	InsertBefore(child Node, ref Node)
	RemoveChild(child Node)

	OwnerDocument() Document
}

// Text is a character-data node.
type Text interface {
	Node
	NodeValue() string
	SetNodeValue(s string)
}

// Listener receives dispatched events. At most one listener is registered
// per (element, event type); re-registering replaces it.
type Listener func(ev *Event)

// Style is an element's inline style declaration.
type Style interface {
	CssText() string
	SetCssText(s string)
	SetProperty(name, value string)
	RemoveProperty(name string)
	GetProperty(name string) string
}

// Element is a tag node with attributes, properties, listeners, and
// children.
type Element interface {
	Node
	TagName() string
	NamespaceURI() string

	SetAttribute(name, value string)
	RemoveAttribute(name string)
	GetAttribute(name string) (string, bool)

	// SetProperty writes a direct object property (value, checked, ...)
	// without touching the attribute table.
	SetProperty(name string, value any)
	GetProperty(name string) any

	SetInnerHTML(html string)

	Style() Style

	AddEventListener(event string, l Listener)
	RemoveEventListener(event string)
	DispatchEvent(ev *Event) bool
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateElementNS(namespaceURI, tag string) Element
	CreateTextNode(data string) Text
}

// Event is the payload delivered to listeners.
type Event struct {
	Type    string
	Target  Element
	Value   string // current value for change events on form controls
	Checked bool   // current checked state for checkbox/radio inputs
	Data    any    // host-specific extra payload
}
