// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/riptidedev/riptide/dom"
	"github.com/riptidedev/riptide/util"
)

// H builds a vnode. typ is a tag name (string), a ComponentFunc,
// Fragment, a *Context or its Provider (renders a context Provider), or
// nil for an empty node. Children are flattened recursively: nil and
// bool values are dropped, nested slices are spliced, strings and
// numbers become text when reconciled.
func H(typ any, props Props, children ...any) *VNode {
	v := &VNode{}
	switch t := typ.(type) {
	case nil:
		return nil
	case string:
		v.Tag = t
	case ComponentFunc:
		v.Component = t
	case func(props Props) any:
		v.Component = t
	case *Context:
		v.Component = providerRender
		v.provider = t
	case *Provider:
		v.Component = providerRender
		v.provider = t.Context
	default:
		log.Printf("vdom: H called with unsupported type %T\n", typ)
		return nil
	}
	finalProps := make(Props, len(props))
	for k, val := range props {
		switch k {
		case KeyPropKey:
			v.Key = fmt.Sprint(val)
		case RefPropKey:
			v.Ref = val
		default:
			finalProps[k] = val
		}
	}
	kids := flattenChildren(children)
	if len(kids) == 1 {
		finalProps[ChildrenPropKey] = kids[0]
	} else if len(kids) > 1 {
		finalProps[ChildrenPropKey] = kids
	}
	v.Props = finalProps
	if Options.VNode != nil {
		Options.VNode(v)
	}
	return v
}

// TextVNode wraps a string in a text vnode.
func TextVNode(text string) *VNode {
	return &VNode{Tag: TextTag, Text: text}
}

// CreatePortal builds a vnode whose children render into container
// instead of the structural parent's DOM.
func CreatePortal(children any, container dom.Element) *VNode {
	v := &VNode{
		Tag: PortalTag,
		Props: Props{
			ChildrenPropKey:        children,
			PortalContainerPropKey: container,
		},
	}
	if Options.VNode != nil {
		Options.VNode(v)
	}
	return v
}

// Typed adapts a component taking a struct props type. Props are decoded
// into P by "json" tag. Every closure Typed returns comes from the same
// function literal, and component identity is the code pointer, so all
// components Typed builds for the same P count as one component type:
// swapping one for another at the same position keeps the instance and
// its hook state.
func Typed[P any](fn func(props P) any) ComponentFunc {
	return func(props Props) any {
		var typed P
		if err := util.MapToStruct(props, &typed); err != nil {
			log.Printf("vdom: error converting props for %T: %v\n", fn, err)
		}
		return fn(typed)
	}
}

func flattenChildren(parts []any) []any {
	var rtn []any
	for _, part := range parts {
		rtn = appendFlattened(rtn, part)
	}
	return rtn
}

func appendFlattened(rtn []any, part any) []any {
	switch p := part.(type) {
	case nil:
		return rtn
	case bool:
		return rtn
	case *VNode:
		if p == nil {
			return rtn
		}
		return append(rtn, p)
	case string:
		return append(rtn, p)
	case []any:
		for _, sub := range p {
			rtn = appendFlattened(rtn, sub)
		}
		return rtn
	case []*VNode:
		for _, sub := range p {
			rtn = appendFlattened(rtn, sub)
		}
		return rtn
	}
	if util.IsNumericType(part) {
		return append(rtn, part)
	}
	val := reflect.ValueOf(part)
	if val.Kind() == reflect.Slice {
		for i := 0; i < val.Len(); i++ {
			rtn = appendFlattened(rtn, val.Index(i).Interface())
		}
		return rtn
	}
	return append(rtn, fmt.Sprint(part))
}

// normalizeChildren converts a render result (nil, string, number,
// *VNode, or any nesting of slices) into the child vnode sequence used
// by reconciliation. Strings and numbers become text vnodes.
func normalizeChildren(result any) []*VNode {
	raw := appendFlattened(nil, result)
	if len(raw) == 0 {
		return nil
	}
	rtn := make([]*VNode, 0, len(raw))
	for _, part := range raw {
		switch p := part.(type) {
		case *VNode:
			rtn = append(rtn, p)
		case string:
			rtn = append(rtn, TextVNode(p))
		default:
			if s, ok := util.NumToString(part); ok {
				rtn = append(rtn, TextVNode(s))
			} else {
				rtn = append(rtn, TextVNode(fmt.Sprint(part)))
			}
		}
	}
	return rtn
}

// Classes joins non-empty string arguments with spaces; nil and other
// types are ignored. Convenient for conditional class lists.
func Classes(classes ...any) string {
	var parts []string
	for _, class := range classes {
		switch c := class.(type) {
		case nil:
			continue
		case string:
			if c != "" {
				parts = append(parts, c)
			}
		}
	}
	return strings.Join(parts, " ")
}

func If(cond bool, part any) any {
	if cond {
		return part
	}
	return nil
}

func IfElse(cond bool, part any, elsePart any) any {
	if cond {
		return part
	}
	return elsePart
}

func Ternary[T any](cond bool, trueRtn T, falseRtn T) T {
	if cond {
		return trueRtn
	}
	return falseRtn
}

func ForEach[T any](items []T, fn func(item T, idx int) any) []any {
	elems := make([]any, 0, len(items))
	for idx, item := range items {
		elems = append(elems, fn(item, idx))
	}
	return elems
}

// P converts a json-tagged struct into Props, for callers who prefer
// typed prop structs with the H factory.
func P(props any) Props {
	m, err := util.StructToMap(props)
	if err != nil {
		log.Printf("vdom: P conversion error: %v\n", err)
		return nil
	}
	return m
}
