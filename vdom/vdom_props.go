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

// style properties that take bare numbers (no px suffix)
var unitlessStyleProps = map[string]bool{
	"animationIterationCount": true,
	"columnCount":             true,
	"fillOpacity":             true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"gridColumn":              true,
	"gridRow":                 true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"strokeOpacity":           true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

func isEventProp(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z'
}

func eventNameOf(prop string) string {
	return strings.ToLower(prop[2:])
}

// diffProps applies the property differences between oldProps and
// newProps to a live element. value and checked are written on every
// diff so external mutation of the control is overwritten by the next
// render; event props always update the delegation map.
func (r *Root) diffProps(el dom.Element, newProps, oldProps Props, ns string) {
	for name, oldVal := range oldProps {
		if name == ChildrenPropKey || name == KeyPropKey || name == RefPropKey {
			continue
		}
		if _, ok := newProps[name]; !ok {
			r.setProperty(el, name, nil, oldVal, ns)
		}
	}
	for name, newVal := range newProps {
		if name == ChildrenPropKey || name == KeyPropKey || name == RefPropKey {
			continue
		}
		oldVal := oldProps[name]
		if name == "value" || name == "checked" || isEventProp(name) {
			r.setProperty(el, name, newVal, oldVal, ns)
			continue
		}
		if !util.SameValue(newVal, oldVal) {
			r.setProperty(el, name, newVal, oldVal, ns)
		}
	}
}

func (r *Root) setProperty(el dom.Element, name string, value any, oldValue any, ns string) {
	switch {
	case name == StylePropKey:
		setStyle(el, value, oldValue)
	case name == DangerousHTMLPropKey:
		if html, ok := value.(DangerousHTML); ok {
			el.SetInnerHTML(html.HTML)
		} else if value == nil {
			el.SetInnerHTML("")
		}
	case isEventProp(name):
		r.setEventHandler(el, eventNameOf(name), value)
	case ns == dom.SVGNamespaceURI:
		setAttributeValue(el, attrName(name), value)
	default:
		if name == "value" || name == "checked" {
			el.SetProperty(name, value)
			return
		}
		setAttributeValue(el, attrName(name), value)
	}
}

func attrName(name string) string {
	switch name {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return name
}

func setAttributeValue(el dom.Element, name string, value any) {
	switch v := value.(type) {
	case nil:
		el.RemoveAttribute(name)
	case bool:
		if v {
			el.SetAttribute(name, "")
		} else {
			el.RemoveAttribute(name)
		}
	case string:
		el.SetAttribute(name, v)
	default:
		if s, ok := util.NumToString(value); ok {
			el.SetAttribute(name, s)
		} else {
			el.SetAttribute(name, fmt.Sprint(value))
		}
	}
}

func setStyle(el dom.Element, value any, oldValue any) {
	style := el.Style()
	if text, ok := value.(string); ok {
		style.SetCssText(text)
		return
	}
	newMap := toStyleMap(value)
	oldMap := toStyleMap(oldValue)
	if _, wasText := oldValue.(string); wasText {
		// transitioning string -> mapping clears the cssText first
		style.SetCssText("")
		oldMap = nil
	}
	for name := range oldMap {
		if _, ok := newMap[name]; !ok {
			style.RemoveProperty(name)
		}
	}
	for name, val := range newMap {
		if util.SameValue(val, oldMap[name]) {
			continue
		}
		style.SetProperty(name, styleValueString(name, val))
	}
	if value == nil && oldValue != nil {
		style.SetCssText("")
	}
}

func toStyleMap(value any) map[string]any {
	switch m := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return m
	case Props:
		return m
	case map[string]string:
		rtn := make(map[string]any, len(m))
		for k, v := range m {
			rtn[k] = v
		}
		return rtn
	default:
		return nil
	}
}

func styleValueString(name string, val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	if numStr, ok := util.NumToString(val); ok {
		if strings.HasPrefix(name, "-") || unitlessStyleProps[name] {
			return numStr
		}
		return numStr + "px"
	}
	return fmt.Sprint(val)
}

// setEventHandler maintains the element's delegation entry. One proxy is
// registered per (element, event name); updating the handler only
// mutates the handler map.
func (r *Root) setEventHandler(el dom.Element, event string, handler any) {
	if handler == nil {
		if handlers, ok := r.listeners[el]; ok {
			if _, exists := handlers[event]; exists {
				delete(handlers, event)
				el.RemoveEventListener(event)
				if len(handlers) == 0 {
					delete(r.listeners, el)
				}
			}
		}
		return
	}
	handlers, ok := r.listeners[el]
	if !ok {
		handlers = make(map[string]any)
		if r.listeners == nil {
			r.listeners = make(map[dom.Element]map[string]any)
		}
		r.listeners[el] = handlers
	}
	if _, exists := handlers[event]; !exists {
		proxy := func(ev *dom.Event) {
			current := r.lookupHandler(el, ev.Type)
			if current == nil {
				return
			}
			callEventHandler(current, ev)
		}
		el.AddEventListener(event, proxy)
	}
	handlers[event] = handler
}

func (r *Root) lookupHandler(el dom.Element, event string) any {
	handlers, ok := r.listeners[el]
	if !ok {
		return nil
	}
	return handlers[event]
}

// dropElementListeners detaches every delegated listener of an element at
// unmount.
func (r *Root) dropElementListeners(el dom.Element) {
	handlers, ok := r.listeners[el]
	if !ok {
		return
	}
	for event := range handlers {
		el.RemoveEventListener(event)
	}
	delete(r.listeners, el)
}

func callEventHandler(fnVal any, ev *dom.Event) {
	switch fn := fnVal.(type) {
	case func(*dom.Event):
		fn(ev)
		return
	case func():
		fn()
		return
	}
	rval := reflect.ValueOf(fnVal)
	if rval.Kind() != reflect.Func {
		log.Printf("vdom: event handler is not a function (%T)\n", fnVal)
		return
	}
	rtype := rval.Type()
	if rtype.NumIn() == 0 {
		rval.Call(nil)
		return
	}
	if rtype.NumIn() == 1 && rtype.In(0) == reflect.TypeOf((*dom.Event)(nil)) {
		rval.Call([]reflect.Value{reflect.ValueOf(ev)})
		return
	}
	log.Printf("vdom: event handler has unsupported signature (%T)\n", fnVal)
}
