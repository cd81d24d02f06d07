// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"log"

	"github.com/google/uuid"

	"github.com/riptidedev/riptide/util"
)

// Context identifies a value carried to descendants by a Provider.
// Identity is the *Context pointer; the Id string exists for diagnostics.
type Context struct {
	Id           string
	DefaultValue any
	Provider     *Provider
}

// Provider is the component form of a context. Use it (or the Context
// itself) as the type argument of H, with a "value" prop:
//
//	vdom.H(theme.Provider, vdom.Props{"value": "dark"}, children...)
type Provider struct {
	Context *Context
}

// CreateContext makes a context with a default value, visible to
// consumers with no Provider above them.
func CreateContext(defaultValue any) *Context {
	ctx := &Context{
		Id:           uuid.New().String(),
		DefaultValue: defaultValue,
	}
	ctx.Provider = &Provider{Context: ctx}
	return ctx
}

// providerRender is the shared render body of every Provider: its output
// is its children. The engine recognizes Provider vnodes by the vnode's
// provider field, not by this function's identity.
func providerRender(props Props) any {
	return props[ChildrenPropKey]
}

// walk limit guarding against a corrupted (cyclic) parent chain
const maxAncestorWalk = 1 << 16

// findProvider walks the parent chain for the nearest Provider vnode of
// ctx.
func findProvider(ctx *Context, start *VNode) *VNode {
	steps := 0
	for v := start; v != nil; v = v.parent {
		if v.provider == ctx && v.inst != nil {
			return v
		}
		steps++
		if steps >= maxAncestorWalk {
			log.Printf("vdom: context lookup aborted, parent chain too deep (cycle?)\n")
			return nil
		}
	}
	return nil
}

func subscribeToProvider(provider *Instance, comp *Instance) {
	if provider.subscribers == nil {
		provider.subscribers = make(map[*Instance]bool)
	}
	provider.subscribers[comp] = true
	if comp.contextSubs == nil {
		comp.contextSubs = make(map[*Instance]bool)
	}
	comp.contextSubs[provider] = true
}

// notifyContextSubscribers queues a re-render for each live subscriber of
// a provider, pruning subscribers whose component has been unmounted.
func (r *Root) notifyContextSubscribers(provider *Instance) {
	for sub := range provider.subscribers {
		if sub.vnode == nil {
			delete(provider.subscribers, sub)
			continue
		}
		r.enqueueRender(sub)
	}
}

// cleanupContextSubscriptions removes a component from every provider set
// that referenced it.
func cleanupContextSubscriptions(comp *Instance) {
	for provider := range comp.contextSubs {
		delete(provider.subscribers, comp)
	}
	comp.contextSubs = nil
}

// UseContext reads the nearest Provider's current value, subscribing the
// component to future changes; with no Provider above, the context's
// default value is returned and no subscription is made.
func UseContext[T any](ctx *Context) T {
	rc := getRenderContext()
	if rc == nil {
		panic("UseContext must be called within a component (no render context)")
	}
	providerVNode := findProvider(ctx, rc.comp.vnode)
	if providerVNode == nil {
		return typedContextValue[T](ctx.DefaultValue)
	}
	subscribeToProvider(providerVNode.inst, rc.comp)
	return typedContextValue[T](providerVNode.inst.providerValue)
}

func typedContextValue[T any](rawVal any) T {
	if rawVal == nil {
		return *new(T)
	}
	result, ok := rawVal.(T)
	if !ok {
		if f64Val, isFloat64 := rawVal.(float64); isFloat64 {
			if converted, convOk := fromFloat64[T](f64Val); convOk {
				return converted
			}
		}
		panic("UseContext value type mismatch")
	}
	return result
}

func fromFloat64[T any](f float64) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		return any(int(f)).(T), true
	case int32:
		return any(int32(f)).(T), true
	case int64:
		return any(int64(f)).(T), true
	case float32:
		return any(float32(f)).(T), true
	case float64:
		return any(f).(T), true
	default:
		return zero, false
	}
}

// providerValueChanged is the same-value check on a Provider's "value"
// prop deciding whether subscribers are notified.
func providerValueChanged(oldVal, newVal any) bool {
	return !util.SameValue(oldVal, newVal)
}
