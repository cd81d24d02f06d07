// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"log"

	"github.com/google/uuid"

	"github.com/riptidedev/riptide/dom"
	"github.com/riptidedev/riptide/util"
)

// refEntry is one pending ref assignment, applied at commit time.
type refEntry struct {
	ref    any // *Ref or RefFunc
	oldRef any
	target any // dom.Element, *Instance, or the portal container
}

// diff reconciles newVNode against oldVNode, mutating the document under
// parentDom. oldDom is the insertion reference for newly created nodes.
// A vnode diffed against itself is an unchanged subtree and is skipped.
func (r *Root) diff(parentDom dom.Node, newVNode, oldVNode *VNode, ns string, commitQueue *[]*Instance, oldDom dom.Node, refQueue *[]refEntry) {
	if newVNode == nil {
		if oldVNode != nil {
			r.unmountVNode(oldVNode, false)
		}
		return
	}
	if newVNode == oldVNode {
		return
	}
	if Options.BeforeDiff != nil {
		Options.BeforeDiff(newVNode)
	}
	switch {
	case newVNode.isText():
		r.diffText(parentDom, newVNode, oldVNode, oldDom)
	case newVNode.isPortal():
		r.diffPortal(newVNode, oldVNode, commitQueue, refQueue)
	case newVNode.isComponent():
		r.diffComponent(parentDom, newVNode, oldVNode, ns, commitQueue, oldDom, refQueue)
	case newVNode.Tag != "":
		r.diffElement(parentDom, newVNode, oldVNode, ns, commitQueue, oldDom, refQueue)
	default:
		log.Printf("vdom: ignoring vnode with unknown type (no tag, no component)\n")
	}
	if Options.Diffed != nil {
		Options.Diffed(newVNode)
	}
}

func (r *Root) diffText(parentDom dom.Node, newVNode, oldVNode *VNode, oldDom dom.Node) {
	if oldVNode != nil && oldVNode.isText() && oldVNode.dom != nil {
		newVNode.dom = oldVNode.dom
		if oldVNode.Text != newVNode.Text {
			newVNode.dom.(dom.Text).SetNodeValue(newVNode.Text)
		}
		return
	}
	textNode := r.doc.CreateTextNode(newVNode.Text)
	parentDom.InsertBefore(textNode, oldDom)
	newVNode.dom = textNode
	if oldVNode != nil {
		r.unmountVNode(oldVNode, false)
	}
}

func (r *Root) diffElement(parentDom dom.Node, newVNode, oldVNode *VNode, ns string, commitQueue *[]*Instance, oldDom dom.Node, refQueue *[]refEntry) {
	if newVNode.Tag == "svg" {
		ns = dom.SVGNamespaceURI
	}
	var el dom.Element
	var oldProps Props
	var oldKids []*VNode
	var oldRef any
	if oldVNode != nil && oldVNode.Tag == newVNode.Tag && oldVNode.dom != nil {
		el = oldVNode.dom.(dom.Element)
		oldProps = oldVNode.Props
		oldKids = oldVNode.kids
		oldRef = oldVNode.Ref
	} else {
		if ns != "" {
			el = r.doc.CreateElementNS(ns, newVNode.Tag)
		} else {
			el = r.doc.CreateElement(newVNode.Tag)
		}
		parentDom.InsertBefore(el, oldDom)
		if oldVNode != nil {
			r.unmountVNode(oldVNode, false)
		}
	}
	newVNode.dom = el
	r.diffProps(el, newVNode.Props, oldProps, ns)
	if _, hasHTML := newVNode.Props[DangerousHTMLPropKey]; !hasHTML {
		r.diffChildren(el, newVNode.Props[ChildrenPropKey], newVNode, oldKids, ns, commitQueue, el.FirstChild(), refQueue)
	}
	queueRef(refQueue, newVNode.Ref, oldRef, el)
}

func (r *Root) diffComponent(parentDom dom.Node, newVNode, oldVNode *VNode, ns string, commitQueue *[]*Instance, oldDom dom.Node, refQueue *[]refEntry) {
	var inst *Instance
	var oldKids []*VNode
	var oldRef any
	if oldVNode != nil && sameType(oldVNode, newVNode) && oldVNode.inst != nil {
		inst = oldVNode.inst
		oldKids = oldVNode.kids
		oldRef = oldVNode.Ref
	} else {
		if oldVNode != nil {
			r.unmountVNode(oldVNode, false)
			oldVNode = nil
		}
		inst = &Instance{Id: uuid.New().String(), root: r}
	}
	newVNode.inst = inst
	inst.vnode = newVNode
	inst.Props = newVNode.Props
	// the tree diff reached this component, so a queued re-render for it
	// is subsumed
	r.dequeueRender(inst)

	if newVNode.provider != nil {
		newVal := newVNode.Props[ProviderValuePropKey]
		if oldVNode != nil && providerValueChanged(inst.providerValue, newVal) {
			inst.providerValue = newVal
			r.notifyContextSubscribers(inst)
		} else {
			inst.providerValue = newVal
		}
	}

	if Options.BeforeRender != nil {
		Options.BeforeRender(newVNode)
	}
	rc := &renderContext{root: r, comp: inst}
	result := withGlobalRenderContext(rc, func() any {
		return newVNode.Component(newVNode.Props)
	})
	r.diffChildren(parentDom, result, newVNode, oldKids, ns, commitQueue, oldDom, refQueue)
	if len(inst.pendingEffects) > 0 || len(inst.pendingLayoutEffects) > 0 {
		*commitQueue = append(*commitQueue, inst)
	}
	queueRef(refQueue, newVNode.Ref, oldRef, inst)
}

func (r *Root) diffPortal(newVNode, oldVNode *VNode, commitQueue *[]*Instance, refQueue *[]refEntry) {
	container, _ := newVNode.Props[PortalContainerPropKey].(dom.Element)
	if container == nil {
		log.Printf("vdom: portal has no container element\n")
		return
	}
	var oldKids []*VNode
	var oldRef any
	if oldVNode != nil && oldVNode.isPortal() {
		oldRef = oldVNode.Ref
		oldContainer, _ := oldVNode.Props[PortalContainerPropKey].(dom.Element)
		if oldContainer == container {
			oldKids = oldVNode.kids
		} else {
			for _, kid := range oldVNode.kids {
				r.unmountVNode(kid, false)
			}
		}
	}
	ns := ""
	if container.NamespaceURI() == dom.SVGNamespaceURI {
		ns = dom.SVGNamespaceURI
	}
	var oldDom dom.Node
	for _, kid := range oldKids {
		if d := firstDom(kid); d != nil {
			oldDom = d
			break
		}
	}
	r.diffChildren(container, newVNode.Props[ChildrenPropKey], newVNode, oldKids, ns, commitQueue, oldDom, refQueue)
	queueRef(refQueue, newVNode.Ref, oldRef, container)
}

func queueRef(refQueue *[]refEntry, ref any, oldRef any, target any) {
	if ref == nil && oldRef == nil {
		return
	}
	if util.SameValue(ref, oldRef) {
		return
	}
	*refQueue = append(*refQueue, refEntry{ref: ref, oldRef: oldRef, target: target})
}

// diffChildren reconciles a parent's new child list against the previous
// one: normalize, match (keyed index, positional unkeyed, forward scan),
// diff and place left to right, then unmount leftovers in one deferred
// pass so their positions stay valid as reference points.
func (r *Root) diffChildren(parentDom dom.Node, rawChildren any, newParent *VNode, oldKids []*VNode, ns string, commitQueue *[]*Instance, oldDom dom.Node, refQueue *[]refEntry) {
	newKids := normalizeChildren(rawChildren)
	newParent.kids = newKids

	matched := make([]*VNode, len(newKids))
	used := make([]bool, len(oldKids))
	var keyIdx map[string]int
	for j, oldKid := range oldKids {
		if oldKid != nil && oldKid.Key != "" {
			if keyIdx == nil {
				keyIdx = make(map[string]int)
			}
			if _, exists := keyIdx[oldKid.Key]; !exists {
				keyIdx[oldKid.Key] = j
			}
		}
	}
	for i, newKid := range newKids {
		if newKid.Key != "" {
			if j, ok := keyIdx[newKid.Key]; ok && !used[j] && sameType(oldKids[j], newKid) {
				matched[i] = oldKids[j]
				used[j] = true
			}
			continue
		}
		if i < len(oldKids) {
			oldKid := oldKids[i]
			if oldKid != nil && !used[i] && oldKid.Key == "" && sameType(oldKid, newKid) {
				matched[i] = oldKid
				used[i] = true
				continue
			}
		}
		for j := i + 1; j < len(oldKids); j++ {
			oldKid := oldKids[j]
			if oldKid != nil && !used[j] && oldKid.Key == "" && sameType(oldKid, newKid) {
				matched[i] = oldKid
				used[j] = true
				break
			}
		}
	}

	var prevDom dom.Node
	for i, newKid := range newKids {
		old := matched[i]
		newKid.parent = newParent
		newKid.depth = newParent.depth + 1
		newKid.index = i
		var ref dom.Node
		if prevDom != nil {
			ref = prevDom.NextSibling()
		} else {
			ref = oldDom
		}
		r.diff(parentDom, newKid, old, ns, commitQueue, ref, refQueue)
		first := firstDom(newKid)
		if first == nil {
			continue
		}
		if old != nil && first != ref {
			r.placeBefore(parentDom, newKid, ref)
		}
		prevDom = lastDom(newKid)
	}

	for j, wasUsed := range used {
		if !wasUsed && oldKids[j] != nil {
			r.unmountVNode(oldKids[j], false)
		}
	}
}

// placeBefore moves every document node owned by a vnode's subtree in
// front of ref.
func (r *Root) placeBefore(parentDom dom.Node, v *VNode, ref dom.Node) {
	for _, d := range collectDoms(v, nil) {
		parentDom.InsertBefore(d, ref)
	}
}

func collectDoms(v *VNode, acc []dom.Node) []dom.Node {
	if v == nil || v.isPortal() {
		return acc
	}
	if v.dom != nil {
		return append(acc, v.dom)
	}
	for _, kid := range v.kids {
		acc = collectDoms(kid, acc)
	}
	return acc
}

// firstDom descends through components and fragments to the first
// document node a vnode owns. Portal children live elsewhere and do not
// count.
func firstDom(v *VNode) dom.Node {
	if v == nil || v.isPortal() {
		return nil
	}
	if v.dom != nil {
		return v.dom
	}
	for _, kid := range v.kids {
		if d := firstDom(kid); d != nil {
			return d
		}
	}
	return nil
}

func lastDom(v *VNode) dom.Node {
	if v == nil || v.isPortal() {
		return nil
	}
	if v.dom != nil {
		return v.dom
	}
	for i := len(v.kids) - 1; i >= 0; i-- {
		if d := lastDom(v.kids[i]); d != nil {
			return d
		}
	}
	return nil
}

// unmountVNode tears a subtree down: options hook, ref clearing, hook
// cleanups in reverse order, context unsubscription, then document
// detachment. skipRemove is set once an ancestor's removal already takes
// the subtree's document nodes with it; portals reset it because their
// children live in an unrelated container.
func (r *Root) unmountVNode(v *VNode, skipRemove bool) {
	if v == nil {
		return
	}
	if Options.Unmount != nil {
		Options.Unmount(v)
	}
	if v.Ref != nil {
		applyRefValue(v.Ref, nil)
	}
	if v.inst != nil {
		inst := v.inst
		for i := len(inst.hooks) - 1; i >= 0; i-- {
			hook := inst.hooks[i]
			if hook.UnmountFn != nil {
				fn := hook.UnmountFn
				hook.UnmountFn = nil
				fn()
			}
		}
		cleanupContextSubscriptions(inst)
		inst.subscribers = nil
		inst.pendingEffects = nil
		inst.pendingLayoutEffects = nil
		inst.vnode = nil
		r.dequeueRender(inst)
		v.inst = nil
	}
	childSkip := skipRemove
	if v.dom != nil {
		if el, ok := v.dom.(dom.Element); ok {
			r.dropElementListeners(el)
		}
		if !skipRemove {
			if parent := v.dom.ParentNode(); parent != nil {
				parent.RemoveChild(v.dom)
			}
		}
		childSkip = true
	}
	if v.isPortal() {
		childSkip = false
	}
	for _, kid := range v.kids {
		r.unmountVNode(kid, childSkip)
	}
	v.dom = nil
	v.kids = nil
}

func applyRefValue(ref any, val any) {
	switch rv := ref.(type) {
	case nil:
		return
	case *Ref:
		rv.Current = val
	case RefFunc:
		rv(val)
	case func(any):
		rv(val)
	default:
		log.Printf("vdom: unsupported ref type %T\n", ref)
	}
}
